package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	handleRegex      = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)
	displayNameRegex = regexp.MustCompile(`^[\p{L} '-]{1,64}$`)
)

// validateHandle matches the nickname/team-name/factory-name/game-name
// character set: letters, digits, underscore and hyphen, 3-32 runes.
func validateHandle(fl validator.FieldLevel) bool {
	return handleRegex.MatchString(fl.Field().String())
}

// validateDisplayName matches first/last name: letters, spaces, hyphens
// and apostrophes only, 1-64 runes.
func validateDisplayName(fl validator.FieldLevel) bool {
	return displayNameRegex.MatchString(fl.Field().String())
}

// validateStrongPassword requires at least one letter and one digit and a
// minimum length of 8; the bcrypt hasher enforces no more than 72 bytes
// separately.
func validateStrongPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
