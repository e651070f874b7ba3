// Package validation implements the Validator collaborator:
// deterministic, pure validity and formatting checks for the input
// kinds the entity managers consume before writing a field. Stock
// go-playground tags cover presence and mail; every other kind (first
// and last names, nickname/team/factory/game names, password strength)
// uses the custom rules in rules.go, which also carry the length bounds.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind names one of the input categories the engine validates before a
// create or setField call that originates from untrusted input.
type Kind int

const (
	KindMail Kind = iota
	KindPassword
	KindFirstName
	KindLastName
	KindNickname
	KindTeamName
	KindFactoryName
	KindGameName
)

// Validator is the consumed-collaborator contract entity managers depend on.
type Validator interface {
	IsValid(kind Kind, s string) bool
	Format(kind Kind, s string) string
}

// fieldValidator owns the go-playground validator instance and the
// custom tag rules registered onto it.
type fieldValidator struct {
	v *validator.Validate
}

// New builds the default Validator.
func New() Validator {
	v := validator.New()
	v.RegisterValidation("handle", validateHandle)
	v.RegisterValidation("displayname", validateDisplayName)
	v.RegisterValidation("strongpassword", validateStrongPassword)
	return &fieldValidator{v: v}
}

func (vd *fieldValidator) tagFor(kind Kind) string {
	switch kind {
	case KindMail:
		return "required,email"
	case KindPassword:
		return "required,strongpassword"
	case KindFirstName, KindLastName:
		return "required,displayname"
	case KindNickname, KindTeamName, KindFactoryName, KindGameName:
		return "required,handle"
	default:
		return "required"
	}
}

func (vd *fieldValidator) IsValid(kind Kind, s string) bool {
	return vd.v.Var(s, vd.tagFor(kind)) == nil
}

// Format normalizes s for kind: email/nickname-like kinds are
// lower-cased and trimmed (case-insensitive lookups share one storage
// form); display names are trimmed only, preserving the caller's
// capitalization.
func (vd *fieldValidator) Format(kind Kind, s string) string {
	s = strings.TrimSpace(s)
	switch kind {
	case KindMail, KindNickname, KindTeamName, KindFactoryName, KindGameName:
		return strings.ToLower(s)
	default:
		return s
	}
}
