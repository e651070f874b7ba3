package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ConfigValidator validates configuration values
type ConfigValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new configuration validator
func NewValidator() *ConfigValidator {
	v := validator.New()

	v.RegisterValidation("url", validateURL)
	v.RegisterValidation("duration", validateDuration)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ConfigValidator{validator: v}
}

// Validate validates the configuration
func (cv *ConfigValidator) Validate(config *Config) error {
	if err := cv.validator.Struct(config); err != nil {
		return cv.formatValidationError(err)
	}
	return cv.validateCustomRules(config)
}

// validateCustomRules applies rules the struct tags can't express.
func (cv *ConfigValidator) validateCustomRules(config *Config) error {
	var problems []string

	if config.SharedCacheTTL < time.Second {
		problems = append(problems, "shared_cache_ttl should be at least 1 second")
	}
	if config.RedisEnable && config.SharedCacheAddress == "" {
		problems = append(problems, "shared_cache_address is required when redis_enable is true")
	}
	if _, err := url.Parse(config.StoreAddress); err != nil {
		problems = append(problems, "store_address must be a valid URI")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// formatValidationError formats validation errors for better readability
func (cv *ConfigValidator) formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var problems []string
		for _, e := range validationErrors {
			problems = append(problems, cv.formatFieldError(e))
		}
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return err
}

// formatFieldError formats a single field error
func (cv *ConfigValidator) formatFieldError(err validator.FieldError) string {
	field := err.Field()
	tag := err.Tag()
	param := err.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, tag)
	}
}

func validateURL(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := url.Parse(value)
	return err == nil
}

func validateDuration(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.ParseDuration(value)
	return err == nil
}
