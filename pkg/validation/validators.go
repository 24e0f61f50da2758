package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var countryCodeRegex = regexp.MustCompile(`^[A-Za-z]{2}$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("country_code", CountryCode)
}

// CountryCode validates an ISO 3166-1 alpha-2 code. Empty is allowed; use
// required alongside when the field is mandatory.
func CountryCode(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return countryCodeRegex.MatchString(val)
}
