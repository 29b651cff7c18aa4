package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

// Shape check only: one local part, one domain with a dot. Deliverability is
// out of scope; the storage layer does not enforce email validity either.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// New returns a configured validator with the email_shape rule registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// the stock email tag accepts dotless domains; RSVPs want local@domain.tld
	_ = v.RegisterValidation("email_shape", func(fl validatorv10.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})

	return v
}
