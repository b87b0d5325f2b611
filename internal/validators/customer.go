package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-quote-guard/models"
)

const (
	FieldCustomerName  = "customer_name"
	FieldCustomerEmail = "customer_email"
	FieldCustomerPhone = "customer_phone"
)

const minPhoneDigits = 7

// CustomerValidator implements the Validator interface for models.Customer.
// Email and phone are optional; when present they must be well formed.
type CustomerValidator struct{}

func NewCustomerValidator() Validator {
	return &CustomerValidator{}
}

func (v *CustomerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Customer:
		return v.validateCustomer(ctx, value, fields...)
	case *models.Customer:
		return v.validateCustomer(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CustomerValidator) validateCustomer(_ context.Context, c models.Customer, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCustomerName, FieldCustomerEmail, FieldCustomerPhone}
	}

	for _, field := range fields {
		switch field {
		case FieldCustomerName:
			if strings.TrimSpace(c.Name) == "" {
				return ErrCustomerNameRequired
			}
		case FieldCustomerEmail:
			if c.Email == "" {
				continue
			}
			addr, err := mail.ParseAddress(c.Email)
			if err != nil || addr.Address != c.Email {
				return fmt.Errorf("%w: %q", ErrInvalidEmail, c.Email)
			}
		case FieldCustomerPhone:
			if c.Phone == "" {
				continue
			}
			if !isPhone(c.Phone) {
				return ErrInvalidPhone
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

// isPhone accepts digits with common separators and an optional leading +.
func isPhone(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}
