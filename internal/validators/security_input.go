package validators

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-quote-guard/internal/crypto"
	"github.com/MKhiriev/go-quote-guard/models"
)

// Field name constants used to restrict validation of gate input.
const (
	// FieldPassword checks that the password is present and long enough.
	FieldPassword = "password"

	// FieldPasswordStrength rejects passwords scored as weak.
	FieldPasswordStrength = "password_strength"

	// FieldPasswordConfirm checks that the confirmation matches.
	FieldPasswordConfirm = "password_confirm"

	// FieldResetPhrase checks the destructive reset confirmation phrase.
	FieldResetPhrase = "reset_phrase"
)

// MinPasswordLength is the shortest master password accepted at setup.
const MinPasswordLength = 8

// SecurityInputValidator implements the Validator interface for the gate
// inputs: models.PasswordSetup and models.ResetConfirmation.
type SecurityInputValidator struct {
	resetPhrase string
}

// NewSecurityInputValidator constructs a SecurityInputValidator that expects
// resetPhrase verbatim before a reset.
func NewSecurityInputValidator(resetPhrase string) Validator {
	return &SecurityInputValidator{resetPhrase: resetPhrase}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. Without fields every rule of the type is checked.
func (v *SecurityInputValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PasswordSetup:
		return v.validatePasswordSetup(ctx, value, fields...)
	case *models.PasswordSetup:
		return v.validatePasswordSetup(ctx, *value, fields...)

	case models.ResetConfirmation:
		return v.validateResetConfirmation(ctx, value, fields...)
	case *models.ResetConfirmation:
		return v.validateResetConfirmation(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SecurityInputValidator) validatePasswordSetup(_ context.Context, in models.PasswordSetup, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldPasswordStrength, FieldPasswordConfirm}
	}

	for _, field := range fields {
		switch field {
		case FieldPassword:
			if in.Password == "" {
				return ErrPasswordEmpty
			}
			if utf8.RuneCountInString(in.Password) < MinPasswordLength {
				return fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, MinPasswordLength)
			}
		case FieldPasswordStrength:
			if crypto.ScorePassword(in.Password).Category == models.PasswordWeak {
				return ErrPasswordWeak
			}
		case FieldPasswordConfirm:
			if in.Password != in.Confirm {
				return ErrPasswordMismatch
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *SecurityInputValidator) validateResetConfirmation(_ context.Context, in models.ResetConfirmation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldResetPhrase}
	}

	for _, field := range fields {
		switch field {
		case FieldResetPhrase:
			if v.resetPhrase == "" || in.Phrase != v.resetPhrase {
				return ErrResetPhraseMismatch
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}
