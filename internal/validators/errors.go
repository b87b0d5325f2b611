package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrPasswordEmpty       = errors.New("password is required")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrPasswordWeak        = errors.New("password is too weak")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrResetPhraseMismatch = errors.New("confirmation phrase does not match")

	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidPhone         = errors.New("invalid phone number")
)
