package models

// PasswordCategory is the coarse strength bucket shown to the user.
type PasswordCategory string

const (
	PasswordWeak   PasswordCategory = "weak"
	PasswordMedium PasswordCategory = "medium"
	PasswordStrong PasswordCategory = "strong"
)

// PasswordStrength is the result of scoring a candidate master password.
// Score ranges from 0 to 6.
type PasswordStrength struct {
	Category PasswordCategory
	Score    int
}
