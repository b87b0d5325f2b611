package models

// PasswordSetup is the input of the password setup gate.
type PasswordSetup struct {
	Password string
	Confirm  string
}

// ResetConfirmation is the input of the destructive reset gate. Phrase must
// equal the configured confirmation phrase exactly.
type ResetConfirmation struct {
	Phrase string
}
