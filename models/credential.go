// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Logical names of the keys owned by the security layer inside the local
// key-value store.
const (
	KeyPasswordHash      = "passwordHash"
	KeyHasPassword       = "hasPassword"
	KeyLegalAccepted     = "legalAccepted"
	KeyLegalAcceptedDate = "legalAcceptedDate"
	KeySecureBackups     = "secureBackups"

	// SecureItemPrefix namespaces every encrypted item written through the
	// secure storage accessor, e.g. "secure:customers".
	SecureItemPrefix = "secure:"

	// FlagTrue is the only value ever written for boolean flags. An absent key
	// means false.
	FlagTrue = "true"
)

// CredentialRecord is the persisted onboarding and verification state.
// It never contains the plaintext master password.
type CredentialRecord struct {
	// PasswordHash is the hex digest of the master password, used only for
	// verification on unlock.
	PasswordHash string

	// HasPassword marks that onboarding finished with a password.
	HasPassword bool

	// LegalAccepted and LegalAcceptedDate form the consent record.
	LegalAccepted     bool
	LegalAcceptedDate time.Time
}

// InitialState derives the onboarding mode from the persisted record.
// A record that claims a password but has no digest is treated as not set up.
func (c CredentialRecord) InitialState() SecurityState {
	switch {
	case !c.LegalAccepted:
		return StateNeedsLegal
	case !c.HasPassword || c.PasswordHash == "":
		return StateNeedsPasswordSetup
	default:
		return StateLocked
	}
}
