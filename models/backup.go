// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BackupRecord is one entry of the bounded encrypted backup history.
// The list is persisted newest first.
type BackupRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	// Payload is the ciphertext of a [BackupSnapshot].
	Payload string `json:"payload"`
}

// BackupSnapshot is the plaintext content of a backup before encryption.
// Items holds the raw stored values of secure items, which are themselves
// ciphertexts, keyed by item name without the secure prefix.
type BackupSnapshot struct {
	CreatedAt         time.Time         `json:"created_at"`
	HasPassword       bool              `json:"has_password"`
	LegalAccepted     bool              `json:"legal_accepted"`
	LegalAcceptedDate string            `json:"legal_accepted_date,omitempty"`
	Items             map[string]string `json:"items,omitempty"`
}
