package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-quote-guard/models"
)

// SecureStorageService is the only path between the security layer and the
// key-value store. Secure items are encrypted with the caller's password
// before they are written and decrypted after they are read; plaintext never
// reaches the store.
type SecureStorageService interface {
	// SetSecureItem encrypts value with password and stores it under
	// "secure:<key>" in a single whole-value write. On any failure the
	// previously stored value is left untouched.
	SetSecureItem(ctx context.Context, key string, value any, password []byte) error

	// GetSecureItem decrypts the item stored under key into target.
	// A missing item yields ErrSecureItemNotFound; a wrong password, corrupt
	// ciphertext or failing store yields ErrSecureItemUnreadable. Both match
	// ErrNoValue.
	GetSecureItem(ctx context.Context, key string, password []byte, target any) error

	// HasSecureItem reports whether an item is stored under key.
	HasSecureItem(ctx context.Context, key string) (bool, error)

	// CreateBackup snapshots the credential flags and every secure item,
	// encrypts the snapshot with password and prepends it to the bounded
	// backup list. The oldest entries beyond the limit are dropped.
	CreateBackup(ctx context.Context, password []byte) (models.BackupRecord, error)

	// GetBackups returns the stored backups, newest first. A missing or
	// corrupt list yields an empty slice.
	GetBackups(ctx context.Context) []models.BackupRecord

	// DecryptBackup decrypts one backup record. Backups are never restored
	// automatically.
	DecryptBackup(record models.BackupRecord, password []byte) (models.BackupSnapshot, error)

	// Purge removes every key owned by the security layer in a fixed order,
	// password digest last, and verifies nothing remains.
	Purge(ctx context.Context) error

	// LoadCredentials reads the persisted onboarding and verification record.
	LoadCredentials(ctx context.Context) (models.CredentialRecord, error)

	// SaveLegalAcceptance persists the consent flag and its timestamp.
	SaveLegalAcceptance(ctx context.Context, at time.Time) error

	// SaveCredentials persists the password digest and the onboarding flag.
	SaveCredentials(ctx context.Context, passwordHash string) error
}

// SecurityService is the security state machine consumed by the UI gates.
// It owns the in-memory password, which is held only while Unlocked.
type SecurityService interface {
	// Init derives the state from persisted flags. Call once at startup and
	// again to simulate a fresh start.
	Init(ctx context.Context) error

	// AcceptLegal records consent. Valid only in NeedsLegal.
	AcceptLegal(ctx context.Context) error

	// SetupPassword persists the digest of password and unlocks. Valid only
	// in NeedsPasswordSetup.
	SetupPassword(ctx context.Context, password string) error

	// Unlock verifies password against the stored digest. Valid only in
	// Locked; returns false on any failure.
	Unlock(ctx context.Context, password string) bool

	// Lock clears the password and cancels background jobs. Valid only in
	// Unlocked.
	Lock() error

	// ResetPassword purges all local state and returns to NeedsLegal.
	// Valid only in Locked.
	ResetPassword(ctx context.Context) error

	// ToggleMasking flips the PII display preference and returns the new
	// value. Valid in any state.
	ToggleMasking() bool

	// RecordActivity marks a user interaction for the inactivity monitor.
	RecordActivity()

	State() models.SecurityState
	Flags() models.SecurityFlags

	// PasswordStrength scores a candidate password for the setup screen.
	PasswordStrength(password string) models.PasswordStrength

	// Secure storage access with the held password; ErrLocked unless
	// Unlocked.
	SetSecureItem(ctx context.Context, key string, value any) error
	GetSecureItem(ctx context.Context, key string, target any) error
	BackupNow(ctx context.Context) (models.BackupRecord, error)
	Backups(ctx context.Context) ([]models.BackupRecord, error)
	DecryptBackup(record models.BackupRecord) (models.BackupSnapshot, error)

	// Notifications delivers transient acknowledgements for the UI.
	// Messages are dropped when nobody is listening.
	Notifications() <-chan models.Notification

	// Close locks, stops background jobs and waits for them to exit.
	Close()
}
