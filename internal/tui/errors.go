package tui

import (
	"errors"

	"github.com/MKhiriev/go-quote-guard/internal/service"
)

// ErrNoSecurityService is returned by New when the services bundle has no
// security state machine to drive the screens.
var ErrNoSecurityService = errors.New("security service is required")

// humanizeError maps service errors to messages safe to show on screen.
// Validation errors already read well and are returned as is.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrPurgeIncomplete):
		return "Reset incomplete: some local data could not be erased. Try again."
	case errors.Is(err, service.ErrBackupFailed):
		return "Backup failed. Your data is unchanged."
	case errors.Is(err, service.ErrBackupUnreadable):
		return "This backup cannot be decrypted with the current password."
	case errors.Is(err, service.ErrSecureItemUnreadable):
		return "Stored data could not be read."
	case errors.Is(err, service.ErrInvalidTransition):
		return "This action is not available right now."
	case errors.Is(err, service.ErrEmptyPassword):
		return "Password is required."
	default:
		return err.Error()
	}
}
