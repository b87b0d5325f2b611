package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValue is the collapsed "nothing readable" outcome of a secure read.
	// Callers that only care whether a value came back match on it.
	ErrNoValue = errors.New("no value")

	ErrSecureItemNotFound   = fmt.Errorf("%w: secure item not found", ErrNoValue)
	ErrSecureItemUnreadable = fmt.Errorf("%w: secure item unreadable", ErrNoValue)
	ErrBackupUnreadable     = fmt.Errorf("%w: backup unreadable", ErrNoValue)

	ErrLocked            = errors.New("security layer is locked")
	ErrInvalidTransition = errors.New("invalid security state transition")
	ErrEmptyPassword     = errors.New("empty password")
	ErrBackupFailed      = errors.New("backup failed")
	ErrPurgeIncomplete   = errors.New("purge incomplete")
	ErrCredentials       = errors.New("cannot access credentials")
)
