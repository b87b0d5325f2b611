package models

// SecurityState is a state of the local security state machine.
type SecurityState int

const (
	// StateNeedsLegal means the legal disclaimer has not been accepted yet.
	StateNeedsLegal SecurityState = iota
	// StateNeedsPasswordSetup means consent exists but no master password.
	StateNeedsPasswordSetup
	// StateLocked means a master password exists and is not held in memory.
	StateLocked
	// StateUnlocked means the master password is held in memory.
	StateUnlocked
)

func (s SecurityState) String() string {
	switch s {
	case StateNeedsLegal:
		return "needs-legal"
	case StateNeedsPasswordSetup:
		return "needs-password-setup"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// SecurityFlags is the flag view consumed by the gate screens.
type SecurityFlags struct {
	IsLocked            bool
	HasPassword         bool
	ShowPasswordSetup   bool
	ShowLegalDisclaimer bool
	ShowMasked          bool
}

// NotificationKind classifies transient messages sent to the UI layer.
type NotificationKind int

const (
	NotificationBackupCreated NotificationKind = iota + 1
	NotificationBackupFailed
	NotificationAutoLocked
)

// Notification is a non-blocking acknowledgement emitted by the security
// service (e.g. after a periodic backup).
type Notification struct {
	Kind    NotificationKind
	Message string
}
