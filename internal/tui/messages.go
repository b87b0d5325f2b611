package tui

import (
	"github.com/MKhiriev/go-quote-guard/models"
)

type legalAcceptedMsg struct {
	err error
}

type passwordSetMsg struct {
	err error
}

type unlockResultMsg struct {
	ok bool
}

type resetDoneMsg struct {
	err error
}

type customersLoadedMsg struct {
	items []models.Customer
	err   error
}

type customerSavedMsg struct {
	items []models.Customer
	err   error
}

type backupsLoadedMsg struct {
	items []models.BackupRecord
	err   error
}

type backupCreatedMsg struct {
	record models.BackupRecord
	err    error
}

type backupDecryptedMsg struct {
	record   models.BackupRecord
	snapshot models.BackupSnapshot
	err      error
}

type notificationMsg struct {
	notification models.Notification
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
