package tui

import (
	"errors"
	"time"

	"github.com/MKhiriev/go-quote-guard/internal/service"
	"github.com/MKhiriev/go-quote-guard/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// customersItemKey is the secure item holding the customer contacts list.
const customersItemKey = "customers"

const statusTTL = 3 * time.Second

func (m appModel) cmdAcceptLegal() tea.Cmd {
	ctx, security := m.ctx, m.security
	return func() tea.Msg {
		return legalAcceptedMsg{err: security.AcceptLegal(ctx)}
	}
}

func (m appModel) cmdSetupPassword(password string) tea.Cmd {
	ctx, security := m.ctx, m.security
	return func() tea.Msg {
		return passwordSetMsg{err: security.SetupPassword(ctx, password)}
	}
}

func (m appModel) cmdUnlock(password string) tea.Cmd {
	ctx, security := m.ctx, m.security
	return func() tea.Msg {
		return unlockResultMsg{ok: security.Unlock(ctx, password)}
	}
}

func (m appModel) cmdReset() tea.Cmd {
	ctx, security := m.ctx, m.security
	return func() tea.Msg {
		return resetDoneMsg{err: security.ResetPassword(ctx)}
	}
}

func (m appModel) cmdLoadCustomers() tea.Cmd {
	ctx, security := m.ctx, m.security
	return func() tea.Msg {
		var items []models.Customer
		err := security.GetSecureItem(ctx, customersItemKey, &items)
		if errors.Is(err, service.ErrSecureItemNotFound) {
			return customersLoadedMsg{}
		}
		return customersLoadedMsg{items: items, err: err}
	}
}

func (m appModel) cmdSaveCustomers(items []models.Customer) tea.Cmd {
	ctx, security := m.ctx, m.security
	return func() tea.Msg {
		if err := security.SetSecureItem(ctx, customersItemKey, items); err != nil {
			return customerSavedMsg{err: err}
		}
		return customerSavedMsg{items: items}
	}
}

func (m appModel) cmdLoadBackups() tea.Cmd {
	ctx, security := m.ctx, m.security
	return func() tea.Msg {
		items, err := security.Backups(ctx)
		return backupsLoadedMsg{items: items, err: err}
	}
}

func (m appModel) cmdBackupNow() tea.Cmd {
	ctx, security := m.ctx, m.security
	return func() tea.Msg {
		record, err := security.BackupNow(ctx)
		return backupCreatedMsg{record: record, err: err}
	}
}

func (m appModel) cmdDecryptBackup(record models.BackupRecord) tea.Cmd {
	security := m.security
	return func() tea.Msg {
		snapshot, err := security.DecryptBackup(record)
		return backupDecryptedMsg{record: record, snapshot: snapshot, err: err}
	}
}

// cmdListenNotifications blocks on the service channel and must be
// re-issued after every delivered notification.
func cmdListenNotifications(ch <-chan models.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg{notification: n}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
