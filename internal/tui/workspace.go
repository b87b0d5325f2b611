package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-quote-guard/internal/masking"
	"github.com/MKhiriev/go-quote-guard/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type customerList struct {
	items   []models.Customer
	idx     int
	loading bool
}

func (l customerList) current() (models.Customer, bool) {
	if len(l.items) == 0 || l.idx < 0 || l.idx >= len(l.items) {
		return models.Customer{}, false
	}
	return l.items[l.idx], true
}

const (
	fieldName = iota
	fieldPhone
	fieldEmail
	fieldAddress
)

type customerForm struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newCustomerForm() customerForm {
	placeholders := []string{"name", "phone", "email", "address"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.CharLimit = 128
		in.Width = 40
		inputs[i] = in
	}
	inputs[fieldName].Focus()
	return customerForm{inputs: inputs}
}

func (f customerForm) value() models.Customer {
	return models.Customer{
		Name:    strings.TrimSpace(f.inputs[fieldName].Value()),
		Phone:   strings.TrimSpace(f.inputs[fieldPhone].Value()),
		Email:   strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Address: strings.TrimSpace(f.inputs[fieldAddress].Value()),
	}
}

type backupList struct {
	items    []models.BackupRecord
	idx      int
	loading  bool
	creating bool
	detail   backupDecryptedMsg
}

func (l backupList) current() (models.BackupRecord, bool) {
	if len(l.items) == 0 || l.idx < 0 || l.idx >= len(l.items) {
		return models.BackupRecord{}, false
	}
	return l.items[l.idx], true
}

func (m appModel) masker() masking.Masker {
	return masking.Masker{Masked: m.security.Flags().ShowMasked}
}

func (m appModel) lockNow() appModel {
	if err := m.security.Lock(); err != nil {
		return m.showError(err)
	}
	return m
}

func (m appModel) updateCustomers(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case customersLoadedMsg:
		m.customers.loading = false
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.customers.items = msg.items
		m.customers.idx = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.up):
			if m.customers.idx > 0 {
				m.customers.idx--
			}
		case key.Matches(msg, keys.down):
			if m.customers.idx < len(m.customers.items)-1 {
				m.customers.idx++
			}
		case key.Matches(msg, keys.newItem):
			m.form = newCustomerForm()
			m.screen = screenCustomerForm
			return m, textinput.Blink
		case key.Matches(msg, keys.mask):
			m.security.ToggleMasking()
		case key.Matches(msg, keys.backups):
			m.backups = backupList{loading: true}
			m.screen = screenBackups
			return m, m.cmdLoadBackups()
		case key.Matches(msg, keys.lock):
			return m.lockNow(), nil
		case key.Matches(msg, keys.about):
			return m.openAbout(), nil
		}
	}
	return m, nil
}

func (m appModel) viewCustomers() string {
	masker := m.masker()

	var b strings.Builder
	switch {
	case m.customers.loading:
		b.WriteString("Loading...")
	case len(m.customers.items) == 0:
		b.WriteString("No customers yet")
	default:
		b.WriteString("  Name                 │ Phone            │ Email\n")
		b.WriteString("  ─────────────────────┼──────────────────┼─────────────────────────\n")
		for i, c := range m.customers.items {
			cursor := "  "
			if i == m.customers.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%-21s│ %-17s│ %s\n",
				cursor,
				fitText(masker.Name(c.Name), 20),
				fitText(valueOrDash(masker.Phone(c.Phone)), 16),
				fitText(valueOrDash(masker.Email(c.Email)), m.columnWidth(24)),
			))
		}
		if c, ok := m.customers.current(); ok {
			b.WriteString("\nAddress: ")
			b.WriteString(valueOrDash(masker.Address(c.Address)))
		}
	}

	mode := "masked"
	if !masker.Masked {
		mode = "visible"
	}
	title := fmt.Sprintf("CUSTOMERS (%s)", mode)
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"n: new │ m: mask/unmask │ b: backups │ ctrl+l: lock │ i: about │ q: quit")
}

// columnWidth returns the width left for the last table column.
func (m appModel) columnWidth(fallback int) int {
	if m.width <= 0 {
		return fallback
	}
	return max(m.width-48, 8)
}

func (m appModel) updateCustomerForm(msg tea.Msg) (appModel, tea.Cmd) {
	if result, ok := msg.(customerSavedMsg); ok {
		m.form.submitting = false
		if result.err != nil {
			return m.showError(result.err), nil
		}
		m.customers.items = result.items
		m.customers.idx = len(result.items) - 1
		m.form = newCustomerForm()
		m.screen = screenCustomers
		return m.withStatus("Customer saved")
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.form = newCustomerForm()
			m.screen = screenCustomers
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			c := m.form.value()
			if err := m.customerCheck.Validate(m.ctx, c); err != nil {
				m.form.errMsg = humanizeError(err)
				return m, nil
			}
			c.ID = m.ids.Generate()
			m.form.errMsg = ""
			m.form.submitting = true
			return m, m.cmdSaveCustomers(append(slices.Clone(m.customers.items), c))
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (f *customerForm) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (m appModel) viewCustomerForm() string {
	labels := []string{"Name    ", "Phone   ", "Email   ", "Address "}

	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(" │ [")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.form.submitting {
		b.WriteString("\nSaving...\n")
	}
	if m.form.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.form.errMsg))
		b.WriteString("\n")
	}

	return renderPage("NEW CUSTOMER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: save")
}

func (m appModel) updateBackups(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case backupsLoadedMsg:
		m.backups.loading = false
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.backups.items = msg.items
		m.backups.idx = 0
		return m, nil

	case backupCreatedMsg:
		m.backups.creating = false
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		next, cmd := m.withStatus("Backup saved at " + msg.record.Timestamp.Local().Format(time.Kitchen))
		return next, tea.Batch(cmd, next.cmdLoadBackups())

	case backupDecryptedMsg:
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.backups.detail = msg
		m.screen = screenBackupDetail
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.backups = backupList{}
			m.screen = screenCustomers
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.up):
			if m.backups.idx > 0 {
				m.backups.idx--
			}
		case key.Matches(msg, keys.down):
			if m.backups.idx < len(m.backups.items)-1 {
				m.backups.idx++
			}
		case key.Matches(msg, keys.backup):
			if m.backups.creating {
				return m, nil
			}
			m.backups.creating = true
			return m, m.cmdBackupNow()
		case key.Matches(msg, keys.enter):
			if record, ok := m.backups.current(); ok {
				return m, m.cmdDecryptBackup(record)
			}
		case key.Matches(msg, keys.copy):
			if record, ok := m.backups.current(); ok {
				return m, cmdCopyToClipboard(record.Payload)
			}
		case key.Matches(msg, keys.lock):
			return m.lockNow(), nil
		}
	}
	return m, nil
}

func (m appModel) viewBackups() string {
	var b strings.Builder
	switch {
	case m.backups.loading:
		b.WriteString("Loading...")
	case len(m.backups.items) == 0:
		b.WriteString("No backups yet")
	default:
		for i, record := range m.backups.items {
			cursor := "  "
			if i == m.backups.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor,
				record.Timestamp.Local().Format(time.DateTime), fitText(record.ID, 13)))
		}
	}
	if m.backups.creating {
		b.WriteString("\nCreating backup...")
	}

	return renderPage("BACKUPS", strings.TrimRight(b.String(), "\n"),
		"s: back up now │ enter: decrypt │ c: copy payload │ esc: back │ ctrl+l: lock")
}

func (m appModel) updateBackupDetail(msg tea.Msg) (appModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.backups.detail = backupDecryptedMsg{}
		m.screen = screenBackups
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.backups.detail.record.Payload)
	case key.Matches(keyMsg, keys.lock):
		return m.lockNow(), nil
	}
	return m, nil
}

func (m appModel) viewBackupDetail() string {
	d := m.backups.detail
	s := d.snapshot

	names := make([]string, 0, len(s.Items))
	for name := range s.Items {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("ID            │ " + d.record.ID + "\n")
	b.WriteString("Created       │ " + s.CreatedAt.Local().Format(time.DateTime) + "\n")
	b.WriteString(fmt.Sprintf("Legal         │ %t %s\n", s.LegalAccepted, s.LegalAcceptedDate))
	b.WriteString(fmt.Sprintf("Password set  │ %t\n", s.HasPassword))
	b.WriteString("Secure items  │ " + valueOrDash(strings.Join(names, ", ")))

	return renderPage("BACKUP", b.String(), "c: copy payload │ esc: back │ ctrl+l: lock")
}
