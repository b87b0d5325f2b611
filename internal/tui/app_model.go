package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-quote-guard/internal/logger"
	"github.com/MKhiriev/go-quote-guard/internal/service"
	"github.com/MKhiriev/go-quote-guard/internal/utils"
	"github.com/MKhiriev/go-quote-guard/internal/validators"
	"github.com/MKhiriev/go-quote-guard/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenLegal screen = iota
	screenSetup
	screenLock
	screenReset
	screenCustomers
	screenCustomerForm
	screenBackups
	screenBackupDetail
	screenAbout
)

// workspace reports whether the screen may show data read with the
// in-memory password.
func (s screen) workspace() bool {
	switch s {
	case screenCustomers, screenCustomerForm, screenBackups, screenBackupDetail:
		return true
	default:
		return false
	}
}

// allows reports whether a gate screen is valid for state.
func (s screen) allows(state models.SecurityState) bool {
	switch s {
	case screenLegal:
		return state == models.StateNeedsLegal
	case screenSetup:
		return state == models.StateNeedsPasswordSetup
	case screenLock, screenReset:
		return state == models.StateLocked
	default:
		return s.workspace() && state == models.StateUnlocked
	}
}

func gateScreen(state models.SecurityState) screen {
	switch state {
	case models.StateNeedsLegal:
		return screenLegal
	case models.StateNeedsPasswordSetup:
		return screenSetup
	case models.StateUnlocked:
		return screenCustomers
	default:
		return screenLock
	}
}

// appModel is the single Bubble Tea model of the client. The screen is
// always derived from the security state: after every update the model
// re-reads the state and moves to the matching gate, dropping any data
// loaded while unlocked.
type appModel struct {
	ctx           context.Context
	security      service.SecurityService
	gateCheck     validators.Validator
	customerCheck validators.Validator
	resetPhrase   string
	ids           utils.IDGenerator
	info          models.AppBuildInfo
	logger        *logger.Logger

	screen     screen
	prevScreen screen
	width      int

	legalPending bool
	setup        setupForm
	lock         lockForm
	reset        resetForm
	customers    customerList
	form         customerForm
	backups      backupList

	overlayErr string
	status     string
}

func newAppModel(
	ctx context.Context,
	security service.SecurityService,
	gateCheck, customerCheck validators.Validator,
	resetPhrase string,
	info models.AppBuildInfo,
	log *logger.Logger,
) appModel {
	m := appModel{
		ctx:           ctx,
		security:      security,
		gateCheck:     gateCheck,
		customerCheck: customerCheck,
		resetPhrase:   resetPhrase,
		ids:           utils.NewUUIDGenerator(),
		info:          info,
		logger:        log.WithComponent("tui"),
		setup:         newSetupForm(),
		lock:          newLockForm(),
		reset:         newResetForm(),
		form:          newCustomerForm(),
	}
	m.screen = gateScreen(security.State())
	return m
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, cmdListenNotifications(m.security.Notifications())}
	if m.screen == screenCustomers {
		cmds = append(cmds, m.cmdLoadCustomers())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.MouseMsg:
		m.security.RecordActivity()
		return m, nil

	case tea.KeyMsg:
		m.security.RecordActivity()
		if key.Matches(msg, keys.forceQ) {
			return m, tea.Quit
		}
		if m.overlayErr != "" {
			if key.Matches(msg, keys.enter, keys.esc) {
				m.overlayErr = ""
			}
			return m, nil
		}

	case notificationMsg:
		next, cmd := m.handleNotification(msg.notification)
		return next.syncWithState(tea.Batch(cmd, cmdListenNotifications(m.security.Notifications())))

	case copiedMsg:
		if msg.err != nil {
			m.overlayErr = "copy to clipboard: " + msg.err.Error()
			return m, nil
		}
		return m.withStatus("Encrypted payload copied to clipboard")

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenLegal:
		m, cmd = m.updateLegal(msg)
	case screenSetup:
		m, cmd = m.updateSetup(msg)
	case screenLock:
		m, cmd = m.updateLock(msg)
	case screenReset:
		m, cmd = m.updateReset(msg)
	case screenCustomers:
		m, cmd = m.updateCustomers(msg)
	case screenCustomerForm:
		m, cmd = m.updateCustomerForm(msg)
	case screenBackups:
		m, cmd = m.updateBackups(msg)
	case screenBackupDetail:
		m, cmd = m.updateBackupDetail(msg)
	case screenAbout:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.esc, keys.enter) {
			m.screen = m.prevScreen
		}
	}

	return m.syncWithState(cmd)
}

// syncWithState moves the model to the screen allowed by the current
// security state.
func (m appModel) syncWithState(cmd tea.Cmd) (appModel, tea.Cmd) {
	current := m.screen
	if current == screenAbout {
		current = m.prevScreen
	}

	state := m.security.State()
	if current.allows(state) {
		return m, cmd
	}

	if current.workspace() {
		m = m.dropWorkspace()
	}

	target := gateScreen(state)
	if m.screen == screenAbout {
		m.prevScreen = target
	} else {
		m.screen = target
	}
	m.logger.Debug().Str("state", state.String()).Msg("screen synced with security state")

	switch target {
	case screenCustomers:
		m.setup = newSetupForm()
		m.lock = newLockForm()
		m.customers = customerList{loading: true}
		return m, tea.Batch(cmd, m.cmdLoadCustomers())
	case screenLock:
		m.lock = newLockForm()
		m.reset = newResetForm()
	case screenLegal:
		m.legalPending = false
		m.setup = newSetupForm()
	case screenSetup:
		m.setup = newSetupForm()
	}
	return m, cmd
}

func (m appModel) dropWorkspace() appModel {
	m.customers = customerList{}
	m.form = newCustomerForm()
	m.backups = backupList{}
	return m
}

func (m appModel) handleNotification(n models.Notification) (appModel, tea.Cmd) {
	switch n.Kind {
	case models.NotificationBackupCreated:
		next, cmd := m.withStatus(n.Message)
		if next.screen == screenBackups {
			return next, tea.Batch(cmd, next.cmdLoadBackups())
		}
		return next, cmd
	default:
		return m.withStatus(n.Message)
	}
}

func (m appModel) withStatus(status string) (appModel, tea.Cmd) {
	m.status = status
	return m, cmdClearStatus()
}

// showError puts err in the overlay. ErrLocked is not shown: the next
// state sync already moves the user to the lock screen.
func (m appModel) showError(err error) appModel {
	if err == nil || errors.Is(err, service.ErrLocked) {
		return m
	}
	m.logger.Error().Err(err).Msg("operation failed")
	m.overlayErr = humanizeError(err)
	return m
}

func (m appModel) openAbout() appModel {
	m.prevScreen = m.screen
	m.screen = screenAbout
	return m
}

func (m appModel) View() string {
	if m.overlayErr != "" {
		return appStyle.Render(renderErrorOverlay(m.overlayErr))
	}

	var page string
	switch m.screen {
	case screenLegal:
		page = m.viewLegal()
	case screenSetup:
		page = m.viewSetup()
	case screenLock:
		page = m.viewLock()
	case screenReset:
		page = m.viewReset()
	case screenCustomers:
		page = m.viewCustomers()
	case screenCustomerForm:
		page = m.viewCustomerForm()
	case screenBackups:
		page = m.viewBackups()
	case screenBackupDetail:
		page = m.viewBackupDetail()
	case screenAbout:
		page = renderBuildInfoWindow(m.info)
	}

	if m.status != "" {
		page += "\n\n" + statusStyle.Render(m.status)
	}
	return appStyle.Render(page)
}
