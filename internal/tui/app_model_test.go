package tui

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-quote-guard/internal/config"
	"github.com/MKhiriev/go-quote-guard/internal/crypto"
	"github.com/MKhiriev/go-quote-guard/internal/logger"
	"github.com/MKhiriev/go-quote-guard/internal/service"
	"github.com/MKhiriev/go-quote-guard/internal/store"
	"github.com/MKhiriev/go-quote-guard/internal/validators"
	"github.com/MKhiriev/go-quote-guard/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testResetPhrase = "DELETE ALL DATA"
	testPassword    = "Correct-Horse-42"
)

func newTestSecurity(t *testing.T) service.SecurityService {
	t.Helper()

	storages := &store.ClientStorages{KeyValueStore: store.NewMemoryStore()}
	keychain := crypto.NewKeyChainService(crypto.Argon2Params{Time: 1, MemoryKiB: 1024, Threads: 1})
	services := service.NewClientServices(storages, keychain, config.ClientSecurity{BackupLimit: 5}, logger.Nop())
	t.Cleanup(services.Security.Close)

	require.NoError(t, services.Security.Init(context.Background()))
	return services.Security
}

func newTestModel(t *testing.T, security service.SecurityService) appModel {
	t.Helper()
	return newAppModel(
		context.Background(),
		security,
		validators.NewSecurityInputValidator(testResetPhrase),
		validators.NewCustomerValidator(),
		testResetPhrase,
		models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"),
		logger.Nop(),
	)
}

// onboarded returns a security service that has accepted the legal notice
// and set testPassword; it is left unlocked.
func onboarded(t *testing.T) service.SecurityService {
	t.Helper()
	ctx := context.Background()
	security := newTestSecurity(t)
	require.NoError(t, security.AcceptLegal(ctx))
	require.NoError(t, security.SetupPassword(ctx, testPassword))
	return security
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(appModel)
	require.True(t, ok, "Update must return appModel")
	return am, cmd
}

func typeText(t *testing.T, m appModel, text string) appModel {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func press(t *testing.T, m appModel, k tea.KeyType) (appModel, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

func pressRune(t *testing.T, m appModel, r rune) (appModel, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// execCmd runs a single service command and feeds its result back.
func execCmd(t *testing.T, m appModel, cmd tea.Cmd) (appModel, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	_, isBatch := msg.(tea.BatchMsg)
	require.False(t, isBatch, "expected a single command, got a batch")
	return update(t, m, msg)
}

func TestNewAppModel_StartsOnGateForState(t *testing.T) {
	security := newTestSecurity(t)
	assert.Equal(t, screenLegal, newTestModel(t, security).screen)

	require.NoError(t, security.AcceptLegal(context.Background()))
	assert.Equal(t, screenSetup, newTestModel(t, security).screen)

	require.NoError(t, security.SetupPassword(context.Background(), testPassword))
	assert.Equal(t, screenCustomers, newTestModel(t, security).screen)

	require.NoError(t, security.Lock())
	assert.Equal(t, screenLock, newTestModel(t, security).screen)
}

func TestOnboardingFlow(t *testing.T) {
	security := newTestSecurity(t)
	m := newTestModel(t, security)
	assert.Contains(t, m.View(), "LEGAL NOTICE")

	m, cmd := pressRune(t, m, 'a')
	assert.True(t, m.legalPending)
	m, _ = execCmd(t, m, cmd)
	require.Equal(t, screenSetup, m.screen)
	assert.Equal(t, models.StateNeedsPasswordSetup, security.State())

	m = typeText(t, m, "short")
	m, cmd = press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, m.setup.errMsg, validators.ErrPasswordTooShort.Error())
	assert.Equal(t, models.StateNeedsPasswordSetup, security.State())

	m.setup = newSetupForm()
	m = typeText(t, m, testPassword)
	assert.Contains(t, m.View(), string(models.PasswordStrong))
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, testPassword+"x")
	m, _ = press(t, m, tea.KeyEnter)
	assert.Equal(t, validators.ErrPasswordMismatch.Error(), m.setup.errMsg)

	m.setup.inputs[1].SetValue(testPassword)
	m, cmd = press(t, m, tea.KeyEnter)
	require.True(t, m.setup.submitting)
	m, cmd = execCmd(t, m, cmd)

	require.Equal(t, screenCustomers, m.screen)
	assert.Equal(t, models.StateUnlocked, security.State())
	assert.True(t, m.customers.loading)

	m, _ = execCmd(t, m, cmd)
	assert.False(t, m.customers.loading)
	assert.Empty(t, m.customers.items)
	assert.Contains(t, m.View(), "No customers yet")
}

func TestSetup_RejectsWeakPassword(t *testing.T) {
	security := newTestSecurity(t)
	require.NoError(t, security.AcceptLegal(context.Background()))
	m := newTestModel(t, security)

	m = typeText(t, m, "abcdefgh")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "abcdefgh")
	m, cmd := press(t, m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, validators.ErrPasswordWeak.Error(), m.setup.errMsg)
	assert.Equal(t, models.StateNeedsPasswordSetup, security.State())
}

func TestLockScreen_IncorrectPassword(t *testing.T) {
	security := onboarded(t)
	require.NoError(t, security.Lock())
	m := newTestModel(t, security)
	require.Equal(t, screenLock, m.screen)

	m = typeText(t, m, "not-the-password")
	m, cmd := press(t, m, tea.KeyEnter)
	m, _ = execCmd(t, m, cmd)

	assert.Equal(t, screenLock, m.screen)
	assert.Equal(t, incorrectPasswordMsg, m.lock.errMsg)
	assert.Empty(t, m.lock.input.Value())
	assert.Contains(t, m.View(), incorrectPasswordMsg)

	m = typeText(t, m, testPassword)
	m, cmd = press(t, m, tea.KeyEnter)
	m, _ = execCmd(t, m, cmd)

	assert.Equal(t, screenCustomers, m.screen)
	assert.Equal(t, models.StateUnlocked, security.State())
	assert.Empty(t, m.lock.errMsg)
}

func TestCustomers_AddMaskAndLock(t *testing.T) {
	ctx := context.Background()
	security := onboarded(t)
	m := newTestModel(t, security)

	m, cmd := pressRune(t, m, 'n')
	assert.NotNil(t, cmd)
	require.Equal(t, screenCustomerForm, m.screen)

	m = typeText(t, m, "Jane Doe")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "555-123-4567")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "jane@example.com")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "12 Elm St, Springfield, IL")

	m, cmd = press(t, m, tea.KeyEnter)
	require.True(t, m.form.submitting)
	m, _ = execCmd(t, m, cmd)

	require.Equal(t, screenCustomers, m.screen)
	require.Len(t, m.customers.items, 1)
	assert.NotEmpty(t, m.customers.items[0].ID)
	assert.Equal(t, "Customer saved", m.status)

	var stored []models.Customer
	require.NoError(t, security.GetSecureItem(ctx, customersItemKey, &stored))
	assert.Equal(t, m.customers.items, stored)

	masked := m.View()
	assert.Contains(t, masked, "CUSTOMERS (masked)")
	assert.NotContains(t, masked, "Jane Doe")
	assert.NotContains(t, masked, "555-123-4567")
	assert.NotContains(t, masked, "12 Elm St")

	m, _ = pressRune(t, m, 'm')
	visible := m.View()
	assert.Contains(t, visible, "CUSTOMERS (visible)")
	assert.Contains(t, visible, "Jane Doe")
	assert.Contains(t, visible, "555-123-4567")

	m, _ = press(t, m, tea.KeyCtrlL)
	assert.Equal(t, screenLock, m.screen)
	assert.Equal(t, models.StateLocked, security.State())
	assert.Nil(t, m.customers.items, "customer data must be dropped on lock")
}

func TestCustomerForm_Validation(t *testing.T) {
	m := newTestModel(t, onboarded(t))
	m, _ = pressRune(t, m, 'n')

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, validators.ErrCustomerNameRequired.Error(), m.form.errMsg)

	m = typeText(t, m, "Jane Doe")
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "not-an-email")
	m, cmd = press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, m.form.errMsg, validators.ErrInvalidEmail.Error())

	m, _ = press(t, m, tea.KeyEsc)
	assert.Equal(t, screenCustomers, m.screen)
	assert.Empty(t, m.form.errMsg)
}

func TestAutoLockNotification_ReturnsToLockScreen(t *testing.T) {
	security := onboarded(t)
	m := newTestModel(t, security)
	m.customers = customerList{items: []models.Customer{{ID: "1", Name: "Jane Doe"}}}
	m.screen = screenBackups

	require.NoError(t, security.Lock())
	m, cmd := update(t, m, notificationMsg{notification: models.Notification{
		Kind:    models.NotificationAutoLocked,
		Message: "Locked after inactivity",
	}})

	assert.NotNil(t, cmd)
	assert.Equal(t, screenLock, m.screen)
	assert.Nil(t, m.customers.items)
	assert.Equal(t, "Locked after inactivity", m.status)
}

func TestStaleResultAfterLock_IsDropped(t *testing.T) {
	security := onboarded(t)
	m := newTestModel(t, security)

	require.NoError(t, security.Lock())
	m, _ = update(t, m, customersLoadedMsg{items: []models.Customer{{ID: "1", Name: "Jane Doe"}}})

	assert.Equal(t, screenLock, m.screen)
	assert.Nil(t, m.customers.items)
	assert.NotContains(t, m.View(), "Jane")
}

func TestResetFlow(t *testing.T) {
	ctx := context.Background()
	security := onboarded(t)
	require.NoError(t, security.SetSecureItem(ctx, customersItemKey, []models.Customer{{ID: "1", Name: "Jane Doe"}}))
	require.NoError(t, security.Lock())
	m := newTestModel(t, security)

	m, _ = press(t, m, tea.KeyCtrlR)
	require.Equal(t, screenReset, m.screen)
	assert.Contains(t, m.View(), testResetPhrase)

	m = typeText(t, m, "delete")
	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, validators.ErrResetPhraseMismatch.Error(), m.reset.errMsg)
	assert.False(t, m.reset.confirming)

	m.reset.input.SetValue(testResetPhrase)
	m, _ = press(t, m, tea.KeyEnter)
	require.True(t, m.reset.confirming)
	assert.Contains(t, m.View(), "Erase all local data?")

	m, _ = pressRune(t, m, 'n')
	assert.False(t, m.reset.confirming)
	assert.Equal(t, models.StateLocked, security.State())

	m, _ = press(t, m, tea.KeyEnter)
	m, cmd = pressRune(t, m, 'y')
	m, _ = execCmd(t, m, cmd)

	assert.Equal(t, screenLegal, m.screen)
	assert.Equal(t, models.StateNeedsLegal, security.State())
	assert.Equal(t, "All local data erased", m.status)
}

func TestReset_EscReturnsToLock(t *testing.T) {
	security := onboarded(t)
	require.NoError(t, security.Lock())
	m := newTestModel(t, security)

	m, _ = press(t, m, tea.KeyCtrlR)
	m, _ = press(t, m, tea.KeyEsc)
	assert.Equal(t, screenLock, m.screen)
}

func TestBackupsScreen(t *testing.T) {
	security := onboarded(t)
	m := newTestModel(t, security)

	m, cmd := pressRune(t, m, 'b')
	require.Equal(t, screenBackups, m.screen)
	m, _ = execCmd(t, m, cmd)
	assert.Contains(t, m.View(), "No backups yet")

	m, cmd = pressRune(t, m, 's')
	assert.True(t, m.backups.creating)
	m, _ = execCmd(t, m, cmd)
	assert.False(t, m.backups.creating)
	assert.Contains(t, m.status, "Backup saved at")

	m, _ = execCmd(t, m, m.cmdLoadBackups())
	require.Len(t, m.backups.items, 1)
	record := m.backups.items[0]

	m, cmd = press(t, m, tea.KeyEnter)
	m, _ = execCmd(t, m, cmd)
	require.Equal(t, screenBackupDetail, m.screen)
	assert.Equal(t, record.ID, m.backups.detail.record.ID)
	assert.True(t, m.backups.detail.snapshot.HasPassword)
	assert.Contains(t, m.View(), record.ID)

	m, _ = press(t, m, tea.KeyEsc)
	assert.Equal(t, screenBackups, m.screen)
	m, _ = press(t, m, tea.KeyEsc)
	assert.Equal(t, screenCustomers, m.screen)
	assert.Empty(t, m.backups.items)
}

func TestErrorOverlay(t *testing.T) {
	m := newTestModel(t, onboarded(t))
	m.screen = screenBackups

	m, _ = update(t, m, backupDecryptedMsg{err: service.ErrBackupUnreadable})
	require.NotEmpty(t, m.overlayErr)
	assert.Contains(t, m.View(), "cannot be decrypted")

	m, _ = pressRune(t, m, 's')
	assert.False(t, m.backups.creating, "keys are swallowed while the overlay is shown")

	m, _ = press(t, m, tea.KeyEnter)
	assert.Empty(t, m.overlayErr)
}

func TestShowError_IgnoresLocked(t *testing.T) {
	m := newTestModel(t, onboarded(t))
	m = m.showError(service.ErrLocked)
	assert.Empty(t, m.overlayErr)
}

type activityCounter struct {
	service.SecurityService
	n int
}

func (a *activityCounter) RecordActivity() {
	a.n++
	a.SecurityService.RecordActivity()
}

func TestInteractionRecordsActivity(t *testing.T) {
	counter := &activityCounter{SecurityService: onboarded(t)}
	m := newTestModel(t, counter)

	m, _ = pressRune(t, m, 'j')
	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionMotion})
	_, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 2, counter.n)
}

func TestAboutScreen(t *testing.T) {
	m := newTestModel(t, newTestSecurity(t))

	m, _ = pressRune(t, m, 'i')
	require.Equal(t, screenAbout, m.screen)
	view := m.View()
	assert.Contains(t, view, "1.2.3")
	assert.Contains(t, view, "abc123")

	m, _ = press(t, m, tea.KeyEsc)
	assert.Equal(t, screenLegal, m.screen)
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, newTestSecurity(t))
	_, cmd := press(t, m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
