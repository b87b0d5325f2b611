// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-quote-guard/internal/config"
	"github.com/MKhiriev/go-quote-guard/internal/crypto"
	"github.com/MKhiriev/go-quote-guard/internal/logger"
	"github.com/MKhiriev/go-quote-guard/internal/workers"
	"github.com/MKhiriev/go-quote-guard/models"
)

const notificationBuffer = 8

// SecurityOption customizes a SecurityService at construction time.
type SecurityOption func(*securityService)

// WithClock replaces time.Now for activity bookkeeping and consent dates.
func WithClock(now func() time.Time) SecurityOption {
	return func(s *securityService) {
		s.now = now
	}
}

// securityService is the concrete implementation of SecurityService.
//
// Every transition and every background tick runs under mu. Leaving
// Unlocked cancels the tick contexts before mu is released, so a tick
// that was waiting for mu sees a cancelled context and does nothing.
type securityService struct {
	storage  SecureStorageService
	keychain crypto.KeyChainService
	cfg      config.ClientSecurity
	now      func() time.Time

	mu           sync.Mutex
	state        models.SecurityState
	password     []byte
	lastActivity time.Time
	showMasked   bool
	closed       bool

	jobs          *workers.Workers
	jobsCtx       context.Context
	cancelJobsCtx context.CancelFunc
	notifications chan models.Notification

	logger *logger.Logger
}

// NewSecurityService constructs the state machine. It starts in NeedsLegal
// until [SecurityService.Init] reads the persisted flags. PII is masked by
// default. Non-positive timers fall back to the config defaults.
func NewSecurityService(storage SecureStorageService, keychain crypto.KeyChainService, cfg config.ClientSecurity, log *logger.Logger, opts ...SecurityOption) SecurityService {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = config.DefaultIdleTimeout
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = config.DefaultCheckInterval
	}
	if cfg.BackupInterval <= 0 {
		cfg.BackupInterval = config.DefaultBackupInterval
	}

	s := &securityService{
		storage:       storage,
		keychain:      keychain,
		cfg:           cfg,
		now:           time.Now,
		state:         models.StateNeedsLegal,
		showMasked:    true,
		notifications: make(chan models.Notification, notificationBuffer),
		logger:        log.WithComponent("security"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.jobsCtx, s.cancelJobsCtx = context.WithCancel(context.Background())
	s.jobs = workers.New(
		workers.NewPeriodicWorker("inactivity-monitor", cfg.CheckInterval, s.checkInactivity, s.logger),
		workers.NewPeriodicWorker("periodic-backup", cfg.BackupInterval, s.periodicBackup, s.logger),
	)

	return s
}

func (s *securityService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.StateUnlocked {
		s.lockLocked()
	}

	creds, err := s.storage.LoadCredentials(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "securityService.Init").Msg("failed to load credentials")
		return fmt.Errorf("init security state: %w", err)
	}

	s.state = creds.InitialState()
	s.logger.Info().Stringer("state", s.state).Msg("security state initialized")

	return nil
}

func (s *securityService) AcceptLegal(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateNeedsLegal {
		return s.invalidTransition("accept legal")
	}

	if err := s.storage.SaveLegalAcceptance(ctx, s.now()); err != nil {
		s.logger.Err(err).Str("func", "securityService.AcceptLegal").Msg("failed to persist consent")
		return fmt.Errorf("accept legal: %w", err)
	}

	creds, err := s.storage.LoadCredentials(ctx)
	if err != nil {
		return fmt.Errorf("accept legal: %w", err)
	}

	s.state = creds.InitialState()
	s.logger.Info().Stringer("state", s.state).Msg("legal disclaimer accepted")

	return nil
}

func (s *securityService) SetupPassword(ctx context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != models.StateNeedsPasswordSetup {
		return s.invalidTransition("setup password")
	}
	if password == "" {
		return ErrEmptyPassword
	}

	secret := []byte(password)
	if err := s.storage.SaveCredentials(ctx, s.keychain.HashPassword(secret)); err != nil {
		crypto.Wipe(secret)
		s.logger.Err(err).Str("func", "securityService.SetupPassword").Msg("failed to persist credentials")
		return fmt.Errorf("setup password: %w", err)
	}

	s.unlockLocked(secret)
	s.logger.Info().Msg("master password set up")

	return nil
}

func (s *securityService) Unlock(ctx context.Context, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != models.StateLocked || password == "" {
		return false
	}

	creds, err := s.storage.LoadCredentials(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "securityService.Unlock").Msg("failed to load credentials")
		return false
	}

	secret := []byte(password)
	if creds.PasswordHash == "" || !s.keychain.VerifyPassword(secret, creds.PasswordHash) {
		crypto.Wipe(secret)
		s.logger.Warn().Msg("unlock rejected")
		return false
	}

	s.unlockLocked(secret)
	s.logger.Info().Msg("unlocked")

	return true
}

// unlockLocked must be called with mu held.
func (s *securityService) unlockLocked(secret []byte) {
	s.password = secret
	s.lastActivity = s.now()
	s.state = models.StateUnlocked
	s.jobs.Start(s.jobsCtx)
}

func (s *securityService) Lock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateUnlocked {
		return s.invalidTransition("lock")
	}

	s.lockLocked()
	s.logger.Info().Msg("locked")

	return nil
}

// lockLocked cancels the background jobs without waiting for them and
// wipes the held password. Must be called with mu held.
func (s *securityService) lockLocked() {
	s.jobs.Cancel()
	crypto.Wipe(s.password)
	s.password = nil
	s.state = models.StateLocked
}

func (s *securityService) ResetPassword(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateLocked {
		return s.invalidTransition("reset password")
	}

	s.jobs.Cancel()

	if err := s.storage.Purge(ctx); err != nil {
		s.logger.Err(err).Str("func", "securityService.ResetPassword").Msg("reset aborted, staying locked")
		return fmt.Errorf("reset password: %w", err)
	}

	creds, err := s.storage.LoadCredentials(ctx)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.state = creds.InitialState()
	s.logger.Warn().Stringer("state", s.state).Msg("all local data purged")

	return nil
}

func (s *securityService) ToggleMasking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showMasked = !s.showMasked
	return s.showMasked
}

func (s *securityService) RecordActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.StateUnlocked {
		s.lastActivity = s.now()
	}
}

func (s *securityService) State() models.SecurityState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *securityService) Flags() models.SecurityFlags {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.SecurityFlags{
		IsLocked:            s.state != models.StateUnlocked,
		HasPassword:         s.state == models.StateLocked || s.state == models.StateUnlocked,
		ShowPasswordSetup:   s.state == models.StateNeedsPasswordSetup,
		ShowLegalDisclaimer: s.state == models.StateNeedsLegal,
		ShowMasked:          s.showMasked,
	}
}

func (s *securityService) PasswordStrength(password string) models.PasswordStrength {
	return s.keychain.PasswordStrength(password)
}

func (s *securityService) SetSecureItem(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateUnlocked {
		return ErrLocked
	}
	return s.storage.SetSecureItem(ctx, key, value, s.password)
}

func (s *securityService) GetSecureItem(ctx context.Context, key string, target any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateUnlocked {
		return ErrLocked
	}
	return s.storage.GetSecureItem(ctx, key, s.password, target)
}

func (s *securityService) BackupNow(ctx context.Context) (models.BackupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateUnlocked {
		return models.BackupRecord{}, ErrLocked
	}
	return s.storage.CreateBackup(ctx, s.password)
}

func (s *securityService) Backups(ctx context.Context) ([]models.BackupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateUnlocked {
		return nil, ErrLocked
	}
	return s.storage.GetBackups(ctx), nil
}

func (s *securityService) DecryptBackup(record models.BackupRecord) (models.BackupSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateUnlocked {
		return models.BackupSnapshot{}, ErrLocked
	}
	return s.storage.DecryptBackup(record, s.password)
}

func (s *securityService) Notifications() <-chan models.Notification {
	return s.notifications
}

func (s *securityService) Close() {
	s.mu.Lock()
	if s.state == models.StateUnlocked {
		s.lockLocked()
	}
	s.closed = true
	s.mu.Unlock()

	s.jobs.Stop()
	s.cancelJobsCtx()
}

// checkInactivity locks the session once the idle timeout has elapsed.
func (s *securityService) checkInactivity(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil || s.state != models.StateUnlocked {
		return
	}

	idle := s.now().Sub(s.lastActivity)
	if idle < s.cfg.IdleTimeout {
		return
	}

	s.lockLocked()
	s.logger.Info().Dur("idle", idle).Msg("auto-locked after inactivity")
	s.notify(models.NotificationAutoLocked, "Locked after inactivity")
}

// periodicBackup runs under mu so that no backup is written after the
// session has left Unlocked.
func (s *securityService) periodicBackup(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil || s.state != models.StateUnlocked {
		return
	}

	record, err := s.storage.CreateBackup(ctx, s.password)
	if err != nil {
		s.notify(models.NotificationBackupFailed, "Backup failed")
		return
	}

	s.notify(models.NotificationBackupCreated, "Backup saved at "+record.Timestamp.Local().Format(time.Kitchen))
}

// notify never blocks; messages are dropped when the buffer is full.
func (s *securityService) notify(kind models.NotificationKind, msg string) {
	select {
	case s.notifications <- models.Notification{Kind: kind, Message: msg}:
	default:
		s.logger.Debug().Int("kind", int(kind)).Msg("notification dropped")
	}
}

func (s *securityService) invalidTransition(op string) error {
	s.logger.Warn().Str("op", op).Stringer("state", s.state).Msg("invalid transition")
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, s.state)
}
