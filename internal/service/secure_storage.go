// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-quote-guard/internal/crypto"
	"github.com/MKhiriev/go-quote-guard/internal/logger"
	"github.com/MKhiriev/go-quote-guard/internal/store"
	"github.com/MKhiriev/go-quote-guard/internal/utils"
	"github.com/MKhiriev/go-quote-guard/models"
)

// DefaultBackupLimit is the number of backups kept when none is configured.
const DefaultBackupLimit = 5

// secureStorageService is the concrete implementation of SecureStorageService.
type secureStorageService struct {
	kv       store.KeyValueStore
	keychain crypto.KeyChainService

	// backupLimit caps the backup list; older entries are evicted.
	backupLimit int

	now   func() time.Time
	newID func() string

	// backupMu serializes read-modify-write of the backup list and purge.
	backupMu sync.Mutex

	logger *logger.Logger
}

// NewSecureStorageService constructs a SecureStorageService over kv.
// A non-positive backupLimit falls back to [DefaultBackupLimit].
func NewSecureStorageService(kv store.KeyValueStore, keychain crypto.KeyChainService, backupLimit int, log *logger.Logger) SecureStorageService {
	if backupLimit <= 0 {
		backupLimit = DefaultBackupLimit
	}

	return &secureStorageService{
		kv:          kv,
		keychain:    keychain,
		backupLimit: backupLimit,
		now:         time.Now,
		newID:       utils.NewUUIDGenerator().Generate,
		logger:      log.WithComponent("secure-storage"),
	}
}

func (s *secureStorageService) SetSecureItem(ctx context.Context, key string, value any, password []byte) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}

	ciphertext, err := s.keychain.Encrypt(value, password)
	if err != nil {
		s.logger.Err(err).Str("func", "secureStorageService.SetSecureItem").Str("key", key).Msg("failed to encrypt item")
		return fmt.Errorf("encrypt secure item %q: %w", key, err)
	}

	if err = s.kv.Set(ctx, models.SecureItemPrefix+key, ciphertext); err != nil {
		s.logger.Err(err).Str("func", "secureStorageService.SetSecureItem").Str("key", key).Msg("failed to store item")
		return fmt.Errorf("store secure item %q: %w", key, err)
	}

	return nil
}

func (s *secureStorageService) GetSecureItem(ctx context.Context, key string, password []byte, target any) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}

	raw, err := s.kv.Get(ctx, models.SecureItemPrefix+key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return ErrSecureItemNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "secureStorageService.GetSecureItem").Str("key", key).Msg("failed to read item")
		return fmt.Errorf("%w: %w", ErrSecureItemUnreadable, err)
	}

	if err = s.keychain.Decrypt(raw, password, target); err != nil {
		s.logger.Warn().Str("func", "secureStorageService.GetSecureItem").Str("key", key).Msg("item could not be decrypted")
		return fmt.Errorf("%w: %w", ErrSecureItemUnreadable, err)
	}

	return nil
}

func (s *secureStorageService) HasSecureItem(ctx context.Context, key string) (bool, error) {
	_, err := s.kv.Get(ctx, models.SecureItemPrefix+key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *secureStorageService) CreateBackup(ctx context.Context, password []byte) (models.BackupRecord, error) {
	if len(password) == 0 {
		return models.BackupRecord{}, fmt.Errorf("%w: %w", ErrBackupFailed, ErrEmptyPassword)
	}

	s.backupMu.Lock()
	defer s.backupMu.Unlock()

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "secureStorageService.CreateBackup").Msg("failed to build snapshot")
		return models.BackupRecord{}, fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	payload, err := s.keychain.Encrypt(snapshot, password)
	if err != nil {
		s.logger.Err(err).Str("func", "secureStorageService.CreateBackup").Msg("failed to encrypt snapshot")
		return models.BackupRecord{}, fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	record := models.BackupRecord{
		ID:        s.newID(),
		Timestamp: snapshot.CreatedAt,
		Payload:   payload,
	}

	backups := append([]models.BackupRecord{record}, s.readBackups(ctx)...)
	if len(backups) > s.backupLimit {
		backups = backups[:s.backupLimit]
	}

	encoded, err := json.Marshal(backups)
	if err != nil {
		return models.BackupRecord{}, fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	if err = s.kv.Set(ctx, models.KeySecureBackups, string(encoded)); err != nil {
		s.logger.Err(err).Str("func", "secureStorageService.CreateBackup").Msg("failed to store backup list")
		return models.BackupRecord{}, fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	s.logger.Info().Str("backup_id", record.ID).Int("retained", len(backups)).Msg("backup created")

	return record, nil
}

// snapshot collects the credential flags and the raw ciphertext of every
// secure item.
func (s *secureStorageService) snapshot(ctx context.Context) (models.BackupSnapshot, error) {
	creds, err := s.LoadCredentials(ctx)
	if err != nil {
		return models.BackupSnapshot{}, err
	}

	snapshot := models.BackupSnapshot{
		CreatedAt:     s.now().UTC(),
		HasPassword:   creds.HasPassword,
		LegalAccepted: creds.LegalAccepted,
	}
	if !creds.LegalAcceptedDate.IsZero() {
		snapshot.LegalAcceptedDate = creds.LegalAcceptedDate.Format(time.RFC3339)
	}

	keys, err := s.kv.Keys(ctx, models.SecureItemPrefix)
	if err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("list secure items: %w", err)
	}

	for _, key := range keys {
		value, err := s.kv.Get(ctx, key)
		if errors.Is(err, store.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return models.BackupSnapshot{}, fmt.Errorf("read secure item %q: %w", key, err)
		}
		if snapshot.Items == nil {
			snapshot.Items = make(map[string]string, len(keys))
		}
		snapshot.Items[strings.TrimPrefix(key, models.SecureItemPrefix)] = value
	}

	return snapshot, nil
}

func (s *secureStorageService) GetBackups(ctx context.Context) []models.BackupRecord {
	s.backupMu.Lock()
	defer s.backupMu.Unlock()

	return s.readBackups(ctx)
}

// readBackups must be called with backupMu held.
func (s *secureStorageService) readBackups(ctx context.Context) []models.BackupRecord {
	raw, err := s.kv.Get(ctx, models.KeySecureBackups)
	if errors.Is(err, store.ErrKeyNotFound) {
		return []models.BackupRecord{}
	}
	if err != nil {
		s.logger.Err(err).Str("func", "secureStorageService.readBackups").Msg("failed to read backup list")
		return []models.BackupRecord{}
	}

	var backups []models.BackupRecord
	if err = json.Unmarshal([]byte(raw), &backups); err != nil {
		s.logger.Warn().Err(err).Str("func", "secureStorageService.readBackups").Msg("backup list is corrupt, starting fresh")
		return []models.BackupRecord{}
	}
	if backups == nil {
		return []models.BackupRecord{}
	}

	return backups
}

func (s *secureStorageService) DecryptBackup(record models.BackupRecord, password []byte) (models.BackupSnapshot, error) {
	var snapshot models.BackupSnapshot
	if err := s.keychain.Decrypt(record.Payload, password, &snapshot); err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("%w: %w", ErrBackupUnreadable, err)
	}
	return snapshot, nil
}

// credentialKeys are removed after backups and secure items, digest last,
// so an interrupted purge still leaves a lockable password behind.
var credentialKeys = []string{
	models.KeyLegalAcceptedDate,
	models.KeyLegalAccepted,
	models.KeyHasPassword,
	models.KeyPasswordHash,
}

func (s *secureStorageService) Purge(ctx context.Context) error {
	s.backupMu.Lock()
	defer s.backupMu.Unlock()

	log := s.logger.With().Str("func", "secureStorageService.Purge").Logger()

	items, err := s.kv.Keys(ctx, models.SecureItemPrefix)
	if err != nil {
		log.Err(err).Msg("failed to list secure items")
		return fmt.Errorf("%w: list secure items: %w", ErrPurgeIncomplete, err)
	}

	order := make([]string, 0, len(items)+len(credentialKeys)+1)
	order = append(order, models.KeySecureBackups)
	order = append(order, items...)
	order = append(order, credentialKeys...)

	for _, key := range order {
		if err = s.kv.Remove(ctx, key); err != nil {
			log.Err(err).Str("key", key).Msg("failed to remove key")
			return fmt.Errorf("%w: remove %q: %w", ErrPurgeIncomplete, key, err)
		}
	}

	if err = s.verifyPurged(ctx); err != nil {
		log.Err(err).Msg("purge verification failed")
		return err
	}

	log.Info().Int("removed", len(order)).Msg("local security state purged")
	return nil
}

func (s *secureStorageService) verifyPurged(ctx context.Context) error {
	for _, key := range append([]string{models.KeySecureBackups}, credentialKeys...) {
		_, err := s.kv.Get(ctx, key)
		if errors.Is(err, store.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: verify %q: %w", ErrPurgeIncomplete, key, err)
		}
		return fmt.Errorf("%w: %q still present", ErrPurgeIncomplete, key)
	}

	left, err := s.kv.Keys(ctx, models.SecureItemPrefix)
	if err != nil {
		return fmt.Errorf("%w: verify secure items: %w", ErrPurgeIncomplete, err)
	}
	if len(left) > 0 {
		return fmt.Errorf("%w: %d secure items still present", ErrPurgeIncomplete, len(left))
	}

	return nil
}

func (s *secureStorageService) LoadCredentials(ctx context.Context) (models.CredentialRecord, error) {
	var creds models.CredentialRecord

	hash, err := s.getOptional(ctx, models.KeyPasswordHash)
	if err != nil {
		return creds, err
	}
	hasPassword, err := s.getOptional(ctx, models.KeyHasPassword)
	if err != nil {
		return creds, err
	}
	legal, err := s.getOptional(ctx, models.KeyLegalAccepted)
	if err != nil {
		return creds, err
	}
	legalDate, err := s.getOptional(ctx, models.KeyLegalAcceptedDate)
	if err != nil {
		return creds, err
	}

	creds.PasswordHash = hash
	creds.HasPassword = hasPassword == models.FlagTrue
	creds.LegalAccepted = legal == models.FlagTrue
	if legalDate != "" {
		if creds.LegalAcceptedDate, err = time.Parse(time.RFC3339, legalDate); err != nil {
			s.logger.Warn().Err(err).Msg("unparsable legal acceptance date")
		}
	}

	return creds, nil
}

// getOptional maps a missing key to "".
func (s *secureStorageService) getOptional(ctx context.Context, key string) (string, error) {
	value, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		s.logger.Err(err).Str("key", key).Msg("failed to read credential key")
		return "", fmt.Errorf("%w: read %q: %w", ErrCredentials, key, err)
	}
	return value, nil
}

func (s *secureStorageService) SaveLegalAcceptance(ctx context.Context, at time.Time) error {
	if err := s.kv.Set(ctx, models.KeyLegalAcceptedDate, at.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("%w: save acceptance date: %w", ErrCredentials, err)
	}
	if err := s.kv.Set(ctx, models.KeyLegalAccepted, models.FlagTrue); err != nil {
		return fmt.Errorf("%w: save acceptance: %w", ErrCredentials, err)
	}
	return nil
}

func (s *secureStorageService) SaveCredentials(ctx context.Context, passwordHash string) error {
	if err := s.kv.Set(ctx, models.KeyPasswordHash, passwordHash); err != nil {
		return fmt.Errorf("%w: save password hash: %w", ErrCredentials, err)
	}
	if err := s.kv.Set(ctx, models.KeyHasPassword, models.FlagTrue); err != nil {
		return fmt.Errorf("%w: save password flag: %w", ErrCredentials, err)
	}
	return nil
}
