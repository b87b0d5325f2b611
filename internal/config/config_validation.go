// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final [ClientConfig] satisfies all runtime
// invariants before it is used at startup.
func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	if strings.TrimSpace(cfg.App.ResetPhrase) == "" {
		return ErrInvalidAppConfigs
	}

	sec := cfg.Security
	switch {
	case sec.IdleTimeout <= 0:
		return fmt.Errorf("%w: idle timeout must be positive", ErrInvalidSecurityConfigs)
	case sec.CheckInterval <= 0 || sec.CheckInterval > sec.IdleTimeout:
		return fmt.Errorf("%w: check interval must be positive and not exceed idle timeout", ErrInvalidSecurityConfigs)
	case sec.BackupInterval <= 0:
		return fmt.Errorf("%w: backup interval must be positive", ErrInvalidSecurityConfigs)
	case sec.BackupLimit < 1:
		return fmt.Errorf("%w: backup limit must be at least 1", ErrInvalidSecurityConfigs)
	case sec.Argon.Time == 0 || sec.Argon.MemoryKiB == 0 || sec.Argon.Threads == 0:
		return fmt.Errorf("%w: argon2 parameters must be non-zero", ErrInvalidSecurityConfigs)
	}

	return nil
}
