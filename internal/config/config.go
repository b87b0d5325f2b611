// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-quote-guard application. It aggregates all sub-configurations and is
// populated by merging defaults, an optional JSON file, environment
// variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Security holds lock timers, backup rotation and key derivation cost.
	Security Security `envPrefix:"SECURITY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// ResetPhrase must be typed verbatim before a password reset wipes
	// the local data.
	// Env: APP_RESET_PHRASE
	ResetPhrase string `env:"RESET_PHRASE"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the key-value database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the key-value backend.
type DB struct {
	// DSN selects the backend: ":memory:", a "*.json" file, a
	// "postgres://" URL or a SQLite file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Security holds the timers of an unlocked session and the cost of
// password-derived encryption.
type Security struct {
	// IdleTimeout is the inactivity period after which the session locks.
	// Env: SECURITY_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`

	// CheckInterval is how often inactivity is evaluated.
	// Env: SECURITY_CHECK_INTERVAL
	CheckInterval time.Duration `env:"CHECK_INTERVAL"`

	// BackupInterval is how often an encrypted backup is taken.
	// Env: SECURITY_BACKUP_INTERVAL
	BackupInterval time.Duration `env:"BACKUP_INTERVAL"`

	// BackupLimit is the number of most recent backups retained.
	// Env: SECURITY_BACKUP_LIMIT
	BackupLimit int `env:"BACKUP_LIMIT"`

	// ArgonTime, ArgonMemory (KiB) and ArgonThreads parametrize Argon2id.
	// Env: SECURITY_ARGON_TIME, SECURITY_ARGON_MEMORY, SECURITY_ARGON_THREADS
	ArgonTime    uint32 `env:"ARGON_TIME"`
	ArgonMemory  uint32 `env:"ARGON_MEMORY"`
	ArgonThreads uint8  `env:"ARGON_THREADS"`
}

// Defaults.
const (
	DefaultDSN            = "quote-guard.db"
	DefaultResetPhrase    = "DELETE ALL DATA"
	DefaultIdleTimeout    = 30 * time.Minute
	DefaultCheckInterval  = 10 * time.Second
	DefaultBackupInterval = 5 * time.Minute
	DefaultBackupLimit    = 5
	DefaultArgonTime      = 1
	DefaultArgonMemory    = 64 * 1024
	DefaultArgonThreads   = 4
)

// defaultConfig is the lowest-priority layer of the builder.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{ResetPhrase: DefaultResetPhrase},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Security: Security{
			IdleTimeout:    DefaultIdleTimeout,
			CheckInterval:  DefaultCheckInterval,
			BackupInterval: DefaultBackupInterval,
			BackupLimit:    DefaultBackupLimit,
			ArgonTime:      DefaultArgonTime,
			ArgonMemory:    DefaultArgonMemory,
			ArgonThreads:   DefaultArgonThreads,
		},
	}
}

// GetStructuredConfig loads the merged configuration from defaults, the
// optional JSON file, environment variables and the process flags.
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadStructuredConfig(flag.CommandLine, os.Args[1:])
}

func loadStructuredConfig(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs, args).
		withJSON().
		build()
}
