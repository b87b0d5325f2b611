package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// ResetPhrase is the confirmation phrase required by a password reset.
	ResetPhrase string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the memory/JSON/SQLite/PostgreSQL selector used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientArgon holds Argon2id cost parameters.
type ClientArgon struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// ClientSecurity holds session timers, backup rotation and key derivation
// settings.
type ClientSecurity struct {
	// IdleTimeout locks the session after this much inactivity.
	IdleTimeout time.Duration
	// CheckInterval defines how often inactivity is evaluated.
	CheckInterval time.Duration
	// BackupInterval defines how often encrypted backups are taken.
	BackupInterval time.Duration
	// BackupLimit is how many backups are retained, newest first.
	BackupLimit int
	// Argon is the key derivation cost.
	Argon ClientArgon
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Storage contains client storage settings.
	Storage ClientStorage
	// Security contains lock, backup and encryption settings.
	Security ClientSecurity
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	return getClientConfig(flag.CommandLine, os.Args[1:])
}

func getClientConfig(fs *flag.FlagSet, args []string) (*ClientConfig, error) {
	cfg, err := loadStructuredConfig(fs, args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			ResetPhrase: cfg.App.ResetPhrase,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Security: ClientSecurity{
			IdleTimeout:    cfg.Security.IdleTimeout,
			CheckInterval:  cfg.Security.CheckInterval,
			BackupInterval: cfg.Security.BackupInterval,
			BackupLimit:    cfg.Security.BackupLimit,
			Argon: ClientArgon{
				Time:      cfg.Security.ArgonTime,
				MemoryKiB: cfg.Security.ArgonMemory,
				Threads:   cfg.Security.ArgonThreads,
			},
		},
	}
}
