package config

import (
	"flag"
	"fmt"
)

// ParseFlags parses configuration flags from args into a fresh config layer.
// Unset flags leave their fields zero so lower-priority layers show through.
//
// Flags:
//
//	-d database DSN (":memory:", "*.json", "postgres://...", sqlite path)
//	-c/-config json file path with configs
//	-idle-timeout inactivity period before auto-lock (e.g. "30m")
//	-check-interval inactivity check period (e.g. "10s")
//	-backup-interval periodic backup period (e.g. "5m")
//	-backup-limit number of retained backups
//	-reset-phrase confirmation phrase for a password reset
func ParseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var cfg StructuredConfig

	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&cfg.Security.IdleTimeout, "idle-timeout", 0, "Inactivity period before auto-lock (e.g., 30m)")
	fs.DurationVar(&cfg.Security.CheckInterval, "check-interval", 0, "Inactivity check period (e.g., 10s)")
	fs.DurationVar(&cfg.Security.BackupInterval, "backup-interval", 0, "Periodic backup period (e.g., 5m)")
	fs.IntVar(&cfg.Security.BackupLimit, "backup-limit", 0, "Number of retained backups")
	fs.StringVar(&cfg.App.ResetPhrase, "reset-phrase", "", "Confirmation phrase for a password reset")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &cfg, nil
}
