package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		ResetPhrase string `json:"reset_phrase"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Security struct {
		IdleTimeout    Duration `json:"idle_timeout"`
		CheckInterval  Duration `json:"check_interval"`
		BackupInterval Duration `json:"backup_interval"`
		BackupLimit    int      `json:"backup_limit"`
		ArgonTime      uint32   `json:"argon_time"`
		ArgonMemory    uint32   `json:"argon_memory"`
		ArgonThreads   uint8    `json:"argon_threads"`
	} `json:"security,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ResetPhrase: jsonCfg.App.ResetPhrase,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Security: Security{
			IdleTimeout:    time.Duration(jsonCfg.Security.IdleTimeout),
			CheckInterval:  time.Duration(jsonCfg.Security.CheckInterval),
			BackupInterval: time.Duration(jsonCfg.Security.BackupInterval),
			BackupLimit:    jsonCfg.Security.BackupLimit,
			ArgonTime:      jsonCfg.Security.ArgonTime,
			ArgonMemory:    jsonCfg.Security.ArgonMemory,
			ArgonThreads:   jsonCfg.Security.ArgonThreads,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
