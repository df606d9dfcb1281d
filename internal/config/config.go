// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gulshanb/expenseman/internal/sheets"
	"github.com/spf13/viper"
)

// Sync holds engine-level settings.
type Sync struct {
	// PollInterval between automatic refreshes.
	PollInterval time.Duration
	// DBPath is where the local Task/Habit database lives.
	DBPath string
}

// LoadSheetsConfig loads spreadsheet credentials.
// Precedence:
// 1. Viper configuration (config file or EXPENSEMAN_ env vars)
// 2. Direct environment variables (GOOGLE_SHEET_URL, GOOGLE_SHEETS_API_KEY)
// Credentials may legitimately be absent; the engine then stays idle.
func LoadSheetsConfig() sheets.Config {
	config := sheets.Config{
		SheetURL: viper.GetString("sheets.url"),
		APIKey:   viper.GetString("sheets.api_key"),
	}

	if config.SheetURL == "" {
		config.SheetURL = os.Getenv("GOOGLE_SHEET_URL")
	}
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_SHEETS_API_KEY")
	}

	return config
}

// LoadSyncConfig loads engine settings, applying defaults.
func LoadSyncConfig() (Sync, error) {
	sync := Sync{
		PollInterval: 30 * time.Second,
		DBPath:       defaultDBPath(),
	}

	if v := viper.GetDuration("sync.poll_interval"); v > 0 {
		sync.PollInterval = v
	}
	if v := viper.GetString("storage.path"); v != "" {
		sync.DBPath = ExpandPath(v)
	}

	if sync.DBPath == "" {
		return Sync{}, fmt.Errorf("could not determine a database path; set storage.path")
	}
	return sync, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "expenseman", "expenseman.db")
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
