package vnfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds the persisted user preferences of the CLI.
type Settings struct {
	// Model is an advisory model alias (flash-lite, flash, pro) or the
	// literal "custom".
	Model string `json:"model,omitempty"`
	// CustomModel is the full model identifier used when Model is "custom".
	CustomModel string `json:"customModel,omitempty"`
	// SyncURL is the webhook endpoint of the remote sheet, if configured.
	SyncURL string `json:"syncUrl,omitempty"`
}

// ReadSettingsFile loads settings from path. A missing file yields zero
// settings.
func ReadSettingsFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("cannot read settings file %q: %w", path, err)
	}
	return s, nil
}

// WriteSettingsFile saves settings to path.
func WriteSettingsFile(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
