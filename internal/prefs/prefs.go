package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const prefsFile = "prefs.json"

// UI holds view settings that survive restarts.
type UI struct {
	Theme            string `json:"theme,omitempty"`
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
}

// Path returns the prefs file location under the user config dir, creating the directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "golfduel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFile), nil
}

func Save(p UI) error {
	path, err := Path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load returns the zero value when nothing has been saved yet.
func Load() (UI, error) {
	path, err := Path()
	if err != nil {
		return UI{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return UI{}, nil
		}
		return UI{}, err
	}
	var p UI
	if err := json.Unmarshal(data, &p); err != nil {
		return UI{}, err
	}
	return p, nil
}
