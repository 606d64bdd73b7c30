package config

import (
	"os"
	"path/filepath"
)

// configDirOverride is set by tests to redirect ConfigDir.
var configDirOverride string

// dataDirOverride is set by tests to redirect DataDir.
var dataDirOverride string

// ConfigDir returns the config directory for infoterm.
func ConfigDir() string {
	if configDirOverride != "" {
		return configDirOverride
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "infoterm")
}

// ConfigFilePath returns the path of the preferences file.
func ConfigFilePath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.json")
}

// DataDir returns ~/.local/share/infoterm, creating it if needed.
func DataDir() (string, error) {
	dir := dataDirOverride
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "share", "infoterm")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
