package utils

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/owenthereal/tilde/tilde"
)

// ConfigDir is $XDG_CONFIG_HOME/tilde.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, tilde.AppName)
}

// ConfigFilePath is the optional config file inside ConfigDir.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), tilde.ConfigFileName)
}

// StateDir is $XDG_STATE_HOME/tilde.
func StateDir() string {
	return filepath.Join(xdg.StateHome, tilde.AppName)
}

// DefaultLogFilePath is where logs go unless --log-file says otherwise.
func DefaultLogFilePath() string {
	return filepath.Join(StateDir(), tilde.LogFileName)
}
