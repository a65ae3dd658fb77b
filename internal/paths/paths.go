package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "stoker"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the user configuration file.
//
//	Linux:   ~/.config/stoker/config.yaml
//	macOS:   ~/Library/Application Support/stoker/config.yaml
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, toolName, "config.yaml")
}

// Path to the directory for persistent state (render caches, logs).
//
//	Linux:   ~/.local/state/stoker
//	macOS:   ~/Library/Application Support/stoker/state
func StateDir() string {
	if xdg.StateHome != "" {
		return filepath.Join(xdg.StateHome, toolName)
	}
	return filepath.Join(xdg.DataHome, toolName, "state")
}
