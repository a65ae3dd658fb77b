package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cruciblehq/stoker/internal/paths"
)

// User configuration, loaded from the XDG config file.
//
// Every field is optional; command-line flags override anything set here.
type File struct {
	Builder  string   `yaml:"builder"`  // Build tool binary, overriding discovery (e.g. "podman").
	Template string   `yaml:"template"` // Default template file name.
	Tags     []string `yaml:"tags"`     // Tags applied to every build.
	Args     []string `yaml:"args"`     // Extra arguments passed to every build invocation.
}

// Loads the configuration from the default location.
//
// A missing file is not an error and yields an empty configuration;
// a file that exists but cannot be read or parsed is.
func Load() (*File, error) {
	return LoadFrom(paths.ConfigFile())
}

// Loads the configuration from an explicit path.
func LoadFrom(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return &f, nil
}
