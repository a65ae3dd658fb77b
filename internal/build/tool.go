package build

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// Discovers the default build tool binary once per process.
//
// Candidates in order: the $DOCKER environment variable, docker, podman.
var defaultTool = sync.OnceValues(func() (string, error) {
	candidates := []string{os.Getenv("DOCKER"), "docker", "podman"}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if path, err := exec.LookPath(c); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: docker or podman not found in PATH", ErrNoTool)
})

// Resolves the build tool binary, honoring an explicit override.
func findTool(override string) (string, error) {
	if override != "" {
		path, err := exec.LookPath(override)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoTool, err)
		}
		return path, nil
	}
	return defaultTool()
}
