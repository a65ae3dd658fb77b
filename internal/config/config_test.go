package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	f, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if f.Builder != "" || f.Template != "" || len(f.Tags) != 0 {
		t.Fatalf("missing file yielded non-empty config: %+v", f)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "builder: podman\ntemplate: Dockerfile.tmpl\ntags:\n  - registry/app:dev\nargs:\n  - --pull\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if f.Builder != "podman" {
		t.Fatalf("builder = %q, want podman", f.Builder)
	}
	if f.Template != "Dockerfile.tmpl" {
		t.Fatalf("template = %q, want Dockerfile.tmpl", f.Template)
	}
	if len(f.Tags) != 1 || f.Tags[0] != "registry/app:dev" {
		t.Fatalf("tags = %v", f.Tags)
	}
	if len(f.Args) != 1 || f.Args[0] != "--pull" {
		t.Fatalf("args = %v", f.Args)
	}
}

func TestLoadFromMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("builder: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
}
