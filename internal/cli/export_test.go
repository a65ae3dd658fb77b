package cli

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteArchive(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "app.go"), []byte("package app\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "context.tar")
	if err := writeArchive(out, root, []byte("FROM alpine\n")); err != nil {
		t.Fatalf("writeArchive: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer f.Close()

	header, err := tar.NewReader(f).Next()
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if header.Name != "Dockerfile" {
		t.Errorf("first entry = %q, want Dockerfile", header.Name)
	}
}

func TestWriteArchiveBadPath(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "missing", "context.tar")
	if err := writeArchive(out, root, nil); err == nil {
		t.Fatal("writeArchive to a missing directory: expected error")
	}
}
