package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Reads every entry of a tar stream into a name to content map.
func readTar(t *testing.T, r io.Reader) map[string]string {
	t.Helper()

	entries := make(map[string]string)
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading tar: %v", err)
		}
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, tr); err != nil {
			t.Fatalf("reading %s: %v", header.Name, err)
		}
		entries[header.Name] = buf.String()
	}
	return entries
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExportContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":        "package main\n",
		"sub/helper.go":  "package sub\n",
		"sub/helper.txt": "notes\n",
	})

	var buf bytes.Buffer
	if err := ExportContext(&buf, root, []byte("FROM alpine\n")); err != nil {
		t.Fatalf("ExportContext: %v", err)
	}

	got := readTar(t, &buf)
	want := map[string]string{
		"Dockerfile":     "FROM alpine\n",
		"main.go":        "package main\n",
		"sub/":           "",
		"sub/helper.go":  "package sub\n",
		"sub/helper.txt": "notes\n",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tar contents mismatch (-want +got):\n%s", diff)
	}
}

func TestExportContextDockerfileInjectedFirst(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a\n"})

	var buf bytes.Buffer
	if err := ExportContext(&buf, root, []byte("FROM scratch\n")); err != nil {
		t.Fatalf("ExportContext: %v", err)
	}

	tr := tar.NewReader(&buf)
	header, err := tr.Next()
	if err != nil {
		t.Fatalf("reading tar: %v", err)
	}
	if header.Name != "Dockerfile" {
		t.Errorf("first entry = %q, want Dockerfile", header.Name)
	}
}

func TestExportContextShadowsOnDiskDockerfile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Dockerfile": "FROM stale\n"})

	var buf bytes.Buffer
	if err := ExportContext(&buf, root, []byte("FROM rendered\n")); err != nil {
		t.Fatalf("ExportContext: %v", err)
	}

	got := readTar(t, &buf)
	if got["Dockerfile"] != "FROM rendered\n" {
		t.Errorf("Dockerfile entry = %q, want rendered content", got["Dockerfile"])
	}
}

func TestExportContextDockerignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".dockerignore": "# build outputs\n*.log\n\ndist\n",
		"app.go":        "package app\n",
		"debug.log":     "noise\n",
		"dist/out.bin":  "bits\n",
	})

	var buf bytes.Buffer
	if err := ExportContext(&buf, root, []byte("FROM alpine\n")); err != nil {
		t.Fatalf("ExportContext: %v", err)
	}

	got := readTar(t, &buf)
	for _, name := range []string{"debug.log", "dist/", "dist/out.bin"} {
		if _, ok := got[name]; ok {
			t.Errorf("excluded entry %q present in archive", name)
		}
	}
	for _, name := range []string{"app.go", ".dockerignore"} {
		if _, ok := got[name]; !ok {
			t.Errorf("expected entry %q missing from archive", name)
		}
	}
}

func TestExportContextMissingDockerignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a\n"})

	var buf bytes.Buffer
	if err := ExportContext(&buf, root, nil); err != nil {
		t.Fatalf("ExportContext without .dockerignore: %v", err)
	}
}
