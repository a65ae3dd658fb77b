package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "Dockerfile.tmpl", "FROM {{ .Base }}\n")

	eng := New(dir)
	eng.Set("Base", "alpine:3.20")

	var out strings.Builder
	if err := eng.RenderFile("Dockerfile.tmpl", &out); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	if out.String() != "FROM alpine:3.20\n" {
		t.Fatalf("rendered %q", out.String())
	}
}

func TestRenderFileSprigFuncs(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "t.tmpl", `{{ "alpine" | upper }}:{{ list "a" "b" | join "," }}`)

	var out strings.Builder
	if err := New(dir).RenderFile("t.tmpl", &out); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	if out.String() != "ALPINE:a,b" {
		t.Fatalf("rendered %q", out.String())
	}
}

func TestRenderFileMissingTemplate(t *testing.T) {
	err := New(t.TempDir()).RenderFile("absent.tmpl", &strings.Builder{})
	if !errors.Is(err, ErrTemplate) {
		t.Fatalf("err = %v, want ErrTemplate", err)
	}
}

func TestRenderFileUndefinedVariable(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "t.tmpl", "FROM {{ .Vars.missing }}\n")

	eng := New(dir)
	eng.Set("Vars", map[string]string{})
	err := eng.RenderFile("t.tmpl", &strings.Builder{})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("err = %v, want ErrRender", err)
	}
}

type fakeRuntime struct {
	tags []string
}

func (f *fakeRuntime) AddTag(tag string) (string, error) {
	f.tags = append(f.tags, tag)
	return "", nil
}

func TestRenderFileMethodCalls(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "t.tmpl", `{{ .Stoker.AddTag "registry/app:1" }}FROM alpine`)

	rt := &fakeRuntime{}
	eng := New(dir)
	eng.Set("Stoker", rt)

	var out strings.Builder
	if err := eng.RenderFile("t.tmpl", &out); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	if out.String() != "FROM alpine" {
		t.Fatalf("rendered %q", out.String())
	}
	if len(rt.tags) != 1 || rt.tags[0] != "registry/app:1" {
		t.Fatalf("tags = %v", rt.tags)
	}
}
