package testutil

import (
	"testing"

	"github.com/arthur-debert/deskset/pkg/filesystem"
)

// Environment bundles the fakes most package tests need.
type Environment struct {
	FS     filesystem.FS
	Runner *FakeRunner
	Vars   map[string]string

	t *testing.T
}

// NewEnvironment creates an in-memory environment with a working directory
// at /work.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	env := &Environment{
		FS:     filesystem.NewMemory(),
		Runner: NewFakeRunner(),
		Vars:   make(map[string]string),
		t:      t,
	}
	if err := env.FS.MkdirAll("/work", 0755); err != nil {
		t.Fatalf("failed to create /work: %v", err)
	}
	return env
}

// Lookup is an os.LookupEnv replacement backed by Vars.
func (e *Environment) Lookup(key string) (string, bool) {
	v, ok := e.Vars[key]
	return v, ok
}

// WriteFile writes content into the in-memory filesystem.
func (e *Environment) WriteFile(path, content string) {
	e.t.Helper()
	if err := filesystem.WriteFileAtomic(e.FS, path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of a file in the in-memory filesystem.
func (e *Environment) ReadFile(path string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(path)
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
