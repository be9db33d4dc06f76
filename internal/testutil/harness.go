// Package testutil holds shared helpers and fixtures for package tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/circuitprobe/internal/builder"
	"github.com/specialistvlad/circuitprobe/internal/catalog"
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/hcl"
	"github.com/specialistvlad/circuitprobe/internal/library"
	"github.com/specialistvlad/circuitprobe/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes files, keyed by relative path, into a fresh temporary
// directory and returns its path.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

// Registry returns a validated registry of the built-in library.
func Registry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	library.Module{}.Register(reg)
	model, err := hcl.NewLoader().LoadSource(context.Background(), library.ManifestName, library.Manifest)
	require.NoError(t, err)
	reg.PopulateDefinitionsFromModel(model)
	require.NoError(t, reg.ValidateRegistry(context.Background()))
	return reg
}

// Catalog builds the catalog of reg.
func Catalog(t *testing.T, reg *registry.Registry) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Build(reg.Descriptors())
	require.NoError(t, err)
	return cat
}

// Env is a built document together with the registry and catalog it was
// built with.
type Env struct {
	Doc      *circuit.Document
	Registry *registry.Registry
	Catalog  *catalog.Catalog
}

// Board returns the board called name, failing the test when absent.
func (e *Env) Board(t *testing.T, name string) *circuit.Board {
	t.Helper()
	b, ok := e.Doc.Board(name)
	require.True(t, ok, "board %q not found", name)
	return b
}

// Build loads src as a document against the built-in library.
func Build(t *testing.T, src string) *Env {
	t.Helper()
	reg := Registry(t)
	model, err := hcl.NewLoader().LoadSource(context.Background(), "test.hcl", []byte(src))
	require.NoError(t, err)
	doc, err := builder.Build(context.Background(), "test.hcl", model, reg)
	require.NoError(t, err)
	return &Env{Doc: doc, Registry: reg, Catalog: Catalog(t, reg)}
}
