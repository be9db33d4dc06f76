package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/circuitprobe/internal/hcl"
	"github.com/specialistvlad/circuitprobe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		want    *Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{}, want: &Config{LogLevel: "info", LogFormat: "text"}},
		{name: "pretty", cfg: Config{LogLevel: "debug", LogFormat: "pretty"}, want: &Config{LogLevel: "debug", LogFormat: "pretty"}},
		{name: "bad level", cfg: Config{LogLevel: "loud"}, wantErr: true},
		{name: "bad format", cfg: Config{LogFormat: "xml"}, wantErr: true},
		{name: "empty catalog path", cfg: Config{CatalogPaths: []string{""}}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewConfig(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewApp_BuiltInCatalog(t *testing.T) {
	a, logs := SetupAppTest(t, &Config{})

	h, err := a.Catalog().Lookup("Wiring", "Input Pin")
	require.NoError(t, err)
	assert.Equal(t, "pin", h.Kind)
	assert.Contains(t, logs.String(), "Registry validation passed.")
}

func TestNewApp_ExtraManifests(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"extra/bus.hcl": `
component "Wiring" "Bus Tunnel" {
  kind = "tunnel"
  properties = {
    label = ""
    bits  = 8
  }
}`,
	})

	a, _ := SetupAppTest(t, &Config{CatalogPaths: []string{filepath.Join(dir, "extra")}})
	h, err := a.Catalog().Lookup("Wiring", "Bus Tunnel")
	require.NoError(t, err)
	assert.Equal(t, "bits", h.Discriminator)
}

func TestNewApp_PanicsOnBadManifest(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"bad.hcl": `
component "Wiring" "Splitter" {
  kind = "splitter"
}`,
	})
	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, &Config{CatalogPaths: []string{filepath.Join(dir, "bad.hcl")}}, hcl.NewLoader())
	})
	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, &Config{CatalogPaths: []string{filepath.Join(dir, "missing.hcl")}}, hcl.NewLoader())
	})
}

func TestOpenDocument(t *testing.T) {
	a, _ := SetupAppTest(t, &Config{})
	ctx := a.Context(context.Background())
	dir := testutil.WriteFiles(t, map[string]string{
		"adder.hcl": testutil.FullAdder,
		"mixed.hcl": `
component "Wiring" "Thing" {
  kind = "tunnel"
}`,
	})

	doc, err := a.OpenDocument(ctx, filepath.Join(dir, "adder.hcl"))
	require.NoError(t, err)
	assert.Len(t, doc.Boards(), 2)
	assert.Equal(t, filepath.Join(dir, "adder.hcl"), doc.Path)

	_, err = a.OpenDocument(ctx, filepath.Join(dir, "nope.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = a.OpenDocument(ctx, filepath.Join(dir, "mixed.hcl"))
	assert.ErrorContains(t, err, "--catalog")

	doc, err = a.OpenSource(ctx, "inline.hcl", []byte(testutil.Tunnels))
	require.NoError(t, err)
	_, ok := doc.Board("tunnels")
	assert.True(t, ok)
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"text", "json", "pretty"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger("warn", format, &buf)
			logger.Info("hidden")
			logger.Warn("shown", "board", "adder")
			assert.NotContains(t, buf.String(), "hidden")
			assert.Contains(t, buf.String(), "shown")
			assert.Contains(t, buf.String(), "adder")
		})
	}
}
