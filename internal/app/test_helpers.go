package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/circuitprobe/internal/hcl"
	"github.com/specialistvlad/circuitprobe/internal/registry"
	"github.com/specialistvlad/circuitprobe/internal/testutil"
)

// SetupAppTest creates a new app instance with debug logging captured in a
// buffer. Set CIRCUITPROBE_TEST_LOGS=true to print the logs of every test.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(logBuffer, cfg, hcl.NewLoader(), modules...)

	t.Cleanup(func() {
		if os.Getenv("CIRCUITPROBE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
