package app

import (
	"os"
	"testing"

	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. The app logs
// at debug level into the returned buffer and is closed when the test ends.
func SetupAppTest(t *testing.T, cfg *Config, modules ...catalog.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp, err := NewApp(logBuffer, cfg, modules...)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	t.Cleanup(func() {
		if err := testApp.Close(); err != nil {
			t.Errorf("failed to close app: %v", err)
		}
		if os.Getenv("MATHVIZ_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
