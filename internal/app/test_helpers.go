package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/hcl"
	"github.com/vk/cryogeo/internal/registry"
	"github.com/vk/cryogeo/internal/yamlcfg"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. It reads both
// HCL and YAML and logs at debug level into the returned buffer.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	loader := config.Compose(hcl.NewLoader(), yamlcfg.NewLoader())
	testApp, err := NewApp(logBuffer, cfg, loader, modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("GEO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
