package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/fnreg/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
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

// SetupAppTest creates a new app instance backed by a fresh table. Logs are
// kept at warn level so the buffer holds only program output, unless
// FNREG_TEST_LOGS=true is set.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	cfg.LogLevel = "warn"
	if os.Getenv("FNREG_TEST_LOGS") == "true" {
		cfg.LogLevel = "debug"
	}
	testApp := NewApp(buf, cfg, registry.New(), modules...)

	t.Cleanup(func() {
		if os.Getenv("FNREG_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), buf.String())
		}
	})

	return testApp, buf
}
