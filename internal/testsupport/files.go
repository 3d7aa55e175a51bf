package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"discoprowl/internal/config"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WithLocalFallback writes a placeholder image under the test directory and
// selects it as the local artwork fallback.
func WithLocalFallback(name string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "assets", name)
		WriteFile(b.t, path, []byte("\x89PNG\r\n\x1a\n"))
		b.cfg.Artwork.FallbackKind = config.FallbackLocal
		b.cfg.Artwork.FallbackValue = path
	}
}
