package configwatcher

import (
	"context"
	"fmt"
	"hiphop_roadmap_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
server:
  mode: test
jwt:
  secret: test-secret
storage:
  type: minio
log:
  level: %s
`

func writeConfig(t *testing.T, path, level string) {
	t.Helper()
	content := []byte(fmtConfig(level))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func fmtConfig(level string) string {
	return fmt.Sprintf(baseConfig, level)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "info")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	require.NoError(t, Watch(ctx, path, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}))

	writeConfig(t, path, "warn")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "warn", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
