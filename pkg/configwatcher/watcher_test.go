package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"campus_voice_backend/internal/config"

	"github.com/stretchr/testify/require"
)

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	uploads := filepath.Join(dir, "uploads")
	write := func(level string) {
		body := "log:\n  level: " + level + "\nstorage:\n  local_path: " + uploads + "\n"
		require.NoError(t, os.WriteFile(file, []byte(body), 0o644))
	}
	write("info")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, file, func(cfg *config.Config) { reloaded <- cfg })
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	write("warn")

	select {
	case cfg := <-reloaded:
		require.Equal(t, "warn", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	require.NoError(t, <-done)
}
