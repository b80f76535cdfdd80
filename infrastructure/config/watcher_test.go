package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeDynamicConfig(t *testing.T, path string, autosaveMS int) {
	t.Helper()
	content := []byte(fmt.Sprintf("autosaveDelayMS: %d\n", autosaveMS))
	require.NoError(t, os.WriteFile(path, content, 0o600))
}

func TestWatcher_InitialLoad(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "dynamic.yaml")
	writeDynamicConfig(t, path, 1500)

	// Act
	watcher, err := NewWatcher(path, zap.NewNop())

	// Assert
	require.NoError(t, err)
	defer watcher.Stop()
	assert.Equal(t, 1500, watcher.Current().AutosaveDelayMS)
}

func TestWatcher_MissingFileFails(t *testing.T) {
	// Act
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent.yaml"), zap.NewNop())

	// Assert
	assert.Error(t, err)
}

func TestWatcher_NotifiesOnRewrite(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "dynamic.yaml")
	writeDynamicConfig(t, path, 2000)
	watcher, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Stop()

	var mu sync.Mutex
	var seen []int
	watcher.OnChange(func(dc DynamicConfig) {
		mu.Lock()
		seen = append(seen, dc.AutosaveDelayMS)
		mu.Unlock()
	})

	// Act
	writeDynamicConfig(t, path, 500)

	// Assert
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == 500
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, 500, watcher.Current().AutosaveDelayMS)
}

func TestWatcher_BrokenRewriteKeepsPreviousValues(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "dynamic.yaml")
	writeDynamicConfig(t, path, 2000)
	watcher, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Stop()

	// Act
	require.NoError(t, os.WriteFile(path, []byte("autosaveDelayMS: [broken"), 0o600))
	time.Sleep(200 * time.Millisecond)

	// Assert
	assert.Equal(t, 2000, watcher.Current().AutosaveDelayMS)
}
