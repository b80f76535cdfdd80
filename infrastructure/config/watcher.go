package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DynamicConfig represents runtime-changeable configuration
type DynamicConfig struct {
	AutosaveDelayMS   int    `yaml:"autosaveDelayMS"`
	AssistantEndpoint string `yaml:"assistantEndpoint"`
}

// Watcher watches the dynamic configuration file for changes and
// notifies subscribers with the freshly parsed values.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  DynamicConfig
	mu       sync.RWMutex
	onChange []func(DynamicConfig)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewWatcher creates a watcher for the given dynamic config file
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	current, err := loadDynamicConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial dynamic config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	// Also watch the directory for atomic saves (rename operations)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("Failed to watch config directory", zap.Error(err))
	}

	w := &Watcher{
		path:    path,
		watcher: watcher,
		current: current,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// OnChange registers a callback invoked after every successful reload
func (w *Watcher) OnChange(fn func(DynamicConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Current returns the last successfully loaded values
func (w *Watcher) Current() DynamicConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Stop shuts the watcher down
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watcher error", zap.Error(err))
		}
	}
}

// reload re-parses the file; a broken file keeps the previous values
func (w *Watcher) reload() {
	updated, err := loadDynamicConfig(w.path)
	if err != nil {
		w.logger.Warn("Ignoring unreadable dynamic config", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = updated
	callbacks := append([]func(DynamicConfig){}, w.onChange...)
	w.mu.Unlock()

	w.logger.Info("Dynamic config reloaded",
		zap.Int("autosaveDelayMS", updated.AutosaveDelayMS),
	)
	for _, fn := range callbacks {
		fn(updated)
	}
}

func loadDynamicConfig(path string) (DynamicConfig, error) {
	var cfg DynamicConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
