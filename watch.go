package main

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 300 * time.Millisecond

// configWatcher reloads the config file when it changes. The directory is
// watched rather than the file, as editors often save by renaming.
type configWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Config)

	mu    sync.Mutex
	timer *time.Timer
}

func watchConfig(path string, onChange func(Config)) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	cw := &configWatcher{
		path:     filepath.Clean(path),
		watcher:  w,
		onChange: onChange,
	}
	go cw.loop()
	return cw, nil
}

func (cw *configWatcher) loop() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				cw.schedule()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("config watcher error")
		}
	}
}

// schedule debounces the bursts of events a single save produces.
func (cw *configWatcher) schedule() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(reloadDebounce, cw.reload)
}

func (cw *configWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		logger.Error().Err(err).Msg("config reload failed")
		return
	}
	logger.Info().Str("file", cw.path).Msg("config reloaded")
	cw.onChange(cfg)
}

func (cw *configWatcher) Close() error {
	cw.mu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.mu.Unlock()
	return cw.watcher.Close()
}
