package config

import (
	"context"
	"fmt"
	"path/filepath"

	"callstrip/log"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file at path whenever it is written and passes
// every valid result to onChange. Invalid edits are logged and skipped, so the
// last good config stays in effect. The parent directory is watched because
// editors often replace files by rename. Watch returns once the watcher is
// running; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadConfigFrom(path)
				if err != nil {
					log.WarningLog.Printf("ignoring config change: %v", err)
					continue
				}
				log.InfoLog.Printf("reloaded config from %s", path)
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WarningLog.Printf("config watcher error: %v", err)
			}
		}
	}()
	return nil
}
