package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// WatchMemory observes path and calls onChange with the re-read
// configuration after each settled write. A file that fails to parse or
// validate is reported through onChange with a non-nil error and the
// previous configuration stays in effect for the caller.
// WatchMemory blocks until ctx is cancelled.
func WatchMemory(ctx context.Context, path string, onChange func(MemoryConfig, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic rename-on-save is observed.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("config watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			timerCh = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(MemoryConfig{}, fmt.Errorf("config watch: %w", err))

		case <-timerCh:
			timerCh = nil
			cfg, err := readMemory(path)
			if err == nil {
				err = cfg.Validate()
			}
			onChange(cfg, err)
		}
	}
}
