package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// WatchAdvisory watches the config file and logs a warning when it changes
// on disk. webcron does not reload configuration at runtime; the warning
// tells the operator a restart is needed to pick the change up. Blocks
// until ctx is done.
func WatchAdvisory(ctx context.Context, path string, log zerolog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory, not the file: editors commonly replace the file
	// (rename + create), which drops a direct file watch.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	base := filepath.Base(path)

	// debounce so one save (often several write events) warns once
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	warn := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(250*time.Millisecond, func() {
			log.Warn().Str("path", path).Msg("configuration file changed on disk; restart webcron to apply")
		})
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				warn()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Debug().Err(err).Msg("config watcher error")
		}
	}
}
