package wordfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"profanity/internal/platform/logger"
	"profanity/internal/services/profanity/domain"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last event
const DefaultDebounce = 500 * time.Millisecond

// Watcher applies word file edits to a service
type Watcher struct {
	path     string
	svc      domain.ServicePort
	debounce time.Duration
	log      *logger.Logger

	cur domain.Lists
}

// NewWatcher returns a watcher for path. debounce <= 0 uses DefaultDebounce
func NewWatcher(path string, svc domain.ServicePort, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     path,
		svc:      svc,
		debounce: debounce,
		log:      logger.Named("wordfile"),
	}
}

// Sync reloads the file and applies what changed since the last Sync
func (w *Watcher) Sync(ctx context.Context) error {
	next, err := Load(w.path)
	if err != nil {
		return err
	}
	if err := Apply(ctx, w.svc, w.cur, next); err != nil {
		return err
	}
	w.cur = next
	w.log.Info().
		Str("path", w.path).
		Int("whitelist", len(next.Whitelist)).
		Int("blacklist", len(next.Blacklist)).
		Int("removed", len(next.Removed)).
		Msg("word file applied")
	return nil
}

// Run watches the file's directory so editors that replace the file are
// still seen. It blocks until ctx is done. Sync is only called from here
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("wordfile: create watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("wordfile: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("wordfile: watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			if err := w.Sync(ctx); err != nil {
				w.log.Error().Err(err).Str("path", w.path).Msg("word file reload failed")
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
