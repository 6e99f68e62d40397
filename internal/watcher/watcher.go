// Package watcher reports changes to a single file once writes to it have settled.
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leighmacdonald/capwatch/internal/log"
)

var (
	ErrWatcherCreate = errors.New("failed to create file watcher")
	ErrWatchPath     = errors.New("failed to watch path")
)

const DefaultQuiescence = 500 * time.Millisecond

// ChangeFunc is called with the watched path once changes have stopped for the quiescence window.
// Returned errors are logged.
type ChangeFunc func(ctx context.Context, path string) error

type Watcher interface {
	OnStabilizedChange(ctx context.Context, path string, handler ChangeFunc) error
}

// FileWatcher is the fsnotify backed Watcher.
type FileWatcher struct {
	quiescence time.Duration
}

func New(quiescence time.Duration) FileWatcher {
	if quiescence <= 0 {
		quiescence = DefaultQuiescence
	}

	return FileWatcher{quiescence: quiescence}
}

// OnStabilizedChange blocks until ctx is cancelled, calling handler after each burst of writes to path.
// The parent directory is watched so that the file may be created or replaced after startup.
func (w FileWatcher) OnStabilizedChange(ctx context.Context, path string, handler ChangeFunc) error {
	target, errAbs := filepath.Abs(path)
	if errAbs != nil {
		return errors.Join(errAbs, ErrWatchPath)
	}

	if _, errStat := os.Stat(target); errStat != nil {
		slog.Warn("Watched file does not exist yet", slog.String("path", target))
	}

	watcher, errWatcher := fsnotify.NewWatcher()
	if errWatcher != nil {
		return errors.Join(errWatcher, ErrWatcherCreate)
	}

	defer log.Closer(watcher)

	if errAdd := watcher.Add(filepath.Dir(target)); errAdd != nil {
		return errors.Join(errAdd, ErrWatchPath)
	}

	slog.Info("Watching log file", slog.String("path", target), slog.Duration("quiescence", w.quiescence))

	var (
		timer *time.Timer
		fire  <-chan time.Time
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

			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.quiescence)
			} else {
				timer.Reset(w.quiescence)
			}

			fire = timer.C
		case <-fire:
			fire = nil

			if errHandler := handler(ctx, target); errHandler != nil {
				slog.Error("Error executing watcher fn", log.ErrAttr(errHandler), slog.String("path", target))
			}
		case errW, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("File watcher error", log.ErrAttr(errW))
		}
	}
}
