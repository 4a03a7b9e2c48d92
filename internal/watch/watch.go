// Package watch reruns a compilation whenever Go sources below a directory
// change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher triggers Run after a quiet period following source changes.
// Runs happen on the watching goroutine, one at a time.
type Watcher struct {
	Root     string
	Exclude  []string // directory basenames skipped besides the defaults
	Debounce time.Duration
	Run      func() error
	Logger   zerolog.Logger
}

// Watch blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addTree(watcher, w.Root); err != nil {
		return err
	}

	w.Logger.Info().Str("path", w.Root).Dur("debounce", w.Debounce).Msg("watching sources for changes")

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.addTree(watcher, event.Name); err != nil {
					w.Logger.Warn().Err(err).Str("dir", event.Name).Msg("cannot watch new directory")
				}

				continue
			}

			if !isSource(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}

			w.Logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("source changed")

			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}

			pending = timer.C

		case <-pending:
			pending = nil

			if err := w.Run(); err != nil {
				w.Logger.Error().Err(err).Msg("regeneration failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			w.Logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}

// addTree watches dir and every directory below it that a scan would visit.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}

			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if path != dir && (skipDir(entry.Name()) || slices.Contains(w.Exclude, entry.Name())) {
			return filepath.SkipDir
		}

		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch directory %s: %w", path, err)
		}

		return nil
	})
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
