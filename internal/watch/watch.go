// Package watch reports changes to ESLint configuration files under a workspace
// for clients that cannot watch files themselves.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/eslintls/internal/logging"
)

const debounceInterval = 50 * time.Millisecond

// ChangeType mirrors the protocol's file change types.
type ChangeType int

// Change types.
const (
	Created ChangeType = 1
	Changed ChangeType = 2
	Deleted ChangeType = 3
)

// Change is a change to one watched file.
type Change struct {
	Path string
	Type ChangeType
}

// skippedDirs are never watched.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
	".svn":         true,
}

// Watcher delivers batches of configuration file changes.
type Watcher struct {
	fsw    *fsnotify.Watcher
	filter func(path string) bool
}

// New watches root and its subdirectories. Only paths accepted by filter are
// reported.
func New(ctx context.Context, root string, filter func(path string) bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{fsw: fsw, filter: filter}
	if err := w.addTree(ctx, root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(ctx context.Context, root string) error {
	logger := logging.FromContext(ctx)
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (skippedDirs[entry.Name()] || strings.HasPrefix(entry.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			logger.Warn("cannot watch directory", logging.FieldPath, path, logging.FieldError, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}

// Run delivers changes to onChange until ctx is done or the watcher is closed.
// Events arriving within a short interval of each other are delivered together,
// keeping the last change per path.
func (w *Watcher) Run(ctx context.Context, onChange func([]Change)) error {
	logger := logging.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			pending := map[string]ChangeType{}
			var order []string
			w.collect(ctx, event, pending, &order)

		debounce:
			for {
				select {
				case event, ok := <-w.fsw.Events:
					if !ok {
						break debounce
					}
					w.collect(ctx, event, pending, &order)
				case <-time.After(debounceInterval):
					break debounce
				}
			}

			if len(order) == 0 {
				continue
			}
			changes := make([]Change, 0, len(order))
			for _, path := range order {
				changes = append(changes, Change{Path: path, Type: pending[path]})
			}
			onChange(changes)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("error watching files", logging.FieldError, err)
		}
	}
}

func (w *Watcher) collect(ctx context.Context, event fsnotify.Event, pending map[string]ChangeType, order *[]string) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(ctx, event.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logging.FromContext(ctx).Warn("cannot watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
			}
			return
		}
	}
	if w.filter != nil && !w.filter(event.Name) {
		return
	}

	typ, ok := changeType(event)
	if !ok {
		return
	}
	logging.FromContext(ctx).Debug("config file event", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
	if _, seen := pending[event.Name]; !seen {
		*order = append(*order, event.Name)
	}
	pending[event.Name] = typ
}

func changeType(event fsnotify.Event) (ChangeType, bool) {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Deleted, true
	case event.Has(fsnotify.Create):
		return Created, true
	case event.Has(fsnotify.Write):
		return Changed, true
	default:
		return 0, false
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
