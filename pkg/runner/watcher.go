package runner

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// maxBatch flushes early when a bulk change (a checkout, a generator) touches many files.
const maxBatch = 256

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Root is the watched directory tree.
	Root string
	// Watch globs, relative to Root, select the files that matter.
	Watch []string
	// Ignore globs, relative to Root, win over Watch and also prune directories.
	Ignore   []string
	Debounce time.Duration
}

// Watcher reports batches of changed files under a directory tree.
type Watcher struct {
	opts      WatchOptions
	fsWatcher *fsnotify.Watcher
	fsMu      sync.Mutex
	debouncer *Debouncer
	done      chan struct{}
}

// NewWatcher returns a Watcher calling onChange with the changed paths,
// relative to the root, in sorted order.
func NewWatcher(opts WatchOptions, onChange func([]string)) (*Watcher, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", opts.Root)
	}
	opts.Root = root

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot create file watcher")
	}

	w := &Watcher{
		opts:      opts,
		fsWatcher: fsWatcher,
		done:      make(chan struct{}),
	}
	w.debouncer = NewDebouncer(opts.Debounce, maxBatch, onChange)
	return w, nil
}

// Start watches the tree until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.opts.Root); err != nil {
		return err
	}
	go w.handleEvents(ctx)
	return nil
}

// Close stops watching and drops pending changes.
func (w *Watcher) Close() error {
	w.debouncer.Stop()
	w.fsMu.Lock()
	defer w.fsMu.Unlock()
	return w.fsWatcher.Close()
}

func (w *Watcher) addTree(root string) error {
	logger := logging.GetLogger("runner.watch")
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", root)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignored(w.rel(path)) {
			return filepath.SkipDir
		}

		w.fsMu.Lock()
		err = w.fsWatcher.Add(path)
		w.fsMu.Unlock()
		if err != nil {
			if path == root {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", root)
			}
			logger.Debug().Err(err).Str("path", path).Msg("Failed to watch directory")
			return nil
		}
		logger.Trace().Str("path", path).Msg("Watching directory")
		return nil
	})
}

func (w *Watcher) handleEvents(ctx context.Context) {
	logger := logging.GetLogger("runner.watch")
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			logger.Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("File event")

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.ignored(w.rel(event.Name)) {
						_ = w.addTree(event.Name)
					}
					continue
				}
			}
			if !event.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}

			if rel := w.rel(event.Name); w.Matches(rel) {
				w.debouncer.Add(rel)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.opts.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Matches reports whether a change to rel, relative to the root, triggers a run.
func (w *Watcher) Matches(rel string) bool {
	if w.ignored(rel) {
		return false
	}
	for _, pattern := range w.opts.Watch {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(rel string) bool {
	for _, pattern := range w.opts.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		// a directory pattern such as "figures/**" also covers the directory itself
		if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
			return true
		}
	}
	return false
}
