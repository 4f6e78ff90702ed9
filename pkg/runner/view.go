package runner

import (
	"context"
	stderrors "errors"
	"io"
	"sync"

	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/arthur-debert/docforge/pkg/mode"
	"github.com/arthur-debert/docforge/pkg/widget"
)

// ViewOptions configures View.
type ViewOptions struct {
	Doc string
	// Format is forwarded to the document's terminal host.
	Format widget.Format
	Stdout io.Writer
	Stderr io.Writer
	// OnRun, when set, is called before every run with the paths that
	// triggered it; the first run has none.
	OnRun func(changed []string)
}

// viewer runs one document at a time, restarting it on change.
type viewer struct {
	runner *Runner
	doc    document
	opts   ViewOptions

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// View runs the document in viewer mode and re-runs it whenever a watched
// file changes, until ctx is cancelled. A run still in progress when a
// change arrives is cancelled first.
func (r *Runner) View(ctx context.Context, opts ViewOptions) error {
	logger := logging.GetLogger("runner.view")

	doc, err := resolveDocument(opts.Doc)
	if err != nil {
		return err
	}
	v := &viewer{runner: r, doc: doc, opts: opts}

	w, err := NewWatcher(WatchOptions{
		Root:     doc.Dir,
		Watch:    r.settings.Viewer.Watch,
		Ignore:   r.settings.Viewer.Ignore,
		Debounce: r.settings.Viewer.Debounce,
	}, func(changed []string) {
		logger.Info().Strs("changed", changed).Msg("Change detected, re-running")
		v.start(ctx, changed)
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Close()
		return err
	}

	logger.Info().Str("doc", opts.Doc).Str("dir", doc.Dir).Msg("Viewing document")
	v.start(ctx, nil)

	<-ctx.Done()
	if err := w.Close(); err != nil {
		logger.Debug().Err(err).Msg("Failed to close watcher")
	}
	v.stop()
	return nil
}

// start cancels the running child, if any, and launches a new one.
func (v *viewer) start(parent context.Context, changed []string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if parent.Err() != nil {
		return
	}
	if v.cancel != nil {
		v.cancel()
	}
	// the previous run must be gone before the next one writes to the terminal
	v.wg.Wait()

	ctx, cancel := context.WithCancel(parent)
	v.cancel = cancel

	if v.opts.OnRun != nil {
		v.opts.OnRun(changed)
	}

	env := []string{
		mode.EnvMarkdownPath + "=",
		mode.EnvViewer + "=1",
		widget.EnvFormat + "=" + v.opts.Format.String(),
	}
	cmd := v.runner.goCommand(v.doc, env, v.opts.Stdout, v.opts.Stderr)

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		logger := logging.GetLogger("runner.view")
		err := v.runner.commands.Run(ctx, cmd)
		switch {
		case err == nil:
			logger.Debug().Msg("Document run finished")
		case stderrors.Is(ctx.Err(), context.Canceled):
			logger.Debug().Msg("Document run cancelled")
		default:
			// a broken document keeps the viewer alive until the next change
			logger.Error().Err(err).Msg("Document run failed")
		}
	}()
}

func (v *viewer) stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
	}
	v.wg.Wait()
}
