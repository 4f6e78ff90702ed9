package mode

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
)

// Resolution is the outcome of mode detection.
type Resolution struct {
	Mode RenderMode
	// OutputPath is only set in FileMarkdown mode.
	OutputPath string
}

// Resolve detects the render mode from env.
//
// The markdown output path wins over everything else and is created empty,
// parents included, when missing. Without it, a true viewer flag selects
// InteractiveWidget; an absent flag falls through to PlainPython. A viewer
// flag that is not a boolean is a resolution error rather than a silent
// fallback.
func Resolve(env Environment) (Resolution, error) {
	logger := logging.GetLogger("mode")

	if path, ok := env.LookupEnv(EnvMarkdownPath); ok && path != "" {
		if err := ensureFile(path); err != nil {
			return Resolution{}, err
		}
		logger.Debug().Str("output", path).Msg("Resolved markdown file mode")
		return Resolution{Mode: FileMarkdown, OutputPath: path}, nil
	}

	inViewer, err := runningInViewer(env)
	if err != nil {
		return Resolution{}, err
	}
	if inViewer {
		logger.Debug().Msg("Resolved interactive widget mode")
		return Resolution{Mode: InteractiveWidget}, nil
	}

	logger.Debug().Msg("Resolved plain mode")
	return Resolution{Mode: PlainPython}, nil
}

func runningInViewer(env Environment) (bool, error) {
	raw, ok := env.LookupEnv(EnvViewer)
	if !ok || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	inViewer, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrModeResolution,
			"%s must be a boolean, got %q", EnvViewer, raw)
	}
	return inViewer, nil
}

// ensureFile creates path empty, with its parent directories, when missing.
func ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat markdown output %s", path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dir)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create markdown output %s", path)
	}
	return f.Close()
}

// Resolver memoizes one Resolution for its own lifetime.
type Resolver struct {
	env      Environment
	resolved *Resolution
}

// NewResolver returns a resolver reading env.
func NewResolver(env Environment) *Resolver {
	return &Resolver{env: env}
}

// Resolve returns the cached resolution, resolving on first use.
// Failed resolutions are not cached.
func (r *Resolver) Resolve() (Resolution, error) {
	if r.resolved != nil {
		return *r.resolved, nil
	}
	res, err := Resolve(r.env)
	if err != nil {
		return Resolution{}, err
	}
	r.resolved = &res
	return res, nil
}

// Invalidate drops the cached resolution.
func (r *Resolver) Invalidate() {
	r.resolved = nil
}

// EnableMarkdown selects FileMarkdown mode for path, creating the file if missing.
func EnableMarkdown(env Environment, path string) error {
	if path == "" {
		return errors.New(errors.ErrNoOutputPath, "markdown output path cannot be empty")
	}
	if err := env.Setenv(EnvMarkdownPath, path); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot set markdown output path")
	}
	return ensureFile(path)
}

// DisableMarkdown removes the markdown output path, restoring auto-detection.
func DisableMarkdown(env Environment) error {
	return env.Unsetenv(EnvMarkdownPath)
}

// EnableViewer marks env as running inside the interactive viewer.
func EnableViewer(env Environment) error {
	return env.Setenv(EnvViewer, "1")
}

// DisableViewer removes the viewer flag.
func DisableViewer(env Environment) error {
	return env.Unsetenv(EnvViewer)
}
