package note

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/arthur-debert/docforge/pkg/mode"
	"github.com/arthur-debert/docforge/pkg/widget"
)

// DefaultSeparator separates rendered entries: one blank line.
const DefaultSeparator = "\n\n"

// RenderConfig is everything a render call depends on.
type RenderConfig struct {
	Mode mode.RenderMode
	// OutputPath is the markdown file rendered content is appended to;
	// "" renders without writing.
	OutputPath string
	// Host receives content in InteractiveWidget mode.
	Host widget.Host
	// Separator joins rendered entries; DefaultSeparator when empty.
	Separator string
}

func (c RenderConfig) separator() string {
	if c.Separator == "" {
		return DefaultSeparator
	}
	return c.Separator
}

func (c RenderConfig) context() RenderContext {
	if c.OutputPath == "" {
		return RenderContext{}
	}
	return RenderContext{OutputDir: filepath.Dir(c.OutputPath)}
}

// Render renders items in order according to cfg.
//
// In markdown modes the entries are joined with the separator and returned;
// with an output path, the joined block is appended to the file in one
// write. In InteractiveWidget mode every item is presented on the host and
// the result is "". A failing item aborts the call before anything is
// written.
func Render(cfg RenderConfig, items ...Displayable) (string, error) {
	return render(cfg, "", items)
}

// render is Render with lead written to the file ahead of the block.
func render(cfg RenderConfig, lead string, items []Displayable) (string, error) {
	logger := logging.GetLogger("note.render")

	switch {
	case cfg.Mode.ProducesMarkdown():
		out, err := renderMarkdown(cfg, items)
		if err != nil {
			return "", err
		}
		if cfg.OutputPath != "" && out != "" {
			if err := appendBlock(cfg.OutputPath, lead+out); err != nil {
				return "", err
			}
			logger.Debug().
				Str("output", cfg.OutputPath).
				Int("items", len(items)).
				Int("bytes", len(out)).
				Msg("Appended markdown")
		}
		return out, nil

	case cfg.Mode == mode.InteractiveWidget:
		if cfg.Host == nil {
			return "", errors.New(errors.ErrWidget, "interactive mode requires a widget host")
		}
		for i, item := range items {
			if err := item.RenderWidget(cfg.Host); err != nil {
				return "", errors.Wrapf(err, errors.ErrWidget, "failed to present item %d", i)
			}
		}
		logger.Debug().Int("items", len(items)).Msg("Presented items")
		return "", nil

	default:
		return "", errors.Newf(errors.ErrInvalidMode, "unsupported render mode %s", cfg.Mode)
	}
}

func renderMarkdown(cfg RenderConfig, items []Displayable) (string, error) {
	ctx := cfg.context()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		md, err := item.RenderMarkdown(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, md)
	}
	return strings.Join(parts, cfg.separator()), nil
}

// appendBlock appends block to path with a single write.
func appendBlock(path, block string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot open markdown output %s", path)
	}

	if _, err := f.WriteString(block); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to append to %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", path)
	}
	return nil
}
