// Package mode decides how a document program renders its content.
//
// A document program renders either to a markdown file (when the CLI drives
// it with an output path), to the interactive terminal viewer, or, when run
// directly, to plain markdown returned from each render call. The decision
// is made from process environment variables once, by the program's
// outermost entry point, and the result is passed down explicitly.
package mode

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
)

// RenderMode is the active rendering target of a document program.
type RenderMode int

const (
	// FileMarkdown renders markdown and appends it to an output file.
	FileMarkdown RenderMode = iota + 1
	// InteractiveWidget emits content to the viewer host and returns no text.
	InteractiveWidget
	// PlainPython renders markdown like FileMarkdown with no implicit file.
	// It is the mode of a document program run directly.
	PlainPython
)

// String returns the user-facing name of the mode
func (m RenderMode) String() string {
	switch m {
	case FileMarkdown:
		return "markdown"
	case InteractiveWidget:
		return "widget"
	case PlainPython:
		return "plain"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the known modes.
func (m RenderMode) Valid() bool {
	return m == FileMarkdown || m == InteractiveWidget || m == PlainPython
}

// ProducesMarkdown reports whether rendering in m yields markdown text.
func (m RenderMode) ProducesMarkdown() bool {
	return m == FileMarkdown || m == PlainPython
}

// ParseMode parses a mode name as produced by String.
func ParseMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "file", "md":
		return FileMarkdown, nil
	case "widget", "interactive", "viewer":
		return InteractiveWidget, nil
	case "plain", "python":
		return PlainPython, nil
	default:
		return 0, errors.Newf(errors.ErrInvalidMode, "unknown render mode %q", s)
	}
}
