package widget

import (
	"os"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// EnvFormat carries the viewer's format to the document programs it runs.
// Their stdout is a pipe, so they cannot detect the terminal themselves.
const EnvFormat = "DOCFORGE_WIDGET_FORMAT"

// Format is how a Terminal host presents content.
type Format int

const (
	FormatAuto Format = iota
	// FormatTerminal styles content with colors and rendered markdown.
	FormatTerminal
	// FormatText writes unstyled text.
	FormatText
)

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
}

var formatsByName = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat accepts a format name or alias, case-insensitively.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatsByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown widget format %q", s).
		WithDetail("format", s)
}

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// DetectFormat picks the format for content written to out. A format
// forwarded through EnvFormat wins. Otherwise NO_COLOR, a non-terminal out
// or a terminal without colors all select FormatText.
func DetectFormat(out *os.File, lookup LookupFunc) Format {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if raw, ok := lookup(EnvFormat); ok {
		if f, err := ParseFormat(raw); err == nil && f != FormatAuto {
			return f
		}
	}
	if v, ok := lookup("NO_COLOR"); ok && v != "" {
		return FormatText
	}

	fd := out.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(out).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
