package widget

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
)

// TerminalOptions configures a Terminal host.
type TerminalOptions struct {
	// Style is a glamour style name ("dark", "light", "notty") or a path to
	// a style file; "" or "auto" detects it.
	Style string
	// Width wraps markdown at this many columns; 0 keeps glamour's default.
	Width int
	// Format selects rich or plain output; FormatAuto is treated as rich.
	Format Format
	// Styles overrides the embedded style sheet.
	Styles *Styles
}

// Terminal is a Host that presents content on a terminal.
type Terminal struct {
	out      io.Writer
	styles   *Styles
	plain    bool
	markdown *glamour.TermRenderer
}

// NewTerminal returns a Terminal host writing to out.
func NewTerminal(out io.Writer, opts TerminalOptions) *Terminal {
	t := &Terminal{
		out:    out,
		styles: opts.Styles,
		plain:  opts.Format == FormatText,
	}
	if t.styles == nil {
		t.styles = DefaultStyles()
	}

	var options []glamour.TermRendererOption
	switch {
	case t.plain:
		options = append(options, glamour.WithStandardStyle("notty"))
	case opts.Style != "" && opts.Style != "auto":
		options = append(options, glamour.WithStylePath(opts.Style))
	default:
		options = append(options, glamour.WithAutoStyle())
	}
	if opts.Width > 0 {
		options = append(options, glamour.WithWordWrap(opts.Width))
	}

	// Without a renderer, markdown is written as-is
	if renderer, err := glamour.NewTermRenderer(options...); err == nil {
		t.markdown = renderer
	}

	return t
}

func (t *Terminal) style(name, text string) string {
	if t.plain {
		return text
	}
	return t.styles.Get(name).Render(text)
}

func (t *Terminal) write(kind, text string) error {
	if _, err := fmt.Fprintln(t.out, text); err != nil {
		return errors.Wrapf(err, errors.ErrWidget, "failed to present %s", kind)
	}
	return nil
}

// Markdown presents a markdown block through glamour.
func (t *Terminal) Markdown(source string) error {
	rendered := source
	if t.markdown != nil {
		if out, err := t.markdown.Render(source); err == nil {
			rendered = strings.TrimRight(out, "\n")
		}
	}
	return t.write("markdown", rendered)
}

// Heading presents a title; level 1 and below use the Heading style.
func (t *Terminal) Heading(level int, text string) error {
	name := "Subheading"
	if level <= 1 {
		name = "Heading"
	}
	return t.write("heading", t.style(name, text))
}

// Image presents a figure as a framed caption with its file path.
func (t *Terminal) Image(path, caption string) error {
	body := fmt.Sprintf("Figure: %s\n%s", caption, path)
	if caption == "" {
		body = "Figure: " + path
	}
	return t.write("figure", t.style("Figure", body))
}

// Table presents tabular data through pterm.
func (t *Terminal) Table(columns []string, rows [][]string, caption string) error {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, columns)
	data = append(data, rows...)

	printer := pterm.DefaultTable.WithHasHeader(len(columns) > 0).WithData(data)
	if t.plain {
		printer = printer.WithHeaderStyle(pterm.NewStyle()).WithSeparatorStyle(pterm.NewStyle())
	}
	rendered, err := printer.Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrWidget, "failed to render table")
	}
	if caption != "" {
		rendered += "\n" + t.style("Caption", caption)
	}
	return t.write("table", rendered)
}

// Citation presents an inline citation.
func (t *Terminal) Citation(text string) error {
	return t.write("citation", t.style("Citation", "("+text+")"))
}

// FrontMatter presents the document title and byline.
func (t *Terminal) FrontMatter(title, author, date string) error {
	var lines []string
	if title != "" {
		lines = append(lines, t.style("DocTitle", title))
	}

	var byline []string
	for _, part := range []string{author, date} {
		if part != "" {
			byline = append(byline, part)
		}
	}
	if len(byline) > 0 {
		lines = append(lines, t.style("Byline", strings.Join(byline, " · ")))
	}

	if len(lines) == 0 {
		return nil
	}
	return t.write("front matter", strings.Join(lines, "\n"))
}
