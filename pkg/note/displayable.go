package note

import (
	"fmt"

	"github.com/arthur-debert/docforge/pkg/widget"
)

// RenderContext carries what markdown rendering needs to know about the output.
type RenderContext struct {
	// OutputDir is the directory of the markdown output file, or "" when
	// rendering has no file target.
	OutputDir string
}

// Displayable is a content item of a document.
type Displayable interface {
	// RenderMarkdown returns the item as Pandoc markdown.
	RenderMarkdown(ctx RenderContext) (string, error)
	// RenderWidget presents the item on an interactive host.
	RenderWidget(host widget.Host) error
}

// Text is verbatim markdown.
type Text string

// Textf formats a Text.
func Textf(format string, args ...any) Text {
	return Text(fmt.Sprintf(format, args...))
}

func (t Text) RenderMarkdown(RenderContext) (string, error) {
	return string(t), nil
}

func (t Text) RenderWidget(host widget.Host) error {
	return host.Markdown(string(t))
}

// labelSuffix is the pandoc attribute block for label, or "".
func labelSuffix(label string) string {
	if label == "" {
		return ""
	}
	return "{#" + label + "}"
}
