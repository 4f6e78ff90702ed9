package note

import (
	"strings"

	"github.com/arthur-debert/docforge/pkg/widget"
)

// headingMarker is repeated at the start of a title to set its level.
const headingMarker = '#'

// Title is a section heading written in markdown heading syntax ("## Results").
type Title struct {
	Text  string
	Label string
}

// NewTitle returns a Title with an optional label.
func NewTitle(text string, label ...string) Title {
	t := Title{Text: text}
	if len(label) > 0 {
		t.Label = label[0]
	}
	return t
}

// Level is the number of leading heading markers; 0 for plain text.
func (t Title) Level() int {
	level := 0
	for level < len(t.Text) && t.Text[level] == headingMarker {
		level++
	}
	return level
}

// Heading is the title text without its markers.
func (t Title) Heading() string {
	return strings.TrimSpace(strings.TrimLeft(t.Text, string(headingMarker)))
}

// RenderMarkdown keeps the heading markup and appends the label block
// after a space, which stays even when there is no label.
func (t Title) RenderMarkdown(RenderContext) (string, error) {
	return t.Text + " " + labelSuffix(t.Label), nil
}

func (t Title) RenderWidget(host widget.Host) error {
	return host.Heading(t.Level(), t.Heading())
}
