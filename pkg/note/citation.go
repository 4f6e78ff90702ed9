package note

import "github.com/arthur-debert/docforge/pkg/widget"

// Citation cites a bibliography entry by its key.
type Citation struct {
	ID string
	// Text is shown by the interactive viewer; the key is used when empty.
	Text string
}

func (c Citation) RenderMarkdown(RenderContext) (string, error) {
	return "[@" + c.ID + "]", nil
}

func (c Citation) RenderWidget(host widget.Host) error {
	return host.Citation(displayText(c.Text, c.ID))
}

// Reference cross-references a labelled figure, table or section.
type Reference struct {
	Label string
	Text  string
}

func (r Reference) RenderMarkdown(RenderContext) (string, error) {
	return "[@" + r.Label + "]", nil
}

func (r Reference) RenderWidget(host widget.Host) error {
	return host.Citation(displayText(r.Text, r.Label))
}

func displayText(text, fallback string) string {
	if text != "" {
		return text
	}
	return fallback
}
