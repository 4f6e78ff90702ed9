package note

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/widget"
	"gopkg.in/yaml.v3"
)

// DocumentConfig is the document's metadata, rendered as a front matter block.
type DocumentConfig struct {
	Title  string
	Author string
	// Date is free text; omitted when empty.
	Date string
	// Bibliography is the path of a BibTeX (or CSL) file; omitted when empty.
	Bibliography string
}

type frontMatter struct {
	Title        string `yaml:"title"`
	Author       string `yaml:"author"`
	Date         string `yaml:"date,omitempty"`
	Bibliography string `yaml:"bibliography,omitempty"`
}

func (c DocumentConfig) RenderMarkdown(RenderContext) (string, error) {
	data, err := yaml.Marshal(frontMatter{
		Title:        c.Title,
		Author:       c.Author,
		Date:         c.Date,
		Bibliography: filepath.ToSlash(c.Bibliography),
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode front matter")
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(strings.TrimRight(string(data), "\n"))
	b.WriteString("\n---")
	return b.String(), nil
}

func (c DocumentConfig) RenderWidget(host widget.Host) error {
	return host.FrontMatter(c.Title, c.Author, c.Date)
}
