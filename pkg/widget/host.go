// Package widget implements the interactive host that document programs
// emit content to when they run inside the docforge viewer.
//
// A Host receives content item by item, as it is displayed, and is
// responsible for presenting it immediately. Terminal presents content on a
// terminal (glamour for markdown, pterm for tables, lipgloss for the rest);
// Recorder keeps the calls in memory.
package widget

// Host is a live UI surface content items are emitted to.
type Host interface {
	// Markdown presents a block of markdown source.
	Markdown(source string) error
	// Heading presents a section title at level (1 for a top-level title).
	Heading(level int, text string) error
	// Image presents a figure file with its caption.
	Image(path, caption string) error
	// Table presents tabular data with an optional caption.
	Table(columns []string, rows [][]string, caption string) error
	// Citation presents an inline citation or cross-reference.
	Citation(text string) error
	// FrontMatter presents document metadata. Empty fields are skipped.
	FrontMatter(title, author, date string) error
}
