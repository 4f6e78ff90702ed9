package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Write engineering documents as Go programs"
	MsgMarkdownShort  = "Render a document to a markdown file"
	MsgViewShort      = "Preview a document in the terminal, re-running it on change"
	MsgPDFShort       = "Render a document to pdf through pandoc"
	MsgSystemsShort   = "Render a system tree file as markdown"
	MsgInitShort      = "Create a new document project"
	MsgGenconfigShort = "Print the default configuration"
	MsgVersionShort   = "Print version information"

	// Status messages
	MsgWroteFormat   = "Wrote %s (%s)"
	MsgCreatedFormat = "Created document project %s"
	MsgTidiedFormat  = "Resolved module requirements in %s"
	MsgDryRunNotice  = "DRY RUN MODE - No files were created"
	MsgPlannedItem   = "  %s"
	MsgConfigWritten = "Wrote configuration to %s"
	MsgViewing       = "Viewing %s, press Ctrl+C to stop"
	MsgVersionFormat = "docforge version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
)

const MsgRootLong = `docforge turns Go programs into documents.

A document is a Go main package that opens a note.Document and displays
content: front matter, headings, text, tables, figures from plots and
citations. docforge runs the program and decides where that content goes:
a markdown file ready for pandoc, a pdf, or a live terminal preview.`

const MsgInitLong = `Create a document project: a go.mod, a starter document program, a
commented docforge.toml, a bibliography and a figures directory.

Release builds require their own docforge version; development builds leave
the requirement to go mod tidy, which runs after the files are created
unless --no-tidy is given. Point --replace at a docforge checkout to develop
against local changes.`

const MsgMarkdownLong = `Run the document program and collect its output into a markdown file.

The output defaults to the document path with a .md extension and is
emptied before the run. Plots saved through FigureFromPlot land in the
figures directory next to it.`

const MsgViewLong = `Run the document program with its content shown in the terminal.

The document's directory is watched; whenever a watched file changes
(see the [viewer] section of docforge.toml) the program is run again.`

const MsgPDFLong = `Render the document to markdown, then convert it with pandoc.

pandoc must be installed. Citations are resolved with --citeproc by
default; extra arguments come from the [pdf] section of docforge.toml.`
