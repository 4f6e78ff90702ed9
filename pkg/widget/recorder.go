package widget

// CallKind names a Host method.
type CallKind string

const (
	CallMarkdown    CallKind = "markdown"
	CallHeading     CallKind = "heading"
	CallImage       CallKind = "image"
	CallTable       CallKind = "table"
	CallCitation    CallKind = "citation"
	CallFrontMatter CallKind = "frontmatter"
)

// Call is one recorded Host invocation.
type Call struct {
	Kind    CallKind
	Level   int
	Text    string
	Path    string
	Caption string
	Columns []string
	Rows    [][]string
	Fields  []string
}

// Recorder is a Host that keeps every call, in order.
type Recorder struct {
	Calls []Call
	// Err, when set, is returned by every call after it is recorded.
	Err error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(c Call) error {
	r.Calls = append(r.Calls, c)
	return r.Err
}

func (r *Recorder) Markdown(source string) error {
	return r.record(Call{Kind: CallMarkdown, Text: source})
}

func (r *Recorder) Heading(level int, text string) error {
	return r.record(Call{Kind: CallHeading, Level: level, Text: text})
}

func (r *Recorder) Image(path, caption string) error {
	return r.record(Call{Kind: CallImage, Path: path, Caption: caption})
}

func (r *Recorder) Table(columns []string, rows [][]string, caption string) error {
	return r.record(Call{Kind: CallTable, Columns: columns, Rows: rows, Caption: caption})
}

func (r *Recorder) Citation(text string) error {
	return r.record(Call{Kind: CallCitation, Text: text})
}

func (r *Recorder) FrontMatter(title, author, date string) error {
	return r.record(Call{Kind: CallFrontMatter, Fields: []string{title, author, date}})
}

// Kinds returns the kinds of the recorded calls, in order.
func (r *Recorder) Kinds() []CallKind {
	kinds := make([]CallKind, len(r.Calls))
	for i, c := range r.Calls {
		kinds[i] = c.Kind
	}
	return kinds
}
