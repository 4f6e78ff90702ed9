package note

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/docforge/pkg/config"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/arthur-debert/docforge/pkg/mode"
	"github.com/arthur-debert/docforge/pkg/widget"
)

// Document is a document program's handle on its output. It holds the
// render configuration resolved once by Open.
type Document struct {
	cfg      RenderConfig
	settings *config.Config
	// written records the output files Display has appended to, so later
	// blocks are separated from earlier ones. Copies share it.
	written map[string]bool
}

// Option customizes Open.
type Option func(*openOptions)

type openOptions struct {
	env      mode.Environment
	host     widget.Host
	settings *config.Config
}

// WithEnvironment resolves the mode from env instead of the process environment.
func WithEnvironment(env mode.Environment) Option {
	return func(o *openOptions) { o.env = env }
}

// WithHost presents interactive content on host instead of the terminal.
func WithHost(host widget.Host) Option {
	return func(o *openOptions) { o.host = host }
}

// WithSettings uses cfg instead of loading the configuration.
func WithSettings(cfg *config.Config) Option {
	return func(o *openOptions) { o.settings = cfg }
}

// Open resolves the render mode and prepares the document for display.
func Open(opts ...Option) (*Document, error) {
	o := openOptions{env: mode.OSEnvironment{}}
	for _, opt := range opts {
		opt(&o)
	}

	res, err := mode.NewResolver(o.env).Resolve()
	if err != nil {
		return nil, err
	}

	settings := o.settings
	if settings == nil {
		cwd, _ := os.Getwd()
		settings, err = config.Load(config.LoadOptions{ProjectDir: cwd})
		if err != nil {
			return nil, err
		}
	}

	host := o.host
	if host == nil && res.Mode == mode.InteractiveWidget {
		host = widget.NewTerminal(os.Stdout, widget.TerminalOptions{
			Style:  settings.Viewer.Style,
			Width:  settings.Viewer.Width,
			Format: widget.DetectFormat(os.Stdout, o.env.LookupEnv),
		})
	}

	logger := logging.GetLogger("note")
	logger.Debug().
		Str("mode", res.Mode.String()).
		Str("output", res.OutputPath).
		Msg("Opened document")

	return &Document{
		cfg: RenderConfig{
			Mode:       res.Mode,
			OutputPath: res.OutputPath,
			Host:       host,
			Separator:  settings.Markdown.Separator,
		},
		settings: settings,
		written:  map[string]bool{},
	}, nil
}

// MustOpen is like Open but panics on error.
func MustOpen(opts ...Option) *Document {
	doc, err := Open(opts...)
	if err != nil {
		panic(err)
	}
	return doc
}

// Display renders items with the document's configuration. Blocks appended
// by successive calls are separated like the entries within one call.
func (d *Document) Display(items ...Displayable) (string, error) {
	lead := ""
	if d.cfg.OutputPath != "" && d.written[d.cfg.OutputPath] {
		lead = d.cfg.separator()
	}
	out, err := render(d.cfg, lead, items)
	if err != nil {
		return "", err
	}
	if d.cfg.Mode.ProducesMarkdown() && d.cfg.OutputPath != "" && out != "" {
		d.written[d.cfg.OutputPath] = true
	}
	return out, nil
}

// MustDisplay is like Display but panics on error.
func (d *Document) MustDisplay(items ...Displayable) string {
	out, err := d.Display(items...)
	if err != nil {
		panic(err)
	}
	return out
}

// WithMode returns a copy of d rendering in m.
func (d *Document) WithMode(m mode.RenderMode) *Document {
	c := *d
	c.cfg.Mode = m
	return &c
}

// WithOutputPath returns a copy of d appending to path; "" disables writing.
func (d *Document) WithOutputPath(path string) *Document {
	c := *d
	c.cfg.OutputPath = path
	return &c
}

// Mode is the resolved render mode.
func (d *Document) Mode() mode.RenderMode { return d.cfg.Mode }

// OutputPath is the markdown output file, or "".
func (d *Document) OutputPath() string { return d.cfg.OutputPath }

// RenderConfig returns the configuration Display renders with.
func (d *Document) RenderConfig() RenderConfig { return d.cfg }

// Settings returns the loaded configuration.
func (d *Document) Settings() *config.Config { return d.settings }

// FigureFromPlot saves p beside the document's output file, in the
// configured figures directory. The interactive viewer has no output file;
// its figures go to a scratch directory under the system temp dir.
func (d *Document) FigureFromPlot(p Plot, filename, caption string, label ...string) (Figure, error) {
	outputPath := d.cfg.OutputPath
	if outputPath == "" && d.cfg.Mode == mode.InteractiveWidget {
		outputPath = filepath.Join(os.TempDir(), "docforge", "viewer.md")
	}
	return saveFigure(outputPath, d.settings.Markdown.FiguresDir, p, filename, caption, label...)
}
