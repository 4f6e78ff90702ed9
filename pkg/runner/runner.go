package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/arthur-debert/docforge/pkg/config"
	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/arthur-debert/docforge/pkg/mode"
	"github.com/arthur-debert/docforge/pkg/paths"
)

// Runner runs document programs.
type Runner struct {
	settings *config.Config
	commands CommandRunner
	lookPath func(string) (string, error)
}

// Option customizes a Runner.
type Option func(*Runner)

// WithCommandRunner replaces the process runner.
func WithCommandRunner(c CommandRunner) Option {
	return func(r *Runner) { r.commands = c }
}

// WithLookPath replaces executable lookup.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(r *Runner) { r.lookPath = fn }
}

// New returns a Runner using settings.
func New(settings *config.Config, opts ...Option) *Runner {
	r := &Runner{
		settings: settings,
		commands: ExecRunner{},
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// document is a resolved document program.
type document struct {
	// Dir is where the program runs, so its project config is found.
	Dir string
	// Target is what `go run` is given, relative to Dir.
	Target string
	// Stem names outputs: the file name without extension, or the package dir name.
	Stem string
}

func resolveDocument(path string) (document, error) {
	abs, err := paths.NormalizePath(path)
	if err != nil {
		return document{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return document{}, errors.Wrapf(err, errors.ErrNotFound, "document %s not found", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return document{Dir: abs, Target: ".", Stem: filepath.Join(abs, filepath.Base(abs))}, nil
	}
	return document{
		Dir:    filepath.Dir(abs),
		Target: filepath.Base(abs),
		Stem:   paths.DefaultOutputPath(abs, ""),
	}, nil
}

func (d document) output(explicit, ext string) (string, error) {
	if explicit == "" {
		return d.Stem + ext, nil
	}
	return paths.NormalizePath(explicit)
}

func (r *Runner) goCommand(doc document, env []string, stdout, stderr io.Writer) Command {
	args := append([]string{"run"}, r.settings.Runner.Args...)
	args = append(args, doc.Target)
	return Command{
		Name:   r.settings.Runner.Go,
		Args:   args,
		Dir:    doc.Dir,
		Env:    env,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// MarkdownOptions configures Markdown.
type MarkdownOptions struct {
	// Doc is a Go file or package directory.
	Doc string
	// Output defaults to the document path with a .md extension.
	Output string
	Stdout io.Writer
	Stderr io.Writer
}

// MarkdownResult describes the written markdown file.
type MarkdownResult struct {
	Output string
	Size   int64
}

// Markdown runs the document with a fresh markdown output file.
func (r *Runner) Markdown(ctx context.Context, opts MarkdownOptions) (MarkdownResult, error) {
	logger := logging.GetLogger("runner")
	defer logging.LogDuration(time.Now(), "markdown")

	doc, err := resolveDocument(opts.Doc)
	if err != nil {
		return MarkdownResult{}, err
	}
	output, err := doc.output(opts.Output, ".md")
	if err != nil {
		return MarkdownResult{}, err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return MarkdownResult{}, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", output)
	}
	// Documents append, so every run starts from an empty file
	if err := os.WriteFile(output, nil, 0644); err != nil {
		return MarkdownResult{}, errors.Wrapf(err, errors.ErrFileWrite, "cannot truncate %s", output)
	}

	logger.Info().Str("doc", opts.Doc).Str("output", output).Msg("Rendering markdown")
	env := []string{mode.EnvMarkdownPath + "=" + output, mode.EnvViewer + "="}
	if err := r.commands.Run(ctx, r.goCommand(doc, env, opts.Stdout, opts.Stderr)); err != nil {
		return MarkdownResult{}, err
	}

	info, err := os.Stat(output)
	if err != nil {
		return MarkdownResult{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", output)
	}
	return MarkdownResult{Output: output, Size: info.Size()}, nil
}

// PDFOptions configures PDF.
type PDFOptions struct {
	Doc string
	// Output defaults to the document path with a .pdf extension.
	Output string
	// Markdown is the intermediate file; defaults as in Markdown.
	Markdown string
	Stdout   io.Writer
	Stderr   io.Writer
}

// PDFResult describes the written files.
type PDFResult struct {
	Markdown MarkdownResult
	Output   string
	Size     int64
}

// PDF renders the document to markdown, then converts it with pandoc.
func (r *Runner) PDF(ctx context.Context, opts PDFOptions) (PDFResult, error) {
	logger := logging.GetLogger("runner")

	pandoc, err := r.lookPath(r.settings.PDF.Pandoc)
	if err != nil {
		return PDFResult{}, errors.Wrapf(err, errors.ErrCommandFailed,
			"pandoc is required for pdf output (looked for %q)", r.settings.PDF.Pandoc)
	}

	doc, err := resolveDocument(opts.Doc)
	if err != nil {
		return PDFResult{}, err
	}
	output, err := doc.output(opts.Output, ".pdf")
	if err != nil {
		return PDFResult{}, err
	}

	md, err := r.Markdown(ctx, MarkdownOptions{
		Doc:    opts.Doc,
		Output: opts.Markdown,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	})
	if err != nil {
		return PDFResult{}, err
	}

	// pandoc runs beside the markdown so relative figure and bibliography paths resolve
	args := append([]string{filepath.Base(md.Output), "-o", output}, r.settings.PDF.Args...)
	logger.Info().Str("markdown", md.Output).Str("output", output).Msg("Converting to pdf")
	if err := r.commands.Run(ctx, Command{
		Name:   pandoc,
		Args:   args,
		Dir:    filepath.Dir(md.Output),
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	}); err != nil {
		return PDFResult{}, err
	}

	info, err := os.Stat(output)
	if err != nil {
		return PDFResult{}, errors.Wrapf(err, errors.ErrFileAccess, "pandoc did not write %s", output)
	}
	return PDFResult{Markdown: md, Output: output, Size: info.Size()}, nil
}

// Tidy resolves the module requirements of the project in dir.
func (r *Runner) Tidy(ctx context.Context, dir string, stdout, stderr io.Writer) error {
	logger := logging.GetLogger("runner")
	logger.Info().Str("dir", dir).Msg("Resolving module requirements")
	return r.commands.Run(ctx, Command{
		Name:   r.settings.Runner.Go,
		Args:   []string{"mod", "tidy"},
		Dir:    dir,
		Stdout: stdout,
		Stderr: stderr,
	})
}
