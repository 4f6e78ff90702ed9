package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/arthur-debert/docforge/internal/version"
	"github.com/arthur-debert/docforge/pkg/config"
	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/arthur-debert/docforge/pkg/mode"
	"github.com/arthur-debert/docforge/pkg/note"
	"github.com/arthur-debert/docforge/pkg/paths"
	"github.com/arthur-debert/docforge/pkg/runner"
	"github.com/arthur-debert/docforge/pkg/scaffold"
	"github.com/arthur-debert/docforge/pkg/systems"
	"github.com/arthur-debert/docforge/pkg/widget"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// runnerOptions are applied to every runner the commands create.
var runnerOptions []runner.Option

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "docforge",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newMarkdownCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newPDFCmd())
	rootCmd.AddCommand(newSystemsCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGenconfigCmd())

	return rootCmd
}

// loadConfig loads the configuration of the project holding doc.
func loadConfig(doc string) (*config.Config, error) {
	dir := doc
	if info, err := os.Stat(doc); err == nil && !info.IsDir() {
		dir = filepath.Dir(doc)
	}
	return config.Load(config.LoadOptions{ProjectDir: dir})
}

func newRunner(doc string) (*runner.Runner, error) {
	cfg, err := loadConfig(doc)
	if err != nil {
		return nil, err
	}
	return runner.New(cfg, runnerOptions...), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newMarkdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markdown <doc> [output]",
		Short: MsgMarkdownShort,
		Long:  MsgMarkdownLong,
		Example: `  # Write report.md next to report.go
  docforge markdown report.go

  # Render a document package into a build directory
  docforge markdown ./heatpump build/heatpump.md`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(args[0])
			if err != nil {
				return err
			}
			opts := runner.MarkdownOptions{Doc: args[0], Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			if len(args) > 1 {
				opts.Output = args[1]
			}

			res, err := r.Markdown(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), MsgWroteFormat, res.Output, humanize.Bytes(uint64(res.Size)))
			return nil
		},
	}
}

func newViewCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "view <doc>",
		Short: MsgViewShort,
		Long:  MsgViewLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := widget.ParseFormat(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
			}
			if f == widget.FormatAuto {
				f = widget.DetectFormat(os.Stdout, os.LookupEnv)
			}

			r, err := newRunner(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), MsgViewing+"\n", args[0])
			return r.View(ctx, runner.ViewOptions{
				Doc:    args[0],
				Format: f,
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
				OnRun: func(changed []string) {
					if len(changed) > 0 && f == widget.FormatTerminal {
						// clear the screen between runs
						fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")
					}
				},
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "auto", "Output format: auto, term or text")
	return cmd
}

func newPDFCmd() *cobra.Command {
	var markdown string

	cmd := &cobra.Command{
		Use:   "pdf <doc> [output]",
		Short: MsgPDFShort,
		Long:  MsgPDFLong,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(args[0])
			if err != nil {
				return err
			}
			opts := runner.PDFOptions{
				Doc:      args[0],
				Markdown: markdown,
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
			}
			if len(args) > 1 {
				opts.Output = args[1]
			}

			res, err := r.PDF(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, MsgWroteFormat, res.Markdown.Output, humanize.Bytes(uint64(res.Markdown.Size)))
			printSuccess(out, MsgWroteFormat, res.Output, humanize.Bytes(uint64(res.Size)))
			return nil
		},
	}
	cmd.Flags().StringVar(&markdown, "markdown", "", "Intermediate markdown file (default: <doc>.md)")
	return cmd
}

func newSystemsCmd() *cobra.Command {
	var (
		output string
		title  string
		author string
	)

	cmd := &cobra.Command{
		Use:   "systems <file.toml>",
		Short: MsgSystemsShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := systems.LoadFile(args[0])
			if err != nil {
				return err
			}

			var items []note.Displayable
			if title != "" {
				items = append(items, note.DocumentConfig{Title: title, Author: author})
			}
			items = append(items, sys)

			if output == "" {
				md, err := note.Render(note.RenderConfig{Mode: mode.PlainPython}, items...)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), md)
				return nil
			}

			if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", output)
			}
			if err := os.WriteFile(output, nil, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot truncate %s", output)
			}
			if _, err := note.Render(note.RenderConfig{Mode: mode.FileMarkdown, OutputPath: output}, items...); err != nil {
				return err
			}
			info, err := os.Stat(output)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", output)
			}
			printSuccess(cmd.OutOrStdout(), MsgWroteFormat, output, humanize.Bytes(uint64(info.Size())))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write markdown to this file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Add front matter with this title")
	cmd.Flags().StringVar(&author, "author", "", "Author for the front matter")
	return cmd
}

func newInitCmd() *cobra.Command {
	var (
		title   string
		author  string
		module  string
		replace string
		noTidy  bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "init <dir>",
		Short: MsgInitShort,
		Long:  MsgInitLong,
		Example: `  # Start a new report
  docforge init heatpump --title "Heat Pump Design Report" --author "Jane Doe"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := scaffold.Init(cmd.Context(), scaffold.InitOptions{
				Dir:             args[0],
				Title:           title,
				Author:          author,
				Module:          module,
				DocforgeVersion: releaseVersion(version.Version),
				Replace:         replace,
				DryRun:          dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, formatBold(MsgDryRunNotice))
				for _, p := range res.Created {
					fmt.Fprintf(out, MsgPlannedItem+"\n", p)
				}
				return nil
			}
			printSuccess(out, MsgCreatedFormat, res.Dir)

			if noTidy {
				return nil
			}
			r, err := newRunner(res.Dir)
			if err != nil {
				return err
			}
			if err := r.Tidy(cmd.Context(), res.Dir, out, cmd.ErrOrStderr()); err != nil {
				return err
			}
			printSuccess(out, MsgTidiedFormat, filepath.Join(res.Dir, "go.mod"))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Document title (default: directory name)")
	cmd.Flags().StringVar(&author, "author", "", "Document author")
	cmd.Flags().StringVar(&module, "module", "", "Module path of the project (default: directory name)")
	cmd.Flags().StringVar(&replace, "replace", "", "Use a local docforge checkout instead of a release")
	cmd.Flags().BoolVar(&noTidy, "no-tidy", false, "Skip resolving module requirements with go mod tidy")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the files without creating them")
	return cmd
}

// releaseVersion is the module version of a release build, or "" for
// development builds, which cannot be required by version.
func releaseVersion(v string) string {
	v = strings.TrimPrefix(v, "v")
	if v == "" || v[0] < '0' || v[0] > '9' {
		return ""
	}
	return "v" + v
}

func newGenconfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenconfigShort,
		Long: `Print the default configuration with every value commented out.

With --write the file is saved as the user configuration, unless one exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			target := paths.New().UserConfigPath()
			if _, err := os.Stat(target); err == nil {
				return errors.Newf(errors.ErrAlreadyExists, "%s already exists", target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(target))
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
			}
			printSuccess(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "Write to the user configuration file")
	return cmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
