// Package scaffold creates new document projects.
package scaffold

import (
	"context"
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/docforge/pkg/config"
	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/arthur-debert/docforge/pkg/paths"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
)

//go:embed templates/main.go.txt
var mainTemplate string

//go:embed templates/refs.bib.txt
var bibTemplate string

//go:embed templates/go.mod.txt
var goModTemplate string

// DocforgeModule is the module document programs import.
const DocforgeModule = "github.com/arthur-debert/docforge"

// goVersion is the go directive written to new projects.
const goVersion = "1.23.0"

// synthfsReplace mirrors the replace in docforge's own go.mod. Replace
// directives of dependencies are ignored, so projects need their own copy
// to resolve docforge's requirement on synthfs.
const synthfsReplace = "github.com/arthur-debert/synthfs => github.com/arthur-debert/go-synthfs v0.9.5"

const (
	dirMode  fs.FileMode = 0755
	fileMode fs.FileMode = 0644
)

// InitOptions configures Init.
type InitOptions struct {
	// Dir is the project directory; it must not exist or be empty.
	Dir    string
	Title  string
	Author string
	// Module is the project's module path; derived from the directory name when empty.
	Module string
	// DocforgeVersion is the docforge release to require, e.g. "v0.3.0".
	// When empty and Replace is unset, no requirement is written and
	// `go mod tidy` picks the latest release.
	DocforgeVersion string
	// Replace points the docforge requirement at a local checkout.
	Replace string
	// DryRun plans the files without creating them.
	DryRun bool
}

// InitResult lists what Init created, or would create.
type InitResult struct {
	Dir     string
	Created []string
}

type entry struct {
	rel     string
	dir     bool
	content string
}

// Init creates a document project: a starter document program, a commented
// project config, a bibliography and a figures directory.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("scaffold")

	if opts.Dir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "project directory cannot be empty")
	}
	dir, err := paths.NormalizePath(opts.Dir)
	if err != nil {
		return nil, err
	}
	exists, err := checkTarget(dir)
	if err != nil {
		return nil, err
	}

	replace := opts.Replace
	if replace != "" {
		if replace, err = paths.NormalizePath(replace); err != nil {
			return nil, err
		}
	}

	name := filepath.Base(dir)
	title := opts.Title
	if title == "" {
		title = name
	}

	var entries []entry
	if !exists {
		entries = append(entries, entry{rel: "", dir: true})
	}
	entries = append(entries, []entry{
		{rel: "figures", dir: true},
		{rel: "go.mod", content: renderGoMod(modulePath(name, opts.Module), opts.DocforgeVersion, replace)},
		{rel: "main.go", content: renderMain(name, title, opts.Author)},
		{rel: paths.ProjectConfigFiles[0], content: config.GenerateConfigContent()},
		{rel: "refs.bib", content: bibTemplate},
	}...)

	result := &InitResult{Dir: dir}
	for _, e := range entries {
		result.Created = append(result.Created, filepath.Join(dir, e.rel))
	}
	if opts.DryRun {
		return result, nil
	}

	// The filesystem is rooted at the parent so the project directory itself
	// is part of the pipeline.
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, dirMode); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", parent)
	}

	pipeline := synthfs.NewMemPipeline()
	for _, e := range entries {
		rel := filepath.Join(name, e.rel)
		var op synthfs.Operation
		if e.dir {
			createOp := operations.NewCreateDirectoryOperation(core.OperationID("create-dir-"+rel), rel)
			createOp.SetItem(&directoryItem{path: rel, mode: dirMode})
			op = synthfs.NewOperationsPackageAdapter(createOp)
		} else {
			createOp := operations.NewCreateFileOperation(core.OperationID("write-file-"+rel), rel)
			createOp.SetItem(&fileItem{path: rel, content: []byte(e.content), mode: fileMode})
			op = synthfs.NewOperationsPackageAdapter(createOp)
		}
		if err := pipeline.Add(op); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to plan %s", rel)
		}
	}

	res := synthfs.NewExecutor().Run(ctx, pipeline, filesystem.NewOSFileSystem(parent))
	if err := res.GetError(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create project %s", dir)
	}

	logger.Info().Str("dir", dir).Int("files", len(result.Created)).Msg("Created document project")
	return result, nil
}

// checkTarget refuses a file or a directory with content, and reports
// whether an empty directory is already there.
func checkTarget(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", dir)
	}
	if !info.IsDir() {
		return false, errors.Newf(errors.ErrAlreadyExists, "%s exists and is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", dir)
	}
	if len(entries) > 0 {
		return false, errors.Newf(errors.ErrAlreadyExists, "%s is not empty", dir).WithDetail("entries", len(entries))
	}
	return true, nil
}

func renderMain(name, title, author string) string {
	out := strings.ReplaceAll(mainTemplate, "DOC_NAME", name)
	out = strings.ReplaceAll(out, "DOC_TITLE", strconv.Quote(title))
	return strings.ReplaceAll(out, "DOC_AUTHOR", strconv.Quote(author))
}

// renderGoMod writes the project module file. A local replacement needs a
// requirement to attach to, so it pins the placeholder version v0.0.0.
func renderGoMod(module, docforgeVersion, replace string) string {
	out := strings.ReplaceAll(goModTemplate, "DOC_MODULE", module)
	out = strings.ReplaceAll(out, "DOC_GO_VERSION", goVersion)

	if docforgeVersion == "" && replace != "" {
		docforgeVersion = "v0.0.0"
	}
	if docforgeVersion != "" {
		out += fmt.Sprintf("\nrequire %s %s\n", DocforgeModule, docforgeVersion)
	}
	out += "\nreplace " + synthfsReplace + "\n"
	if replace != "" {
		out += fmt.Sprintf("\nreplace %s => %s\n", DocforgeModule, filepath.ToSlash(replace))
	}
	return out
}

// modulePath returns explicit, or a module path made from the directory name.
func modulePath(name, explicit string) string {
	if explicit != "" {
		return explicit
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if m := strings.Trim(b.String(), "-."); m != "" {
		return m
	}
	return "document"
}

// fileItem implements the interface needed for file operations
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

// directoryItem implements the interface needed for directory operations
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
