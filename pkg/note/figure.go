package note

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/widget"
)

// Figure is an image file with a caption.
type Figure struct {
	// Path is absolute or relative to the working directory.
	Path    string
	Caption string
	Label   string
}

// NewFigure returns a Figure with an optional label.
func NewFigure(path, caption string, label ...string) Figure {
	f := Figure{Path: path, Caption: caption}
	if len(label) > 0 {
		f.Label = label[0]
	}
	return f
}

// RenderMarkdown links the image relative to the output directory. A figure
// outside that directory cannot be linked and fails to render.
func (f Figure) RenderMarkdown(ctx RenderContext) (string, error) {
	link, err := f.relativePath(ctx.OutputDir)
	if err != nil {
		return "", err
	}
	return "![" + f.Caption + "](" + link + ")" + labelSuffix(f.Label), nil
}

func (f Figure) RenderWidget(host widget.Host) error {
	return host.Image(f.Path, f.Caption)
}

func (f Figure) relativePath(outputDir string) (string, error) {
	if outputDir == "" {
		return filepath.ToSlash(f.Path), nil
	}

	absPath, err := filepath.Abs(f.Path)
	if err != nil {
		return "", f.pathError(err, outputDir)
	}
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", f.pathError(err, outputDir)
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return "", f.pathError(err, outputDir)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", f.pathError(nil, outputDir)
	}
	return filepath.ToSlash(rel), nil
}

func (f Figure) pathError(cause error, outputDir string) error {
	var err *errors.DocforgeError
	if cause != nil {
		err = errors.Wrapf(cause, errors.ErrPathResolution,
			"figure %s cannot be made relative to %s", f.Path, outputDir)
	} else {
		err = errors.Newf(errors.ErrPathResolution,
			"figure %s is not inside output directory %s", f.Path, outputDir)
	}
	return err.WithDetail("path", f.Path).WithDetail("outputDir", outputDir)
}
