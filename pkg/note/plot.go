package note

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/beevik/etree"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// DefaultFiguresDir is the directory, beside the markdown output, plots are saved to.
const DefaultFiguresDir = "figures"

// Plot is an in-memory plot that can be written to an image file. The file
// format follows the extension of path. Plots that implement io.Closer are
// closed once saved.
type Plot interface {
	Save(path string) error
}

// GonumPlot adapts a gonum plot to Plot at a fixed size.
type GonumPlot struct {
	Plot   *plot.Plot
	Width  vg.Length
	Height vg.Length
}

// NewGonumPlot wraps p with a 6x4 inch canvas.
func NewGonumPlot(p *plot.Plot) GonumPlot {
	return GonumPlot{Plot: p, Width: 6 * vg.Inch, Height: 4 * vg.Inch}
}

func (g GonumPlot) Save(path string) error {
	return g.Plot.Save(g.Width, g.Height, path)
}

// FigureFromPlot saves p as filename in the figures directory beside
// outputPath and returns a Figure pointing at the saved file. It requires a
// markdown output path.
func FigureFromPlot(outputPath string, p Plot, filename, caption string, label ...string) (Figure, error) {
	return saveFigure(outputPath, DefaultFiguresDir, p, filename, caption, label...)
}

func saveFigure(outputPath, figuresDir string, p Plot, filename, caption string, label ...string) (Figure, error) {
	if outputPath == "" {
		return Figure{}, errors.New(errors.ErrNoOutputPath,
			"saving a plot as a figure requires a markdown output path")
	}
	if filename == "" || filepath.Base(filename) != filename {
		return Figure{}, errors.Newf(errors.ErrInvalidInput, "invalid figure file name %q", filename)
	}
	if figuresDir == "" {
		figuresDir = DefaultFiguresDir
	}

	dir := filepath.Join(filepath.Dir(outputPath), figuresDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Figure{}, errors.Wrapf(err, errors.ErrDirCreate, "cannot create figures directory %s", dir)
	}

	target := filepath.Join(dir, filename)
	if err := p.Save(target); err != nil {
		return Figure{}, errors.Wrapf(err, errors.ErrFileWrite, "failed to save plot to %s", target)
	}
	if closer, ok := p.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger := logging.GetLogger("note.plot")
			logger.Warn().Err(err).Str("figure", target).Msg("Failed to release plot")
		}
	}

	if strings.EqualFold(filepath.Ext(target), ".svg") && caption != "" {
		if err := setSVGTitle(target, caption); err != nil {
			return Figure{}, err
		}
	}

	return NewFigure(target, caption, label...), nil
}

// setSVGTitle makes caption the accessible title of an SVG file.
func setSVGTitle(path, caption string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot parse svg %s", path)
	}
	root := doc.Root()
	if root == nil {
		return errors.Newf(errors.ErrFileAccess, "svg %s has no root element", path)
	}

	title := root.SelectElement("title")
	if title == nil {
		title = etree.NewElement("title")
		root.InsertChildAt(0, title)
	}
	title.SetText(caption)

	if err := doc.WriteToFile(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write svg %s", path)
	}
	return nil
}
