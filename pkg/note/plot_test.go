package note

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// fakePlot writes fixed content and records whether it was released.
type fakePlot struct {
	content string
	closed  bool
}

func (p *fakePlot) Save(path string) error {
	return os.WriteFile(path, []byte(p.content), 0644)
}

func (p *fakePlot) Close() error {
	p.closed = true
	return nil
}

func TestFigureFromPlot(t *testing.T) {
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "doc.md")
	p := &fakePlot{content: "png"}

	fig, err := FigureFromPlot(outPath, p, "x.png", "Cap", "fig:1")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "figures", "x.png"))
	assert.True(t, p.closed)
	assert.Equal(t, "Cap", fig.Caption)
	assert.Equal(t, "fig:1", fig.Label)

	md, err := fig.RenderMarkdown(RenderContext{OutputDir: outDir})
	require.NoError(t, err)
	assert.Equal(t, "![Cap](figures/x.png){#fig:1}", md)
}

func TestFigureFromPlot_Errors(t *testing.T) {
	t.Run("no_output_path", func(t *testing.T) {
		_, err := FigureFromPlot("", &fakePlot{}, "x.png", "Cap")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoOutputPath))
	})

	t.Run("nested_file_name", func(t *testing.T) {
		_, err := FigureFromPlot(filepath.Join(t.TempDir(), "doc.md"), &fakePlot{}, "../x.png", "Cap")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestFigureFromPlot_SVGTitle(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "doc.md")
	p := &fakePlot{content: `<svg xmlns="http://www.w3.org/2000/svg"><rect width="1" height="1"/></svg>`}

	fig, err := FigureFromPlot(outPath, p, "x.svg", "Step response")
	require.NoError(t, err)

	data, err := os.ReadFile(fig.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>Step response</title>")
	assert.Contains(t, string(data), "<rect")
}

func TestGonumPlot(t *testing.T) {
	p := plot.New()
	p.Title.Text = "Line"
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.NoError(t, err)
	p.Add(line)

	outPath := filepath.Join(t.TempDir(), "doc.md")
	fig, err := FigureFromPlot(outPath, NewGonumPlot(p), "line.svg", "A line", "fig:line")
	require.NoError(t, err)

	info, err := os.Stat(fig.Path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	data, err := os.ReadFile(fig.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>A line</title>")
}
