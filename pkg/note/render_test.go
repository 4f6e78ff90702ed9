package note

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/mode"
	"github.com/arthur-debert/docforge/pkg/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRender_PlainJoinsEntries(t *testing.T) {
	cfg := RenderConfig{Mode: mode.PlainPython}

	out, err := Render(cfg, Text("a"), Text("b"))
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb", out)

	again, err := Render(cfg, Text("a"), Text("b"))
	require.NoError(t, err)
	assert.Equal(t, out, again, "plain rendering has no side effects")
}

func TestRender_FrontMatterLines(t *testing.T) {
	out, err := Render(RenderConfig{Mode: mode.PlainPython},
		DocumentConfig{Title: "T", Author: "A", Date: "D"})
	require.NoError(t, err)
	assert.Contains(t, out, "title: T\n")
	assert.Contains(t, out, "author: A\n")
	assert.Contains(t, out, "date: D\n")
}

func TestRender_AppendsToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "doc.md")
	cfg := RenderConfig{Mode: mode.FileMarkdown, OutputPath: outPath}

	r1, err := Render(cfg, Text("a"), Text("b"))
	require.NoError(t, err)
	r2, err := Render(cfg, Text("c"))
	require.NoError(t, err)

	assert.Equal(t, "a\n\nb", r1)
	assert.Equal(t, "c", r2)
	assert.Equal(t, r1+r2, readFile(t, outPath), "each call appends exactly its result")
}

func TestRender_FigureRelativeToOutput(t *testing.T) {
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "doc.md")
	cfg := RenderConfig{Mode: mode.FileMarkdown, OutputPath: outPath}

	out, err := Render(cfg, NewFigure(filepath.Join(outDir, "figures", "x.png"), "Cap", "fig:1"))
	require.NoError(t, err)
	assert.Equal(t, "![Cap](figures/x.png){#fig:1}", out)
}

func TestRender_FailureWritesNothing(t *testing.T) {
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "doc.md")
	require.NoError(t, os.WriteFile(outPath, []byte("existing\n\n"), 0644))
	cfg := RenderConfig{Mode: mode.FileMarkdown, OutputPath: outPath}

	_, err := Render(cfg, Text("a"), NewFigure(filepath.Join(t.TempDir(), "x.png"), "Cap"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolution))
	assert.Equal(t, "existing\n\n", readFile(t, outPath))
}

func TestRender_CustomSeparator(t *testing.T) {
	out, err := Render(RenderConfig{Mode: mode.PlainPython, Separator: "\n"}, Text("a"), Text("b"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb", out)
}

func TestRender_NoItems(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "doc.md")
	out, err := Render(RenderConfig{Mode: mode.FileMarkdown, OutputPath: outPath})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoFileExists(t, outPath)
}

func TestRender_Widget(t *testing.T) {
	rec := widget.NewRecorder()
	out, err := Render(RenderConfig{Mode: mode.InteractiveWidget, Host: rec},
		NewTitle("# Intro"), Text("body"), Citation{ID: "k"})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []widget.CallKind{widget.CallHeading, widget.CallMarkdown, widget.CallCitation}, rec.Kinds())
}

func TestRender_WidgetErrors(t *testing.T) {
	t.Run("no_host", func(t *testing.T) {
		_, err := Render(RenderConfig{Mode: mode.InteractiveWidget}, Text("a"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrWidget))
	})

	t.Run("host_failure", func(t *testing.T) {
		rec := widget.NewRecorder()
		rec.Err = assert.AnError
		_, err := Render(RenderConfig{Mode: mode.InteractiveWidget, Host: rec}, Text("a"), Text("b"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrWidget))
		assert.Len(t, rec.Calls, 1, "rendering stops at the first failure")
	})
}

func TestRender_InvalidMode(t *testing.T) {
	_, err := Render(RenderConfig{Mode: mode.RenderMode(99)}, Text("a"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidMode))

	_, err = Render(RenderConfig{}, Text("a"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidMode), "zero mode is not a mode")
}
