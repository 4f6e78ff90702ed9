package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "figures", cfg.Markdown.FiguresDir)
	assert.Equal(t, "\n\n", cfg.Markdown.Separator)
	assert.Equal(t, "auto", cfg.Viewer.Style)
	assert.Equal(t, 0, cfg.Viewer.Width)
	assert.Equal(t, 300*time.Millisecond, cfg.Viewer.Debounce)
	assert.Contains(t, cfg.Viewer.Watch, "**/*.go")
	assert.Contains(t, cfg.Viewer.Ignore, "**/*.md")
	assert.Equal(t, "pandoc", cfg.PDF.Pandoc)
	assert.Equal(t, []string{"--citeproc"}, cfg.PDF.Args)
	assert.Equal(t, "go", cfg.Runner.Go)
	assert.Empty(t, cfg.Runner.Args)
}

func TestLoad_Layers(t *testing.T) {
	userDir := t.TempDir()
	userPath := filepath.Join(userDir, "config.toml")
	require.NoError(t, os.WriteFile(userPath, []byte(`
[viewer]
style = "dark"
width = 100
`), 0644))

	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "docforge.toml"), []byte(`
[viewer]
width = 72
watch = ["data/*.json"]

[pdf]
args = ["--toc"]
`), 0644))

	cfg, err := Load(LoadOptions{ProjectDir: projectDir, UserConfigPath: userPath, SkipEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Viewer.Style, "user layer applies")
	assert.Equal(t, 72, cfg.Viewer.Width, "project layer wins over user layer")
	assert.Contains(t, cfg.Viewer.Watch, "**/*.go", "lists accumulate")
	assert.Contains(t, cfg.Viewer.Watch, "data/*.json")
	assert.Equal(t, []string{"--citeproc", "--toc"}, cfg.PDF.Args)
}

func TestLoad_HiddenProjectFile(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, ".docforge.toml"), []byte(`
[markdown]
figures_dir = "img"
`), 0644))

	cfg, err := Load(LoadOptions{ProjectDir: projectDir, UserConfigPath: os.DevNull, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "img", cfg.Markdown.FiguresDir)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DOCFORGE_VIEWER__DEBOUNCE", "1s")
	t.Setenv("DOCFORGE_VIEWER__WATCH", "*.go,*.csv")
	t.Setenv("DOCFORGE_PDF__PANDOC", "/opt/pandoc")
	t.Setenv("DOCFORGE_MARKDOWN_PATH", "/tmp/out.md")

	cfg, err := Load(LoadOptions{UserConfigPath: os.DevNull})
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Viewer.Debounce)
	assert.Equal(t, []string{"*.go", "*.csv"}, cfg.Viewer.Watch, "env replaces lists")
	assert.Equal(t, "/opt/pandoc", cfg.PDF.Pandoc)
	assert.Equal(t, "figures", cfg.Markdown.FiguresDir, "mode variables are not config")
}

func TestLoad_InvalidFile(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "docforge.toml"), []byte("[viewer\nstyle="), 0644))

	_, err := Load(LoadOptions{ProjectDir: projectDir, UserConfigPath: os.DevNull, SkipEnv: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "viewer.debounce", envKey("DOCFORGE_VIEWER__DEBOUNCE"))
	assert.Equal(t, "markdown.figures_dir", envKey("DOCFORGE_MARKDOWN__FIGURES_DIR"))
	assert.Equal(t, "", envKey("DOCFORGE_VIEWER"))
	assert.Equal(t, "", envKey("DOCFORGE_MARKDOWN_PATH"))
}

func TestMergeMaps(t *testing.T) {
	dest := map[string]interface{}{
		"a": map[string]interface{}{"x": 1, "list": []interface{}{"one"}},
		"b": "keep",
	}
	src := map[string]interface{}{
		"a": map[string]interface{}{"y": 2, "list": []string{"two"}},
		"c": true,
	}

	mergeMaps(dest, src)

	a := dest["a"].(map[string]interface{})
	assert.Equal(t, 1, a["x"])
	assert.Equal(t, 2, a["y"])
	assert.Equal(t, []interface{}{"one", "two"}, a["list"])
	assert.Equal(t, "keep", dest["b"])
	assert.Equal(t, true, dest["c"])
}
