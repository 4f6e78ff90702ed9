package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvironmentOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(tmp, "cfg"))
	t.Setenv(EnvStateDir, filepath.Join(tmp, "state"))

	p := New()

	assert.Equal(t, filepath.Join(tmp, "cfg"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "cfg", "config.toml"), p.UserConfigPath())
	assert.Equal(t, filepath.Join(tmp, "state", "docforge.log"), p.LogFilePath())
}

func TestNew_XDGVariables(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvStateDir, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))

	p := New()

	assert.Equal(t, filepath.Join(tmp, "config", "docforge"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "state", "docforge"), p.StateDir())
}

func TestFindProjectConfig(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FindProjectConfig(dir))

	hidden := filepath.Join(dir, ".docforge.toml")
	require.NoError(t, os.WriteFile(hidden, []byte("[pdf]\n"), 0644))
	assert.Equal(t, hidden, FindProjectConfig(dir))

	visible := filepath.Join(dir, "docforge.toml")
	require.NoError(t, os.WriteFile(visible, []byte("[pdf]\n"), 0644))
	assert.Equal(t, visible, FindProjectConfig(dir), "docforge.toml takes precedence")
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		doc, ext, want string
	}{
		{"docs/report.go", ".md", "docs/report.md"},
		{"report", ".pdf", "report.pdf"},
		{"a.b/report.go", ".md", "a.b/report.md"},
	}
	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultOutputPath(tt.doc, tt.ext))
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "docs"), ExpandHome("~/docs"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestNormalizePath(t *testing.T) {
	_, err := NormalizePath("")
	assert.Error(t, err)

	got, err := NormalizePath("some/../file.md")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "file.md", filepath.Base(got))
}
