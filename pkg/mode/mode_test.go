package mode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMode_StringAndParse(t *testing.T) {
	for _, m := range []RenderMode{FileMarkdown, InteractiveWidget, PlainPython} {
		t.Run(m.String(), func(t *testing.T) {
			parsed, err := ParseMode(m.String())
			require.NoError(t, err)
			assert.Equal(t, m, parsed)
			assert.True(t, m.Valid())
		})
	}

	_, err := ParseMode("pdf")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidMode))
	assert.False(t, RenderMode(42).Valid())
	assert.Equal(t, "RenderMode(42)", RenderMode(42).String())
}

func TestRenderMode_ProducesMarkdown(t *testing.T) {
	assert.True(t, FileMarkdown.ProducesMarkdown())
	assert.True(t, PlainPython.ProducesMarkdown())
	assert.False(t, InteractiveWidget.ProducesMarkdown())
}

func TestResolve(t *testing.T) {
	tmp := t.TempDir()
	existing := filepath.Join(tmp, "existing.md")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0644))

	tests := []struct {
		name     string
		env      MapEnvironment
		wantMode RenderMode
		wantPath string
		wantCode errors.ErrorCode
	}{
		{
			name:     "markdown path selects file mode",
			env:      MapEnvironment{EnvMarkdownPath: existing},
			wantMode: FileMarkdown,
			wantPath: existing,
		},
		{
			name:     "markdown path wins over viewer flag",
			env:      MapEnvironment{EnvMarkdownPath: existing, EnvViewer: "1"},
			wantMode: FileMarkdown,
			wantPath: existing,
		},
		{
			name:     "viewer flag selects widget mode",
			env:      MapEnvironment{EnvViewer: "true"},
			wantMode: InteractiveWidget,
		},
		{
			name:     "false viewer flag falls through",
			env:      MapEnvironment{EnvViewer: "0"},
			wantMode: PlainPython,
		},
		{
			name:     "empty markdown path is ignored",
			env:      MapEnvironment{EnvMarkdownPath: ""},
			wantMode: PlainPython,
		},
		{
			name:     "nothing set is plain",
			env:      MapEnvironment{},
			wantMode: PlainPython,
		},
		{
			name:     "malformed viewer flag is an error",
			env:      MapEnvironment{EnvViewer: "sometimes"},
			wantCode: errors.ErrModeResolution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(tt.env)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, res.Mode)
			assert.Equal(t, tt.wantPath, res.OutputPath)
		})
	}

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content), "resolution never truncates an existing file")
}

func TestResolve_CreatesMissingFileAndParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "deeper", "out.md")

	res, err := Resolve(MapEnvironment{EnvMarkdownPath: target})
	require.NoError(t, err)
	assert.Equal(t, FileMarkdown, res.Mode)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestResolver_Memoizes(t *testing.T) {
	env := MapEnvironment{}
	r := NewResolver(env)

	first, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, PlainPython, first.Mode)

	require.NoError(t, EnableViewer(env))
	cached, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, PlainPython, cached.Mode, "cached until invalidated")

	r.Invalidate()
	fresh, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, InteractiveWidget, fresh.Mode)
}

func TestResolver_DoesNotCacheFailures(t *testing.T) {
	env := MapEnvironment{EnvViewer: "maybe"}
	r := NewResolver(env)

	_, err := r.Resolve()
	require.Error(t, err)

	require.NoError(t, DisableViewer(env))
	res, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, PlainPython, res.Mode)
}

func TestEnableDisableMarkdown(t *testing.T) {
	env := MapEnvironment{}
	target := filepath.Join(t.TempDir(), "docs", "report.md")

	require.NoError(t, EnableMarkdown(env, target))
	assert.FileExists(t, target)
	assert.Equal(t, target, env[EnvMarkdownPath])

	require.NoError(t, DisableMarkdown(env))
	_, ok := env.LookupEnv(EnvMarkdownPath)
	assert.False(t, ok, "disabling removes the variable entirely")

	err := EnableMarkdown(env, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoOutputPath))
}

func TestOSEnvironment(t *testing.T) {
	t.Setenv(EnvViewer, "")
	env := OSEnvironment{}

	require.NoError(t, EnableViewer(env))
	assert.Equal(t, "1", os.Getenv(EnvViewer))

	require.NoError(t, DisableViewer(env))
	_, ok := os.LookupEnv(EnvViewer)
	assert.False(t, ok)
}
