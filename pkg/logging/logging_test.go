package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("DOCFORGE_STATE_DIR", tempDir)
			t.Setenv(EnvLogLevel, "")

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			_, err := os.Stat(filepath.Join(tempDir, "docforge.log"))
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestLevelFor_EnvironmentOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")
	assert.Equal(t, zerolog.DebugLevel, levelFor(0))

	t.Setenv(EnvLogLevel, "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, levelFor(1), "unparseable override falls back to verbosity")
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger := GetLogger("note.render")
	logger.Info().Msg("rendered")

	assert.Contains(t, buf.String(), `"component":"note.render"`)
	assert.Contains(t, buf.String(), "rendered")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	LogCommand("pandoc", []string{"report.md", "-o", "report.pdf"})

	output := buf.String()
	assert.Contains(t, output, "pandoc")
	assert.Contains(t, output, "report.pdf")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "render")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
