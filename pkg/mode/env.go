package mode

import "os"

const (
	// EnvMarkdownPath holds the markdown output file of FileMarkdown mode.
	// Its presence alone selects that mode.
	EnvMarkdownPath = "DOCFORGE_MARKDOWN_PATH"

	// EnvViewer is set to a true boolean by the viewer for the document
	// programs it runs.
	EnvViewer = "DOCFORGE_VIEWER"
)

// Environment is the process state the resolver reads and the CLI writes.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	Unsetenv(key string) error
}

// OSEnvironment is the Environment of the current process.
type OSEnvironment struct{}

func (OSEnvironment) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnvironment) Setenv(key, value string) error      { return os.Setenv(key, value) }
func (OSEnvironment) Unsetenv(key string) error           { return os.Unsetenv(key) }

// MapEnvironment is an in-memory Environment.
type MapEnvironment map[string]string

func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapEnvironment) Setenv(key, value string) error {
	m[key] = value
	return nil
}

func (m MapEnvironment) Unsetenv(key string) error {
	delete(m, key)
	return nil
}
