package config

import "time"

// Config is the complete docforge configuration.
type Config struct {
	Markdown MarkdownConfig `koanf:"markdown"`
	Viewer   ViewerConfig   `koanf:"viewer"`
	PDF      PDFConfig      `koanf:"pdf"`
	Runner   RunnerConfig   `koanf:"runner"`
}

// MarkdownConfig controls markdown rendering.
type MarkdownConfig struct {
	FiguresDir string `koanf:"figures_dir"`
	Separator  string `koanf:"separator"`
}

// ViewerConfig controls the interactive viewer.
type ViewerConfig struct {
	Style    string        `koanf:"style"`
	Width    int           `koanf:"width"`
	Debounce time.Duration `koanf:"debounce"`
	Watch    []string      `koanf:"watch"`
	Ignore   []string      `koanf:"ignore"`
}

// PDFConfig controls pdf conversion.
type PDFConfig struct {
	Pandoc string   `koanf:"pandoc"`
	Args   []string `koanf:"args"`
}

// RunnerConfig controls how document programs are run.
type RunnerConfig struct {
	Go   string   `koanf:"go"`
	Args []string `koanf:"args"`
}
