// Package paths provides centralized path handling for docforge.
//
// It resolves the XDG locations docforge uses for user configuration and
// logs, and the per-document locations (project config files, default
// markdown and pdf outputs) derived from a document program's path.
//
// # Environment Variables
//
//   - DOCFORGE_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/docforge)
//   - DOCFORGE_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/docforge)
//
// # Usage
//
//	p := paths.New()
//	logFile := p.LogFilePath()
//	md := paths.DefaultOutputPath("docs/report.go", ".md")
package paths
