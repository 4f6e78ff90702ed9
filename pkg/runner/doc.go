// Package runner drives document programs from the docforge CLI.
//
// A document program is an ordinary Go main package. The runner executes it
// with `go run` and selects its render mode through the environment: a
// markdown output path for Markdown and PDF, the viewer flag for View.
package runner
