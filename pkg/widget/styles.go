package widget

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold             bool   `yaml:"bold,omitempty"`
	Italic           bool   `yaml:"italic,omitempty"`
	Underline        bool   `yaml:"underline,omitempty"`
	Foreground       string `yaml:"foreground,omitempty"`
	Background       string `yaml:"background,omitempty"`
	Border           string `yaml:"border,omitempty"`
	BorderForeground string `yaml:"borderForeground,omitempty"`
	MarginBottom     int    `yaml:"marginBottom,omitempty"`
	MarginTop        int    `yaml:"marginTop,omitempty"`
	PaddingLeft      int    `yaml:"paddingLeft,omitempty"`
	PaddingRight     int    `yaml:"paddingRight,omitempty"`
}

// StyleSheet represents the complete styles configuration
type StyleSheet struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles.
type Styles struct {
	colors   map[string]lipgloss.AdaptiveColor
	registry map[string]lipgloss.Style
}

//go:embed styles.yaml
var embeddedStyles []byte

var (
	defaultStyles     *Styles
	defaultStylesOnce sync.Once
)

// DefaultStyles returns the embedded style sheet. A broken sheet degrades to
// unstyled output rather than failing.
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		s, err := LoadStylesFromData(embeddedStyles)
		if err != nil {
			s = &Styles{
				colors:   map[string]lipgloss.AdaptiveColor{},
				registry: map[string]lipgloss.Style{},
			}
		}
		defaultStyles = s
	})
	return defaultStyles
}

// LoadStyles loads a style sheet from a YAML file
func LoadStyles(path string) (*Styles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	return LoadStylesFromData(data)
}

// LoadStylesFromData loads a style sheet from YAML bytes
func LoadStylesFromData(data []byte) (*Styles, error) {
	var sheet StyleSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}

	s := &Styles{
		colors:   make(map[string]lipgloss.AdaptiveColor, len(sheet.Colors)),
		registry: make(map[string]lipgloss.Style, len(sheet.Styles)),
	}
	for name, def := range sheet.Colors {
		s.colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	for name, def := range sheet.Styles {
		s.registry[name] = s.buildStyle(def)
	}
	return s, nil
}

// buildStyle constructs a lipgloss style from a style definition
func (s *Styles) buildStyle(def StyleDef) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if color, ok := s.colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := s.colors[def.Background]; ok {
		style = style.Background(color)
	}

	switch def.Border {
	case "rounded":
		style = style.Border(lipgloss.RoundedBorder())
	case "normal":
		style = style.Border(lipgloss.NormalBorder())
	case "thick":
		style = style.Border(lipgloss.ThickBorder())
	}
	if color, ok := s.colors[def.BorderForeground]; ok {
		style = style.BorderForeground(color)
	}

	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}

	return style
}

// Get safely retrieves a style, returning an empty style for unknown names.
func (s *Styles) Get(name string) lipgloss.Style {
	if style, ok := s.registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether the sheet defines name.
func (s *Styles) Has(name string) bool {
	_, ok := s.registry[name]
	return ok
}

// GetStyle retrieves a style from the default sheet.
func GetStyle(name string) lipgloss.Style {
	return DefaultStyles().Get(name)
}
