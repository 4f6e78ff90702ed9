package systems

import (
	"errors"
	"strings"

	"github.com/arthur-debert/docforge/pkg/note"
	"github.com/arthur-debert/docforge/pkg/widget"
)

// Requirement is a named requirement on a system.
type Requirement struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Display renders the requirement as a markdown bullet.
func (r Requirement) Display() string {
	return "- **" + r.Name + "**: " + r.Description
}

// Function is something a system does.
type Function struct {
	Name        string
	Description string
	Parameters  Parameters
}

// Display renders the function as a level three section.
func (f Function) Display() string {
	lines := []string{"### Function: " + f.Name}
	if f.Description != "" {
		lines = append(lines, f.Description)
	}
	out := strings.Join(lines, "\n")
	if len(f.Parameters) > 0 {
		out += "\n\n#### Parameters\n" + f.Parameters.Display()
	}
	return out
}

// System is a node of the system tree.
type System struct {
	Name         string
	Description  string
	Parameters   Parameters
	Requirements []Requirement
	Functions    []Function
	Children     []*System
}

// AddChild appends child as a subsystem.
func (s *System) AddChild(child *System) {
	s.Children = append(s.Children, child)
}

// Display renders the system and its subsystems as markdown. Empty sections
// are left out.
func (s *System) Display() string {
	header := "# System: " + s.Name
	if s.Description != "" {
		header += "\n" + s.Description
	}
	sections := []string{header}

	if len(s.Parameters) > 0 {
		sections = append(sections, "## Parameters\n"+s.Parameters.Display())
	}
	if len(s.Requirements) > 0 {
		lines := make([]string, len(s.Requirements))
		for i, r := range s.Requirements {
			lines[i] = r.Display()
		}
		sections = append(sections, "## Requirements\n"+strings.Join(lines, "\n"))
	}
	if len(s.Functions) > 0 {
		parts := make([]string, len(s.Functions))
		for i, f := range s.Functions {
			parts[i] = f.Display()
		}
		sections = append(sections, "## Functions\n"+strings.Join(parts, "\n\n"))
	}
	if len(s.Children) > 0 {
		parts := make([]string, len(s.Children))
		for i, c := range s.Children {
			parts[i] = c.Display()
		}
		sections = append(sections, "## Subsystems\n"+strings.Join(parts, "\n\n"))
	}

	return strings.Join(sections, "\n\n")
}

func (s *System) RenderMarkdown(note.RenderContext) (string, error) {
	return s.Display(), nil
}

func (s *System) RenderWidget(host widget.Host) error {
	return host.Markdown(s.Display())
}

// Walk visits s and its subsystems depth first, parents before children.
// A non-nil error from fn stops the walk and is returned.
func (s *System) Walk(fn func(sys *System, depth int) error) error {
	return s.walk(fn, 0)
}

func (s *System) walk(fn func(*System, int) error, depth int) error {
	if err := fn(s, depth); err != nil {
		return err
	}
	for _, c := range s.Children {
		if err := c.walk(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the first system named name in the tree, or nil.
func (s *System) Find(name string) *System {
	var found *System
	_ = s.Walk(func(sys *System, _ int) error {
		if sys.Name == name {
			found = sys
			return errStop
		}
		return nil
	})
	return found
}

var errStop = errors.New("stop walk")
