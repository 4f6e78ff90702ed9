package systems

import "github.com/arthur-debert/docforge/pkg/note"

// Parameter is a named value, usually a Quantity.
type Parameter struct {
	Name  string
	Value any
}

// Parameters is an ordered parameter list.
type Parameters []Parameter

// With returns p with name set to value, replacing an existing entry in place.
func (p Parameters) With(name string, value any) Parameters {
	for i := range p {
		if p[i].Name == name {
			out := append(Parameters(nil), p...)
			out[i].Value = value
			return out
		}
	}
	return append(p, Parameter{Name: name, Value: value})
}

// Get returns the value of name.
func (p Parameters) Get(name string) (any, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return nil, false
}

// Quantity returns name as a Quantity; plain numbers have no unit.
func (p Parameters) Quantity(name string) (Quantity, bool) {
	v, ok := p.Get(name)
	if !ok {
		return Quantity{}, false
	}
	switch x := v.(type) {
	case Quantity:
		return x, true
	case float64:
		return Quantity{Magnitude: x}, true
	case int:
		return Quantity{Magnitude: float64(x)}, true
	case int64:
		return Quantity{Magnitude: float64(x)}, true
	default:
		return Quantity{}, false
	}
}

// Table is the parameters as a two-column note.Table.
func (p Parameters) Table(caption string, label ...string) note.Table {
	rows := make([][]any, len(p))
	for i, param := range p {
		rows[i] = []any{param.Name, param.Value}
	}
	return note.NewTable([]string{"Parameter", "Value"}, rows, caption, label...)
}

// Display renders the parameters as a markdown table.
func (p Parameters) Display() string {
	md, _ := p.Table("").RenderMarkdown(note.RenderContext{})
	return md
}
