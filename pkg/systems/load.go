package systems

import (
	"bytes"
	stderrors "errors"
	"os"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/pelletier/go-toml/v2"
)

type systemFile struct {
	Name         string          `toml:"name"`
	Description  string          `toml:"description"`
	Parameters   []parameterFile `toml:"parameters"`
	Requirements []Requirement   `toml:"requirements"`
	Functions    []functionFile  `toml:"functions"`
	Subsystems   []systemFile    `toml:"subsystems"`
}

type parameterFile struct {
	Name  string `toml:"name"`
	Value any    `toml:"value"`
	Unit  string `toml:"unit"`
}

type functionFile struct {
	Name        string          `toml:"name"`
	Description string          `toml:"description"`
	Parameters  []parameterFile `toml:"parameters"`
}

// LoadFile reads a system tree from a TOML file.
func LoadFile(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read system file %s", path)
	}
	sys, err := Parse(data)
	if err != nil {
		if docErr, ok := err.(*errors.DocforgeError); ok {
			return nil, docErr.WithDetail("path", path)
		}
		return nil, err
	}
	logger := logging.GetLogger("systems")
	logger.Debug().Str("path", path).Str("root", sys.Name).Msg("Loaded system tree")
	return sys, nil
}

// Parse reads a system tree from TOML. Unknown keys are rejected.
func Parse(data []byte) (*System, error) {
	var f systemFile
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		wrapped := errors.Wrap(err, errors.ErrInvalidInput, "invalid system file")
		var decErr *toml.DecodeError
		if stderrors.As(err, &decErr) {
			row, col := decErr.Position()
			wrapped.WithDetail("line", row).WithDetail("column", col)
		}
		return nil, wrapped
	}
	return f.build("")
}

func (f systemFile) build(parent string) (*System, error) {
	if f.Name == "" {
		if parent == "" {
			return nil, errors.New(errors.ErrInvalidInput, "root system has no name")
		}
		return nil, errors.Newf(errors.ErrInvalidInput, "subsystem of %q has no name", parent)
	}

	params, err := buildParameters(f.Name, f.Parameters)
	if err != nil {
		return nil, err
	}
	sys := &System{
		Name:         f.Name,
		Description:  f.Description,
		Parameters:   params,
		Requirements: f.Requirements,
	}

	for _, fn := range f.Functions {
		fparams, err := buildParameters(f.Name+"/"+fn.Name, fn.Parameters)
		if err != nil {
			return nil, err
		}
		sys.Functions = append(sys.Functions, Function{
			Name:        fn.Name,
			Description: fn.Description,
			Parameters:  fparams,
		})
	}

	for _, child := range f.Subsystems {
		c, err := child.build(f.Name)
		if err != nil {
			return nil, err
		}
		sys.AddChild(c)
	}
	return sys, nil
}

func buildParameters(owner string, in []parameterFile) (Parameters, error) {
	var out Parameters
	for _, p := range in {
		if p.Name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "parameter of %q has no name", owner)
		}
		value := p.Value
		if p.Unit != "" {
			switch v := p.Value.(type) {
			case int64:
				value = Q(float64(v), p.Unit)
			case float64:
				value = Q(v, p.Unit)
			default:
				return nil, errors.Newf(errors.ErrInvalidInput,
					"parameter %q of %q has a unit but a non-numeric value", p.Name, owner)
			}
		}
		out = append(out, Parameter{Name: p.Name, Value: value})
	}
	return out, nil
}
