package registry

import (
	"fmt"
	"sort"

	"github.com/san-kum/trajgen/internal/shape"
	"github.com/san-kum/trajgen/internal/trajectory"
)

// Registry maps generator names to factories.
type Registry struct {
	generators map[string]func(params map[string]float64) trajectory.Generator
}

func New() *Registry {
	r := &Registry{
		generators: make(map[string]func(map[string]float64) trajectory.Generator),
	}

	r.generators["linear"] = func(params map[string]float64) trajectory.Generator {
		return withTolerance(shape.NewLinear(), params)
	}
	r.generators["minjerk"] = func(params map[string]float64) trajectory.Generator {
		return withTolerance(shape.NewMinJerk(), params)
	}
	r.generators["none"] = func(map[string]float64) trajectory.Generator {
		return trajectory.Unimplemented{}
	}

	return r
}

func withTolerance(s *shape.Shape, params map[string]float64) *shape.Shape {
	if tol, ok := params["tolerance"]; ok && tol > 0 {
		s.Tolerance = tol
	}
	return s
}

// Register adds or replaces a generator factory.
func (r *Registry) Register(name string, fn func(map[string]float64) trajectory.Generator) {
	r.generators[name] = fn
}

func (r *Registry) Generator(name string, params map[string]float64) (trajectory.Generator, error) {
	fn, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
