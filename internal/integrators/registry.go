package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/dpsim/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"rk4":   func() dynamo.Integrator { return NewRK4() },
	"euler": func() dynamo.Integrator { return NewEuler() },
}

// Lookup returns a fresh integrator by name.
func Lookup(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q (available: %v): %w", name, Names(), dynamo.ErrUnknownIntegrator)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
