package integrators

import (
	"errors"
	"testing"

	"github.com/san-kum/dpsim/internal/dynamo"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		integ, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if integ == nil {
			t.Fatalf("Lookup(%q) returned nil", name)
		}
	}

	if _, err := Lookup("rk45"); !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "euler" || names[1] != "rk4" {
		t.Errorf("unexpected names: %v", names)
	}
}
