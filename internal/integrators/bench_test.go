package integrators

import (
	"testing"

	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/physics"
)

func benchmarkIntegrator(b *testing.B, integ dynamo.Integrator) {
	var dyn physics.DoublePendulum
	x := dynamo.State{Angle1: 1.5, Angle2: 1.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, unit, 0.001)
	}
}

func BenchmarkEuler(b *testing.B) { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkRK4(b *testing.B)   { benchmarkIntegrator(b, NewRK4()) }

func BenchmarkDerivePositions(b *testing.B) {
	x := dynamo.State{Angle1: 1.5, Angle2: 1.5}
	pivot := dynamo.Point{X: 640, Y: 430}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DerivePositions(x, screen, pivot)
	}
}
