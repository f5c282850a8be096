package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/integrators"
	"github.com/san-kum/dpsim/internal/physics"
	"github.com/san-kum/dpsim/internal/sim"
)

var _ = Describe("Simulator", func() {
	var (
		s      *sim.Simulator
		screen dynamo.Params
	)

	BeforeEach(func() {
		s = sim.New(physics.NewDoublePendulum(), integrators.NewRK4())
		screen = dynamo.Params{Mass1: 60, Mass2: 60, Length1: 200, Length2: 200, Gravity: -10.5}
	})

	Context("at the classic starting pose", func() {
		x0 := dynamo.State{Angle1: math.Pi / 2, Angle2: math.Pi / 2}

		It("is deterministic across runs", func() {
			a, err := s.Run(context.Background(), x0, screen, sim.Config{Dt: 0.5, Steps: 300})
			Expect(err).NotTo(HaveOccurred())

			other := sim.New(physics.NewDoublePendulum(), integrators.NewRK4())
			b, err := other.Run(context.Background(), x0, screen, sim.Config{Dt: 0.5, Steps: 300})
			Expect(err).NotTo(HaveOccurred())

			Expect(a.States).To(Equal(b.States))
		})

		It("keeps the arms at their lengths", func() {
			pivot := dynamo.Point{X: 640, Y: 430}
			x := x0
			for i := 0; i < 120; i++ {
				var err error
				x, err = s.Tick(x, screen, 0.5)
				Expect(err).NotTo(HaveOccurred())
			}

			b1, b2 := integrators.DerivePositions(x, screen, pivot)
			Expect(math.Hypot(b1.X-pivot.X, b1.Y-pivot.Y)).To(BeNumerically("~", 200, 1e-9))
			Expect(math.Hypot(b2.X-b1.X, b2.Y-b1.Y)).To(BeNumerically("~", 200, 1e-9))
		})

		It("accepts a mass change between ticks", func() {
			x, err := s.Tick(x0, screen, 0.5)
			Expect(err).NotTo(HaveOccurred())

			screen.Mass1 = 10
			x, err = s.Tick(x, screen, 0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(x.IsFinite()).To(BeTrue())
			Expect(s.Steps()).To(Equal(2))
		})
	})

	Context("when the denominator vanishes", func() {
		var x0 dynamo.State

		BeforeEach(func() {
			screen.Mass1 = 0
			x0 = dynamo.State{Angle1: 0.7, Angle2: 0.7}
		})

		It("freezes by default", func() {
			x, err := s.Tick(x0, screen, 0.5)
			Expect(err).To(MatchError(dynamo.ErrNumericalInstability))
			Expect(x).To(Equal(x0))

			var simErr *dynamo.SimulationError
			Expect(err).To(BeAssignableToTypeOf(simErr))
		})

		It("hands back the non-finite state when propagating", func() {
			s.SetPolicy(sim.PolicyPropagate)

			x, err := s.Tick(x0, screen, 0.5)
			Expect(err).To(MatchError(dynamo.ErrNumericalInstability))
			Expect(x.IsFinite()).To(BeFalse())
		})
	})
})
