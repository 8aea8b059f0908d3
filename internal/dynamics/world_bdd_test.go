package dynamics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fixedstep/internal/collision"
	"github.com/san-kum/fixedstep/internal/dynamics"
	"github.com/san-kum/fixedstep/internal/result"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/shape"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

type q32 = scalar.Q32

var _ = Describe("World", func() {
	var (
		world *dynamics.World[q32]
		ball  dynamics.BodyID
	)

	BeforeEach(func() {
		cfg := dynamics.DefaultConfig[q32]()
		cfg.FixedTimestep = scalar.FromFloat[q32](0.25)
		cfg.Gravity = vecmath.V3(scalar.Zero[q32](), scalar.FromInt[q32](-4), scalar.Zero[q32]())

		var err error
		world, err = dynamics.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(world.Close)

		b := dynamics.NewBody[q32]()
		b.Mass = scalar.One[q32]()
		ball = world.AddBody(b)
	})

	Describe("Step", func() {
		It("does nothing until a whole timestep has accumulated", func() {
			Expect(world.Step(scalar.FromFloat[q32](0.2))).To(Equal(0))
			Expect(world.Accumulator()).To(Equal(scalar.FromFloat[q32](0.2)))

			b, err := world.Body(ball)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Position).To(Equal(vecmath.Vec3[q32]{}))
		})

		It("carries the remainder into the next call", func() {
			Expect(world.Step(scalar.FromFloat[q32](0.2))).To(Equal(0))
			Expect(world.Step(scalar.FromFloat[q32](0.2))).To(Equal(1))
			Expect(world.Accumulator()).To(Equal(scalar.FromFloat[q32](0.15)))
		})

		It("integrates velocity before position", func() {
			world.Step(scalar.FromFloat[q32](0.5))

			b, _ := world.Body(ball)
			// v: -1, -2. p: -1, -3.
			Expect(b.LinVelocity.Y.Float64()).To(Equal(-2.0))
			Expect(b.Position.Y.Float64()).To(Equal(-3.0))
		})

		It("keeps the accumulator below the timestep", func() {
			for _, dt := range []float64{0.1, 0.7, 0.05, 1.3, 0.25, 0} {
				world.Step(scalar.FromFloat[q32](dt))
				Expect(world.Accumulator()).To(BeNumerically(">=", 0))
				Expect(world.Accumulator()).To(BeNumerically("<", world.FixedTimestep()))
			}
		})
	})

	Describe("body handles", func() {
		It("rejects a handle after its body is deleted", func() {
			Expect(world.DeleteBody(ball)).To(Succeed())
			_, err := world.Body(ball)
			Expect(err).To(MatchError(result.ErrDoesNotExist))

			fresh := world.CreateBody()
			Expect(fresh.Index()).To(Equal(ball.Index()))
			Expect(fresh).NotTo(Equal(ball))
			Expect(world.SetBody(ball, dynamics.NewBody[q32]())).To(MatchError(result.ErrDoesNotExist))
		})

		It("keeps removed bodies without stepping them", func() {
			Expect(world.RemoveBody(ball)).To(Succeed())
			world.Step(scalar.One[q32]())

			Expect(world.Len()).To(Equal(1))
			Expect(world.ActiveLen()).To(Equal(0))
			b, err := world.Body(ball)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.LinVelocity).To(Equal(vecmath.Vec3[q32]{}))
		})
	})

	Describe("collision world", func() {
		It("accepts objects through the owned collision world", func() {
			obj, err := collision.NewObject[q32](shape.NewSphere(scalar.One[q32]()))
			Expect(err).NotTo(HaveOccurred())

			cw := world.Collision()
			Expect(cw.AddObject(obj)).To(Succeed())
			Expect(cw.AddObject(obj)).To(MatchError(result.ErrAlreadyExists))
			Expect(cw.RemoveObject(obj)).To(Succeed())
			Expect(cw.RemoveObject(obj)).To(MatchError(result.ErrDoesNotExist))
		})
	})
})
