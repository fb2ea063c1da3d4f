package curve_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springcurve/internal/curve"
	"github.com/san-kum/springcurve/internal/geom"
)

func randomCubic(r *rand.Rand) curve.Cubic {
	pt := func() geom.Point { return geom.Pt(r.Float64()*800, r.Float64()*500) }
	return curve.Cubic{P0: pt(), P1: pt(), P2: pt(), P3: pt()}
}

var _ = Describe("Position", func() {
	var r *rand.Rand

	BeforeEach(func() {
		r = rand.New(rand.NewSource(7))
	})

	It("interpolates the endpoints exactly", func() {
		for i := 0; i < 200; i++ {
			c := randomCubic(r)
			Expect(c.At(0)).To(Equal(c.P0))
			Expect(c.At(1)).To(Equal(c.P3))
		}
	})

	It("moves at most 3*maxChord*eps for a step eps", func() {
		const eps = 1e-3
		for i := 0; i < 200; i++ {
			c := randomCubic(r)
			t := r.Float64() * (1 - eps)
			step := c.At(t + eps).Distance(c.At(t))
			Expect(step).To(BeNumerically("<=", 3*c.MaxChord()*eps+1e-9))
		}
	})

	It("passes through the midpoint of a straight evenly spaced curve", func() {
		p := curve.Position(0.5,
			geom.Pt(50, 250), geom.Pt(266, 250), geom.Pt(533, 250), geom.Pt(750, 250))
		Expect(p.X).To(BeNumerically("~", 400, 0.5))
		Expect(p.Y).To(BeNumerically("~", 250, 1e-9))

		exact := curve.Position(0.5,
			geom.Pt(50, 250), geom.Pt(50+700.0/3, 250), geom.Pt(50+1400.0/3, 250), geom.Pt(750, 250))
		Expect(exact.X).To(BeNumerically("~", 400, 1e-9))
	})

	It("extrapolates outside [0,1] without clamping", func() {
		c := curve.Cubic{P0: geom.Pt(0, 0), P1: geom.Pt(1, 0), P2: geom.Pt(2, 0), P3: geom.Pt(3, 0)}
		Expect(c.At(2).X).To(BeNumerically("~", 6, 1e-9))
		Expect(c.At(-1).X).To(BeNumerically("~", -3, 1e-9))
	})
})

var _ = Describe("Tangent", func() {
	It("has unit length for generic control points", func() {
		r := rand.New(rand.NewSource(11))
		for i := 0; i < 500; i++ {
			c := randomCubic(r)
			tan := c.TangentAt(r.Float64())
			Expect(tan.Norm()).To(BeNumerically("~", 1, 1e-9))
		}
	})

	It("is the zero vector when all points coincide", func() {
		p := geom.Pt(123, 45)
		for _, t := range []float64{0, 0.25, 0.5, 1} {
			Expect(curve.Tangent(t, p, p, p, p)).To(Equal(geom.Point{}))
		}
	})

	It("points along a straight horizontal curve", func() {
		tan := curve.Tangent(0.3, geom.Pt(50, 250), geom.Pt(300, 250), geom.Pt(500, 250), geom.Pt(750, 250))
		Expect(tan.X).To(BeNumerically("~", 1, 1e-12))
		Expect(tan.Y).To(BeNumerically("~", 0, 1e-12))
	})

	DescribeTable("matches the direction of the raw derivative",
		func(t float64) {
			p0, p1, p2, p3 := geom.Pt(0, 0), geom.Pt(100, 200), geom.Pt(300, -50), geom.Pt(400, 100)
			d := curve.Derivative(t, p0, p1, p2, p3)
			tan := curve.Tangent(t, p0, p1, p2, p3)
			Expect(tan.X*d.Norm()).To(BeNumerically("~", d.X, 1e-9))
			Expect(tan.Y*d.Norm()).To(BeNumerically("~", d.Y, 1e-9))
		},
		Entry("start", 0.0),
		Entry("quarter", 0.25),
		Entry("middle", 0.5),
		Entry("end", 1.0),
	)

	It("derivative at the ends is 3 times the outer legs", func() {
		p0, p1, p2, p3 := geom.Pt(0, 0), geom.Pt(10, 5), geom.Pt(20, 5), geom.Pt(40, 0)
		Expect(curve.Derivative(0, p0, p1, p2, p3)).To(Equal(p1.Sub(p0).Scale(3)))
		Expect(curve.Derivative(1, p0, p1, p2, p3)).To(Equal(p3.Sub(p2).Scale(3)))
	})
})

var _ = Describe("Sample", func() {
	c := curve.Cubic{P0: geom.Pt(50, 250), P1: geom.Pt(266, 100), P2: geom.Pt(533, 400), P3: geom.Pt(750, 250)}

	It("returns n+1 points spanning the endpoints", func() {
		pts := curve.Sample(c, 100)
		Expect(pts).To(HaveLen(101))
		Expect(pts[0]).To(Equal(c.P0))
		Expect(pts[100]).To(Equal(c.P3))
	})

	It("treats n below 1 as a single segment", func() {
		Expect(curve.Sample(c, 0)).To(HaveLen(2))
		Expect(curve.Sample(c, -5)).To(HaveLen(2))
	})

	It("gets longer as the polyline refines", func() {
		coarse := geom.Length(curve.Sample(c, 4))
		fine := geom.Length(curve.Sample(c, 256))
		Expect(fine).To(BeNumerically(">=", coarse))
		Expect(fine).To(BeNumerically(">=", c.P3.Distance(c.P0)))
		Expect(math.IsNaN(fine)).To(BeFalse())
	})
})
