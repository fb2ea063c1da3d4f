// Package physics provides the per-frame motion model for the curve's
// interior control points.
//
// A [SpringPoint] is integrated at unit time step: one call to Update is one
// frame. The law is the critically-damped-drag model; see [SpringPoint] for
// the update equations and [Stable] for the constants it accepts.
//
//	p := physics.NewSpringPoint(geom.Pt(266, 250))
//	for frame := 0; frame < 120; frame++ {
//	    p.Update(target, physics.DefaultStiffness, physics.DefaultDamping)
//	}
package physics
