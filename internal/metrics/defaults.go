package metrics

import "github.com/san-kum/springcurve/internal/sim"

// Default is the metric set the CLI attaches to headless runs.
func Default(trackingThreshold float64) []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewStability(trackingThreshold),
		NewArcLength(),
	}
}
