package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fixedstep/internal/sim"
)

var axisNames = [3]string{"x", "y", "z"}

// Series extracts one position axis of one body from frames. Frames that do
// not carry the body are skipped.
func Series(frames []sim.Frame, body, axis int) []float64 {
	out := make([]float64, 0, len(frames))
	for _, f := range frames {
		if body < len(f.Bodies) {
			out = append(out, f.Bodies[body].Position[axis])
		}
	}
	return out
}

// PlotTrajectory charts one position axis of one body over the run.
func PlotTrajectory(frames []sim.Frame, body, axis int) (string, error) {
	if axis < 0 || axis > 2 {
		return "", fmt.Errorf("axis must be 0, 1 or 2, got %d", axis)
	}
	if len(frames) == 0 || body < 0 || body >= len(frames[0].Bodies) {
		return "", fmt.Errorf("no body %d in trajectory", body)
	}
	data := Series(frames, body, axis)
	if len(data) < 2 {
		return "", fmt.Errorf("need at least 2 samples, got %d", len(data))
	}

	caption := fmt.Sprintf("%s.%s", frames[0].Bodies[body].Name, axisNames[axis])
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	), nil
}

// PlotDeviation charts how far each representation drifts from the
// reference, frame by frame.
func PlotDeviation(c *sim.Comparison) string {
	series := make([][]float64, 0, len(c.Reprs))
	names := make([]string, 0, len(c.Reprs))
	for _, r := range c.Reprs {
		if r == c.Reference {
			continue
		}
		dev := c.Drift[r]
		if len(dev) < 2 {
			continue
		}
		series = append(series, dev)
		names = append(names, r.String())
	}
	if len(series) == 0 {
		return ""
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("deviation from %v: %s", c.Reference, strings.Join(names, ", "))),
	)
}
