package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/fixedstep/internal/sim"
	"github.com/san-kum/fixedstep/internal/viz"
)

// Palette cycles per body in trajectory plots.
var Palette = []string{"#00ff88", "#00ccff", "#ffcc00", "#ff00ff", "#ff4444", "#ffffff"}

// Plane selects the two position axes a trajectory is drawn on.
type Plane [2]int

var (
	PlaneXY = Plane{0, 1}
	PlaneXZ = Plane{0, 2}
	PlaneZY = Plane{2, 1}
)

// ParsePlane accepts "xy", "xz" or "zy".
func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "xy", "":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "zy":
		return PlaneZY, nil
	default:
		return Plane{}, fmt.Errorf("unknown plane %q", s)
	}
}

// CanvasToSVG draws every lit dot of c as a circle, scale pixels apart.
func CanvasToSVG(c *viz.Canvas, scale float64) string {
	if c == nil {
		return ""
	}

	dw, dh := c.Dots()
	width := float64(dw) * scale
	height := float64(dh) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, Palette[0])

	r := scale * 0.4
	for y := range dh {
		for x := range dw {
			if c.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) add(x, y float64) {
	b.minX, b.maxX = math.Min(b.minX, x), math.Max(b.maxX, x)
	b.minY, b.maxY = math.Min(b.minY, y), math.Max(b.maxY, y)
}

// pad widens b by 10% per side, and gives flat axes a unit range.
func (b *bounds) pad() {
	if b.maxX == b.minX {
		b.minX, b.maxX = b.minX-0.5, b.maxX+0.5
	}
	if b.maxY == b.minY {
		b.minY, b.maxY = b.minY-0.5, b.maxY+0.5
	}
	dx, dy := (b.maxX-b.minX)*0.1, (b.maxY-b.minY)*0.1
	b.minX, b.maxX = b.minX-dx, b.maxX+dx
	b.minY, b.maxY = b.minY-dy, b.maxY+dy
}

// TrajectorySVG draws the path of every active body in frames, projected
// onto plane, one coloured polyline per body. Returns "" when there is
// nothing to draw.
func TrajectorySVG(frames []sim.Frame, plane Plane, width, height int) string {
	if len(frames) < 2 || len(frames[0].Bodies) == 0 {
		return ""
	}
	n := len(frames[0].Bodies)
	a, o := plane[0], plane[1]

	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, f := range frames {
		for _, body := range f.Bodies {
			b.add(body.Position[a], body.Position[o])
		}
	}
	b.pad()

	toScreen := func(p sim.Vec3) (float64, float64) {
		x := (p[a] - b.minX) / (b.maxX - b.minX) * float64(width)
		y := float64(height) - (p[o]-b.minY)/(b.maxY-b.minY)*float64(height)
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i := range n {
		color := Palette[i%len(Palette)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, color)
		first := true
		for _, f := range frames {
			if i >= len(f.Bodies) {
				continue
			}
			x, y := toScreen(f.Bodies[i].Position)
			if first {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
				first = false
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
		x, y := toScreen(frames[0].Bodies[i].Position)
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-size=\"10\">%s</text>\n", x+4, y-4, color, escape(frames[0].Bodies[i].Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
