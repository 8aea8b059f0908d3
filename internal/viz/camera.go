package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/fixedstep/internal/sim"
)

const maxPitch = math.Pi/2 - 0.05

// Camera orbits Target at Distance. Yaw turns about +Y, Pitch tilts toward
// +Y. Both are in radians.
type Camera struct {
	Target     mgl64.Vec3
	Distance   float64
	Yaw, Pitch float64
	FOV        float64
	Near, Far  float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 60, FOV: math.Pi / 4, Near: 0.1, Far: 1000}
}

func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = mgl64.Clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

func (c *Camera) ZoomIn()  { c.Distance = math.Max(1, c.Distance/1.2) }
func (c *Camera) ZoomOut() { c.Distance = math.Min(c.Far/2, c.Distance*1.2) }

func (c *Camera) Eye() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := mgl64.Vec3{
		c.Distance * cp * math.Sin(c.Yaw),
		c.Distance * math.Sin(c.Pitch),
		c.Distance * cp * math.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// Matrix returns the combined projection and view transform for a w x h
// viewport.
func (c *Camera) Matrix(w, h int) mgl64.Mat4 {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	proj := mgl64.Perspective(c.FOV, aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// Project maps p to dot coordinates of a w x h viewport. ok is false when p
// is behind the near plane; points beside the viewport still project.
func (c *Camera) Project(p mgl64.Vec3, w, h int) (x, y int, ok bool) {
	return project(c.Matrix(w, h), c.Near, p, w, h)
}

func project(m mgl64.Mat4, near float64, p mgl64.Vec3, w, h int) (int, int, bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip.W() < near {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x := int(math.Round((ndc.X() + 1) / 2 * float64(w-1)))
	y := int(math.Round((1 - ndc.Y()) / 2 * float64(h-1)))
	return x, y, true
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p mgl64.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }

// AddBox adds the twelve edges of an axis aligned box.
func (w *Wireframe) AddBox(center, half mgl64.Vec3) {
	var v [8]mgl64.Vec3
	for i := range v {
		corner := half
		if i&1 == 0 {
			corner[0] = -corner[0]
		}
		if i&2 == 0 {
			corner[1] = -corner[1]
		}
		if i&4 == 0 {
			corner[2] = -corner[2]
		}
		v[i] = center.Add(corner)
	}
	for i := range v {
		for _, bit := range []int{1, 2, 4} {
			if j := i | bit; j != i {
				w.AddEdge(v[i], v[j])
			}
		}
	}
}

// AddEllipsoid adds three axis rings with the given radii.
func (w *Wireframe) AddEllipsoid(center, radii mgl64.Vec3, segments int) {
	if radii == (mgl64.Vec3{}) {
		w.AddPoint(center)
		return
	}
	ring := func(a, b int) {
		var prev mgl64.Vec3
		for i := 0; i <= segments; i++ {
			th := 2 * math.Pi * float64(i) / float64(segments)
			p := center
			p[a] += radii[a] * math.Cos(th)
			p[b] += radii[b] * math.Sin(th)
			if i > 0 {
				w.AddEdge(prev, p)
			}
			prev = p
		}
	}
	ring(0, 1)
	ring(0, 2)
	ring(1, 2)
}

func (w *Wireframe) AddAxes(l float64) {
	o := mgl64.Vec3{}
	w.AddEdge(o, mgl64.Vec3{l, 0, 0})
	w.AddEdge(o, mgl64.Vec3{0, l, 0})
	w.AddEdge(o, mgl64.Vec3{0, 0, l})
}

// AddBodies outlines every active body: boxes as boxes, everything else as
// rings sized by its extents.
func (w *Wireframe) AddBodies(bodies []sim.BodyState) {
	for _, b := range bodies {
		if !b.Active {
			continue
		}
		center, ext := mgl64.Vec3(b.Position), mgl64.Vec3(b.Extents)
		if b.Shape == "box" {
			w.AddBox(center, ext)
		} else {
			w.AddEllipsoid(center, ext, 16)
		}
	}
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render draws w onto c, far edges first. Edges with an endpoint behind the
// camera are skipped.
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	dw, dh := c.Dots()
	m := cam.Matrix(dw, dh)
	eye := cam.Eye()

	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, ok1 := project(m, cam.Near, e.Start, dw, dh)
		x2, y2, ok2 := project(m, cam.Near, e.End, dw, dh)
		if !ok1 || !ok2 {
			continue
		}
		mid := e.Start.Add(e.End).Mul(0.5)
		proj = append(proj, projectedEdge{x1, y1, x2, y2, mid.Sub(eye).Len()})
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}
