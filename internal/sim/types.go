package sim

type Vec3 = [3]float64

// BodyState is a body as seen from outside the world, in float64.
type BodyState struct {
	Name     string  `json:"name"`
	Position Vec3    `json:"position"`
	Velocity Vec3    `json:"velocity"`
	Mass     float64 `json:"mass"`
	Shape    string  `json:"shape"`
	// Extents are the half extents of the body's shape.
	Extents   Vec3 `json:"extents"`
	Kinematic bool `json:"kinematic,omitempty"`
	Active    bool `json:"active"`
}

// Frame is the world after one caller frame.
type Frame struct {
	Index       int         `json:"index"`
	Dt          float64     `json:"dt"`
	Substeps    int         `json:"substeps"`
	Time        float64     `json:"time"`
	Accumulator float64     `json:"accumulator"`
	Bodies      []BodyState `json:"bodies"`
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Result struct {
	Scene    string             `json:"scene"`
	Repr     string             `json:"repr"`
	Initial  Frame              `json:"initial"`
	Frames   []Frame            `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
	Substeps int                `json:"substeps"`
}

// Final returns the last recorded frame, or the initial one if none ran.
func (r *Result) Final() Frame {
	if len(r.Frames) == 0 {
		return r.Initial
	}
	return r.Frames[len(r.Frames)-1]
}

// Track returns the position of body i at every frame, starting with the
// initial state.
func (r *Result) Track(i int) []Vec3 {
	out := make([]Vec3, 0, len(r.Frames)+1)
	for _, f := range append([]Frame{r.Initial}, r.Frames...) {
		if i < len(f.Bodies) {
			out = append(out, f.Bodies[i].Position)
		}
	}
	return out
}
