package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

type f64 = scalar.F64

func v2(x, y f64) vecmath.Vec2[f64] { return vecmath.V2(x, y) }

func TestRayLine(t *testing.T) {
	vertical := Line[f64]{A: 1, B: 0, C: -5}

	tests := []struct {
		name   string
		ray    Ray[f64]
		line   Line[f64]
		want   Hit[f64]
		wantOK bool
	}{
		{
			name:   "hits vertical line ahead",
			ray:    Ray[f64]{Origin: v2(0, 0), Dir: v2(1, 0)},
			line:   vertical,
			want:   Hit[f64]{Point: v2(5, 0), Param: 5},
			wantOK: true,
		},
		{
			name: "line behind origin",
			ray:  Ray[f64]{Origin: v2(0, 0), Dir: v2(-1, 0)},
			line: vertical,
		},
		{
			name: "parallel",
			ray:  Ray[f64]{Origin: v2(0, 0), Dir: v2(0, 1)},
			line: vertical,
		},
		{
			name:   "origin on line",
			ray:    Ray[f64]{Origin: v2(5, 3), Dir: v2(1, 1)},
			line:   vertical,
			want:   Hit[f64]{Point: v2(5, 3), Param: 0},
			wantOK: true,
		},
		{
			name:   "unnormalized direction",
			ray:    Ray[f64]{Origin: v2(1, 1), Dir: v2(0, -2)},
			line:   Line[f64]{A: 0, B: 1, C: 3},
			want:   Hit[f64]{Point: v2(1, -3), Param: 2},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RayLine(tt.ray, tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("hit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRaySegment(t *testing.T) {
	up := Ray[f64]{Origin: v2(0, -1), Dir: v2(0, 1)}

	tests := []struct {
		name   string
		ray    Ray[f64]
		p0, p1 vecmath.Vec2[f64]
		want   vecmath.Vec2[f64]
		wantOK bool
	}{
		{"crosses middle", up, v2(-1, 0), v2(1, 0), v2(0, 0), true},
		{"beside segment", up, v2(1, 0), v2(2, 0), vecmath.Vec2[f64]{}, false},
		{"endpoint", up, v2(0, 0), v2(3, 0), v2(0, 0), true},
		{"zero length", up, v2(0, 0), v2(0, 0), vecmath.Vec2[f64]{}, false},
		{"segment behind", up, v2(-1, -2), v2(1, -2), vecmath.Vec2[f64]{}, false},
		{
			"vertical segment",
			Ray[f64]{Origin: v2(-2, 0.5), Dir: v2(1, 0)},
			v2(1, 0), v2(1, 1),
			v2(1, 0.5), true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RaySegment(tt.ray, tt.p0, tt.p1)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got.Point); diff != "" {
				t.Errorf("point mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClosestPoint(t *testing.T) {
	tests := []struct {
		name string
		p    vecmath.Vec2[f64]
		line Line[f64]
		want vecmath.Vec2[f64]
	}{
		{"vertical", v2(2, 7), Line[f64]{A: 1, B: 0, C: -5}, v2(5, 7)},
		{"horizontal", v2(-3, 4), Line[f64]{A: 0, B: 2, C: 2}, v2(-3, -1)},
		{"diagonal", v2(2, 0), Line[f64]{A: 1, B: -1, C: 0}, v2(1, 1)},
		{"degenerate", v2(9, 9), Line[f64]{A: 0, B: 0, C: 3}, v2(9, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClosestPoint(tt.p, tt.line); got != tt.want {
				t.Errorf("ClosestPoint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	l := Line[f64]{A: 3, B: 4, C: -10}
	if got := Distance(v2(0, 0), l); got != 2 {
		t.Errorf("Distance from origin = %v, want 2", got)
	}
	if got := Distance(v2(6, 8), l); got != 8 {
		t.Errorf("Distance = %v, want 8", got)
	}
	if got := Distance(v2(2, 1), l); got != 0 {
		t.Errorf("Distance on line = %v, want 0", got)
	}
}

func TestQueriesFixedPoint(t *testing.T) {
	q := func(f float64) scalar.Q16 { return scalar.FromFloat[scalar.Q16](f) }
	ray := Ray[scalar.Q16]{Origin: vecmath.V2(q(0), q(0)), Dir: vecmath.V2(q(1), q(0))}
	hit, ok := RayLine(ray, Line[scalar.Q16]{A: q(1), B: q(0), C: q(-5)})
	if !ok || hit.Param != q(5) || hit.Point != vecmath.V2(q(5), q(0)) {
		t.Errorf("RayLine = %+v, %v", hit, ok)
	}

	seg, ok := RaySegment(
		Ray[scalar.Q16]{Origin: vecmath.V2(q(0), q(-1)), Dir: vecmath.V2(q(0), q(1))},
		vecmath.V2(q(-1), q(0)), vecmath.V2(q(1), q(0)),
	)
	if !ok || seg.Point != vecmath.V2(q(0), q(0)) {
		t.Errorf("RaySegment = %+v, %v", seg, ok)
	}
}

func TestLineThrough(t *testing.T) {
	l, ok := LineThrough(v2(0, 1), v2(2, 3))
	if !ok {
		t.Fatal("LineThrough failed")
	}
	for _, p := range []vecmath.Vec2[f64]{v2(0, 1), v2(2, 3), v2(-1, 0)} {
		if got := l.Eval(p); got != 0 {
			t.Errorf("Eval(%v) = %v, want 0", p, got)
		}
	}
	if _, ok := LineThrough(v2(1, 1), v2(1, 1)); ok {
		t.Error("LineThrough accepted coincident points")
	}
}
