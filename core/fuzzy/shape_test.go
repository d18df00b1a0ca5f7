package fuzzy_test

import (
	"errors"
	"math"
	"testing"

	"example.com/fuzzy-control/core/fuzzy"
)

func TestNewTriangular(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		wantErr bool
	}{
		{name: "Ordered points", a: 0, b: 5, c: 10},
		{name: "Left shoulder", a: 0, b: 0, c: 3},
		{name: "Right shoulder", a: 7, b: 10, c: 10},
		{name: "Peak before rise", a: 5, b: 0, c: 10, wantErr: true},
		{name: "Fall before peak", a: 0, b: 10, c: 5, wantErr: true},
		{name: "Empty support", a: 5, b: 5, c: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fuzzy.NewTriangular(tt.a, tt.b, tt.c)
			if tt.wantErr && err == nil {
				t.Errorf("NewTriangular(%v, %v, %v) succeeded, want error", tt.a, tt.b, tt.c)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewTriangular(%v, %v, %v) failed: %v", tt.a, tt.b, tt.c, err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, fuzzy.ErrInvalidShape) {
				t.Errorf("error %v does not wrap ErrInvalidShape", err)
			}
		})
	}
}

func TestNewTrapezoidal(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d float64
		wantErr    bool
	}{
		{name: "Ordered points", a: 0, b: 2, c: 8, d: 10},
		{name: "Left shoulder", a: 0, b: 0, c: 200, d: 400},
		{name: "Right shoulder", a: 600, b: 1000, c: 1500, d: 1500},
		{name: "Spike at upper bound", a: 40, b: 60, c: 60, d: 60},
		{name: "Unordered top", a: 0, b: 8, c: 2, d: 10, wantErr: true},
		{name: "Unordered fall", a: 0, b: 2, c: 10, d: 8, wantErr: true},
		{name: "Empty support", a: 3, b: 3, c: 3, d: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fuzzy.NewTrapezoidal(tt.a, tt.b, tt.c, tt.d)
			if tt.wantErr && err == nil {
				t.Errorf("NewTrapezoidal(%v, %v, %v, %v) succeeded, want error", tt.a, tt.b, tt.c, tt.d)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewTrapezoidal(%v, %v, %v, %v) failed: %v", tt.a, tt.b, tt.c, tt.d, err)
			}
		})
	}
}

func TestTriangularEvaluate(t *testing.T) {
	tri, err := fuzzy.NewTriangular(-5, 22, 30)
	if err != nil {
		t.Fatalf("NewTriangular failed: %v", err)
	}

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "Far left", x: -100, want: 0.0},
		{name: "At left edge", x: -5, want: 0.0},
		{name: "Halfway up", x: 8.5, want: 0.5},
		{name: "At peak", x: 22, want: 1.0},
		{name: "Halfway down", x: 26, want: 0.5},
		{name: "At right edge", x: 30, want: 0.0},
		{name: "Far right", x: 100, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tri.Evaluate(tt.x)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestTriangularShoulder(t *testing.T) {
	// a == b holds degree 1 at the shared point.
	tri, err := fuzzy.NewTriangular(0, 0, 3)
	if err != nil {
		t.Fatalf("NewTriangular failed: %v", err)
	}
	if got := tri.Evaluate(0); got != 1.0 {
		t.Errorf("Evaluate(0) = %v, want 1.0", got)
	}
	if got := tri.Evaluate(-0.001); got != 0.0 {
		t.Errorf("Evaluate(-0.001) = %v, want 0.0", got)
	}
	if got := tri.Evaluate(1.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Evaluate(1.5) = %v, want 0.5", got)
	}
}

func TestTrapezoidalEvaluate(t *testing.T) {
	trap, err := fuzzy.NewTrapezoidal(-18, -18, -10, 0)
	if err != nil {
		t.Fatalf("NewTrapezoidal failed: %v", err)
	}

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "Below support", x: -20, want: 0.0},
		{name: "At left shoulder", x: -18, want: 1.0},
		{name: "On flat top", x: -14, want: 1.0},
		{name: "End of flat top", x: -10, want: 1.0},
		{name: "Halfway down", x: -5, want: 0.5},
		{name: "At right edge", x: 0, want: 0.0},
		{name: "Above support", x: 10, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trap.Evaluate(tt.x)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestTrapezoidalSpikeTop(t *testing.T) {
	// b == c == d: rise to a single point at full membership.
	trap, err := fuzzy.NewTrapezoidal(40, 60, 60, 60)
	if err != nil {
		t.Fatalf("NewTrapezoidal failed: %v", err)
	}
	if got := trap.Evaluate(60); got != 1.0 {
		t.Errorf("Evaluate(60) = %v, want 1.0", got)
	}
	if got := trap.Evaluate(50); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Evaluate(50) = %v, want 0.5", got)
	}
	if got := trap.Evaluate(60.001); got != 0.0 {
		t.Errorf("Evaluate(60.001) = %v, want 0.0", got)
	}
}

// Membership curves must be continuous: approaching a control point from
// either side converges to the value at the point.
func TestShapeContinuity(t *testing.T) {
	tri, _ := fuzzy.NewTriangular(2, 5, 8)
	trap, _ := fuzzy.NewTrapezoidal(0, 4, 10, 10)

	shapes := []struct {
		name   string
		f      fuzzy.MembershipFunc
		points []float64
	}{
		{name: "Triangular", f: tri, points: []float64{2, 5, 8}},
		{name: "Trapezoidal", f: trap, points: []float64{0, 4, 10}},
	}

	const h = 1e-9
	const tol = 1e-6
	for _, s := range shapes {
		t.Run(s.name, func(t *testing.T) {
			for _, p := range s.points {
				at := s.f.Evaluate(p)
				left := s.f.Evaluate(p - h)
				right := s.f.Evaluate(p + h)
				if math.Abs(at-left) > tol && math.Abs(at-right) > tol {
					t.Errorf("discontinuity at %v: left=%v at=%v right=%v", p, left, at, right)
				}
			}
		})
	}
}

func TestSample(t *testing.T) {
	dom, err := fuzzy.NewDomain(0, 10, 1)
	if err != nil {
		t.Fatalf("NewDomain failed: %v", err)
	}
	tri, err := fuzzy.NewTriangular(0, 5, 10)
	if err != nil {
		t.Fatalf("NewTriangular failed: %v", err)
	}
	ys := fuzzy.Sample(tri, dom)
	if len(ys) != dom.Len() {
		t.Fatalf("Sample returned %d values, want %d", len(ys), dom.Len())
	}
	for i, y := range ys {
		x := dom.Sample(i)
		if want := tri.Evaluate(x); y != want {
			t.Errorf("Sample[%d] = %v, want %v", i, y, want)
		}
		if y < 0 || y > 1 {
			t.Errorf("Sample[%d] = %v outside [0, 1]", i, y)
		}
	}
	if ys[5] != 1.0 {
		t.Errorf("expected peak 1.0 at grid index 5, got %v", ys[5])
	}
}
