package fuzzy

import (
	"fmt"
)

// A MembershipFunc maps a crisp value to a degree of membership in [0, 1].
// Implementations must be pure and total over all reals.
type MembershipFunc interface {
	Evaluate(x float64) float64
	// Support returns the closed interval outside of which Evaluate is 0.
	Support() (lo, hi float64)
}

// Triangular is the three-point shape with a linear rise a→b, peak 1 at b,
// and linear fall b→c. Zero-width flanks (a == b or b == c) give a shoulder
// that holds degree 1 at the shared point.
type Triangular struct {
	a, b, c float64
}

func NewTriangular(a, b, c float64) (Triangular, error) {
	if !(a <= b && b <= c) {
		return Triangular{}, fmt.Errorf("%w: triangular points must satisfy a <= b <= c, got (%v, %v, %v)",
			ErrInvalidShape, a, b, c)
	}
	if a == c {
		return Triangular{}, fmt.Errorf("%w: triangular support (%v, %v) is empty", ErrInvalidShape, a, c)
	}
	return Triangular{a: a, b: b, c: c}, nil
}

func (t Triangular) Evaluate(x float64) float64 {
	switch {
	case x < t.a || x > t.c:
		return 0.0
	case x == t.b:
		return 1.0
	case x < t.b:
		return (x - t.a) / (t.b - t.a)
	default:
		return (t.c - x) / (t.c - t.b)
	}
}

func (t Triangular) Support() (float64, float64) { return t.a, t.c }

func (t Triangular) Peak() float64 { return t.b }

// Trapezoidal is the four-point shape with a linear rise a→b, a flat top at
// 1 on [b, c], and a linear fall c→d.
type Trapezoidal struct {
	a, b, c, d float64
}

func NewTrapezoidal(a, b, c, d float64) (Trapezoidal, error) {
	if !(a <= b && b <= c && c <= d) {
		return Trapezoidal{}, fmt.Errorf("%w: trapezoidal points must satisfy a <= b <= c <= d, got (%v, %v, %v, %v)",
			ErrInvalidShape, a, b, c, d)
	}
	if a == d {
		return Trapezoidal{}, fmt.Errorf("%w: trapezoidal support (%v, %v) is empty", ErrInvalidShape, a, d)
	}
	return Trapezoidal{a: a, b: b, c: c, d: d}, nil
}

func (t Trapezoidal) Evaluate(x float64) float64 {
	switch {
	case x < t.a || x > t.d:
		return 0.0
	case x >= t.b && x <= t.c:
		return 1.0
	case x < t.b:
		return (x - t.a) / (t.b - t.a)
	default:
		return (t.d - x) / (t.d - t.c)
	}
}

func (t Trapezoidal) Support() (float64, float64) { return t.a, t.d }

// Sample evaluates f at every point of the domain grid.
func Sample(f MembershipFunc, d Domain) []float64 {
	ys := make([]float64, d.Len())
	for i := range ys {
		ys[i] = f.Evaluate(d.Sample(i))
	}
	return ys
}
