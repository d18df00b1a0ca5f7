package fuzzy

import (
	"fmt"
	"math"
)

// A Domain is the discretization grid of a bounded interval [lo, hi] at a
// fixed step. All membership sampling and defuzzification for a variable run
// over this grid.
type Domain struct {
	lo, hi, step float64
	n            int
}

func NewDomain(lo, hi, step float64) (Domain, error) {
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return Domain{}, fmt.Errorf("%w: bounds must be finite", ErrInvalidDomain)
	}
	if !(lo < hi) {
		return Domain{}, fmt.Errorf("%w: lo (%v) must be less than hi (%v)", ErrInvalidDomain, lo, hi)
	}
	if !(step > 0) {
		return Domain{}, fmt.Errorf("%w: step (%v) must be positive", ErrInvalidDomain, step)
	}
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	if n < 2 {
		return Domain{}, fmt.Errorf("%w: fewer than 2 sample points", ErrInvalidDomain)
	}
	return Domain{lo: lo, hi: hi, step: step, n: n}, nil
}

func (d Domain) Lo() float64   { return d.lo }
func (d Domain) Hi() float64   { return d.hi }
func (d Domain) Step() float64 { return d.step }
func (d Domain) Len() int      { return d.n }

func (d Domain) Sample(i int) float64 {
	if i < 0 || i >= d.n {
		panic("sample index out of range")
	}
	return d.lo + float64(i)*d.step
}

func (d Domain) Samples() []float64 {
	xs := make([]float64, d.n)
	for i := range xs {
		xs[i] = d.lo + float64(i)*d.step
	}
	return xs
}
