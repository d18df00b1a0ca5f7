package inference

import (
	"example.com/fuzzy-control/base/floats"
	"example.com/fuzzy-control/core/fuzzy"
)

// A Defuzzifier reduces an aggregated membership curve over a domain grid to
// one crisp value. It reports false when the curve carries no mass.
type Defuzzifier interface {
	Defuzzify(dom fuzzy.Domain, curve []float64) (float64, bool)
}

// Centroid is the default defuzzifier: the weighted mean of the grid samples
// under the aggregated curve.
type Centroid struct{}

func (Centroid) Defuzzify(dom fuzzy.Domain, curve []float64) (float64, bool) {
	if len(curve) != dom.Len() {
		panic("unexpected curve length")
	}
	num, den := 0.0, 0.0
	for i, m := range curve {
		num += dom.Sample(i) * m
		den += m
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// Bisector picks the point splitting the curve's mass in half, accurate to
// half a grid step.
type Bisector struct{}

func (Bisector) Defuzzify(dom fuzzy.Domain, curve []float64) (float64, bool) {
	if len(curve) != dom.Len() {
		panic("unexpected curve length")
	}
	total := 0.0
	for _, m := range curve {
		total += m
	}
	if total == 0 {
		return 0, false
	}
	half := total / 2
	cum := 0.0
	for i, m := range curve {
		cum += m
		if cum >= half {
			if i == 0 {
				return dom.Sample(0), true
			}
			return floats.Midpoint(dom.Sample(i-1), dom.Sample(i)), true
		}
	}
	return dom.Sample(dom.Len() - 1), true
}

// MeanOfMax averages the grid samples at which the curve attains its
// maximum.
type MeanOfMax struct{}

func (MeanOfMax) Defuzzify(dom fuzzy.Domain, curve []float64) (float64, bool) {
	if len(curve) != dom.Len() {
		panic("unexpected curve length")
	}
	peak := 0.0
	for _, m := range curve {
		if m > peak {
			peak = m
		}
	}
	if peak == 0 {
		return 0, false
	}
	const tol = 1e-12
	var maxima []float64
	for i, m := range curve {
		if peak-m <= tol {
			maxima = append(maxima, dom.Sample(i))
		}
	}
	return floats.Mean(maxima), true
}
