package floats_test

import (
	"testing"

	"example.com/fuzzy-control/base/floats"
)

func TestMidpoint(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{name: "Equal values", x: 2.0, y: 2.0, want: 2.0},
		{name: "Ascending", x: 1.0, y: 2.0, want: 1.5},
		{name: "Descending", x: 2.0, y: 1.0, want: 1.5},
		{name: "Negative values", x: -4.0, y: -2.0, want: -3.0},
		{name: "Mixed signs", x: -1.0, y: 1.0, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := floats.Midpoint(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("Midpoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		x, lo, hi float64
		want      float64
		wantPanic bool
	}{
		{name: "Inverted bounds", x: 0.0, lo: 1.0, hi: -1.0, wantPanic: true},
		{name: "Below range", x: -2.0, lo: 0.0, hi: 1.0, want: 0.0},
		{name: "Above range", x: 2.0, lo: 0.0, hi: 1.0, want: 1.0},
		{name: "Within range", x: 0.5, lo: 0.0, hi: 1.0, want: 0.5},
		{name: "At lower bound", x: 0.0, lo: 0.0, hi: 1.0, want: 0.0},
		{name: "At upper bound", x: 1.0, lo: 0.0, hi: 1.0, want: 1.0},
		{name: "Degenerate range", x: 3.0, lo: 2.0, hi: 2.0, want: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("expected panic, got none")
					}
				}()
				_ = floats.Clamp(tt.x, tt.lo, tt.hi)
			} else {
				got := floats.Clamp(tt.x, tt.lo, tt.hi)
				if got != tt.want {
					t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.x, tt.lo, tt.hi, got, tt.want)
				}
			}
		})
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name      string
		input     []float64
		want      float64
		wantPanic bool
	}{
		{name: "Nil slice", input: nil, wantPanic: true},
		{name: "Empty slice", input: []float64{}, wantPanic: true},
		{name: "Single element", input: []float64{42.0}, want: 42.0},
		{name: "Two elements", input: []float64{1.0, 2.0}, want: 1.5},
		{name: "Negative values", input: []float64{-1.0, -2.0, -3.0}, want: -2.0},
		{name: "Mixed signs", input: []float64{-2.0, 0.0, 2.0}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("expected panic, got none")
					}
				}()
				_ = floats.Mean(tt.input)
			} else {
				got := floats.Mean(tt.input)
				if got != tt.want {
					t.Errorf("Mean(%v) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}
