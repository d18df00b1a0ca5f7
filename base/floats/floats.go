package floats

func Midpoint(x, y float64) float64 {
	return x + (y-x)/2.0
}

func Clamp(x, lo, hi float64) float64 {
	if !(lo <= hi) {
		panic("unexpected bounds")
	}
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	default:
		return x
	}
}

func Mean(fs []float64) float64 {
	n := len(fs)
	if n == 0 {
		panic("unexpected number of values")
	}
	s := 0.0
	for _, f := range fs {
		s += f
	}
	return s / float64(n)
}
