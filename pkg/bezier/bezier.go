// Package bezier evaluates Bezier curves of any degree.
package bezier

import (
	"math"
)

// DefaultSteps is the rendering resolution used by the editor (t step of 0.01).
const DefaultSteps = 100

// Sample evaluates the curve defined by points at t using de Casteljau's algorithm.
// points must not be empty.
func Sample(points []Point, t float64) Point {
	if len(points) == 0 {
		panic("bezier: Sample called with no control points")
	}

	// the end points are exact, a lerp at t=1 may be off by one ulp
	switch t {
	case 0:
		return points[0]
	case 1:
		return points[len(points)-1]
	}

	// 1.0: work on a copy, the caller's points stay untouched
	xs := make([]Point, len(points))
	copy(xs, points)

	// 1.1: collapse adjacent pairs until one point is left
	for n := len(xs); n > 1; n-- {
		for i := 0; i < n-1; i++ {
			xs[i] = xs[i].Lerp(xs[i+1], t)
		}
	}

	return xs[0]
}

// Params returns steps+1 parameter values going from 0 to exactly 1.
func Params(steps int) []float64 {
	if steps < 1 {
		steps = 1
	}

	result := make([]float64, steps+1)
	for i := range result {
		result[i] = float64(i) / float64(steps)
	}

	// never overshoot the end of the curve
	result[steps] = 1

	return result
}

// Polyline approximates the curve with steps straight segments.
// The result has steps+1 points; the first is points[0] and the last is points[len(points)-1].
func Polyline(points []Point, steps int) []Point {
	params := Params(steps)
	result := make([]Point, len(params))
	for i, t := range params {
		result[i] = Sample(points, t)
	}

	return result
}

func factorial(n int) float64 {
	if n <= 1 {
		return 1
	}

	return float64(n) * factorial(n-1)
}

// Bernstein evaluates the curve at t using the explicit Bernstein polynomial form.
// It is numerically worse than Sample for high degrees and is kept as an
// independent reference to check Sample against.
// refer: http://zobaczycmatematyke.krk.pl/025-Zolkos-Krakow/bezier.html
func Bernstein(points []Point, t float64) Point {
	var result Point

	n := len(points) - 1
	for i := 0; i <= n; i++ {
		d := factorial(n) / (factorial(i) * factorial(n-i)) *
			math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
		result = result.Add(points[i].Mul(d))
	}

	return result
}
