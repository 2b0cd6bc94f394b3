package bezier

import "fmt"

// Point is a 2D coordinate on the canvas.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{x, y}
}

func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

func (p Point) Mul(scalar float64) Point {
	return Point{p.X * scalar, p.Y * scalar}
}

// Lerp linearly interpolates between p (t=0) and other (t=1).
func (p Point) Lerp(other Point, t float64) Point {
	return Point{lerp(p.X, other.X, t), lerp(p.Y, other.Y, t)}
}

// DistanceSquared returns the squared euclidean distance between two points.
func (p Point) DistanceSquared(other Point) float64 {
	dx, dy := p.X-other.X, p.Y-other.Y
	return dx*dx + dy*dy
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
