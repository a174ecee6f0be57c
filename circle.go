package bubble

import "math"

type Circle struct {
	Center Point
	Radius float64
}

func (c Circle) Contains(pt Point) bool {
	return pt.Sub(c.Center).Hypot2() < c.Radius*c.Radius
}

func (c Circle) Perimeter() float64 {
	return math.Abs(2 * math.Pi * c.Radius)
}

// Polygon returns n points evenly spaced counterclockwise on the circle,
// starting at angle 0. The polygon is open: the first point is not repeated.
func (c Circle) Polygon(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		th := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = c.Center.Translate(VecFromAngle(th).Mul(c.Radius))
	}
	return pts
}

// Segments returns the number of polygon vertices needed to approximate the
// circle with segments no longer than ds. It is at least 3.
func (c Circle) Segments(ds float64) int {
	n := int(math.Ceil(c.Perimeter() / ds))
	return max(n, 3)
}
