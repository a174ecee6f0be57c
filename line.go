package bubble

// Line represents a line segment, typically one segment of a chain.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Normal returns the unit normal pointing to the right of the direction
// P0→P1, or the zero vector for a degenerate line.
func (l Line) Normal() Vec2 {
	d := l.P1.Sub(l.P0)
	h := d.Hypot()
	if h == 0 {
		return Vec2{}
	}
	return Vec2{X: d.Y / h, Y: -d.X / h}
}
