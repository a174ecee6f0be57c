package bubble

import "iter"

// Rect is an axis-aligned rectangle, used for bounding boxes of clusters.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// BoundingBox returns the smallest rectangle enclosing all points of seq. It
// returns false if seq yields no points.
func BoundingBox(seq iter.Seq[Point]) (Rect, bool) {
	var r Rect
	first := true
	for pt := range seq {
		if first {
			r = Rect{pt.X, pt.Y, pt.X, pt.Y}
			first = false
			continue
		}
		r = r.UnionPoint(pt)
	}
	return r, !first
}

func (r Rect) MinX() float64 { return min(r.X0, r.X1) }
func (r Rect) MinY() float64 { return min(r.Y0, r.Y1) }

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// Union returns the smallest rectangle enclosing r and o.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles.
// Thus, a succession of UnionPoint operations on a series of
// points yields their enclosing rectangle.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}
