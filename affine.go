package bubble

import (
	"fmt"
	"math"
)

// Affine is an affine map of the plane. The coefficients (a, b, c, d, e, f)
// stand for the augmented matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// so that p.Transform(A.Mul(B)) == p.Transform(B).Transform(A).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Scale returns a transform scaling x and y independently.
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate returns a transform moving every point by v.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate returns a counterclockwise rotation by th radians about the origin.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// Mul returns the transform applying o first, then aff.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenScale returns aff followed by a scaling.
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenTranslate returns aff followed by a translation by v.
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// Determinant returns the factor by which aff scales areas. It is negative
// for transforms that reverse orientation.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// Transform maps every vertex of the cluster through aff and scales the
// area targets by its determinant. Transforms that reverse orientation
// would put every region on the wrong side of its chains and are rejected
// with [ErrDegenerateGeometry], as are singular ones.
func (c *Cluster) Transform(aff Affine) error {
	det := aff.Determinant()
	if !(det > 0) || math.IsInf(det, 0) {
		return fmt.Errorf("transform with determinant %g: %w", det, ErrDegenerateGeometry)
	}
	c.transform(aff)
	for _, r := range c.regions {
		r.target *= det
		r.smoothTarget *= det
		r.smoothVel *= det
	}
	return nil
}

func (c *Cluster) transform(aff Affine) {
	for v := range c.Vertices() {
		v.Point = v.Transform(aff)
	}
}
