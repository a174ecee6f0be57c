package bubble

import (
	"fmt"
	"iter"
	"slices"
)

// Chain is an oriented polyline joining two nodes. It is the unit of
// boundary geometry: regions are bounded by signed chains.
type Chain struct {
	id       int
	vertices []*Vertex
	regions  []SignedRegion
	removed  bool
}

// newChain returns a chain through vertices and records the chain at its
// endpoints. It panics if fewer than two vertices are given.
func newChain(vertices []*Vertex) *Chain {
	if len(vertices) < 2 {
		panic("bubble: chain needs at least two vertices")
	}
	ch := &Chain{vertices: vertices}
	ch.Start().chains = append(ch.Start().chains, SignedChain{1, ch})
	ch.End().chains = append(ch.End().chains, SignedChain{-1, ch})
	return ch
}

// ID returns the identifier assigned when the chain was added to a cluster.
func (ch *Chain) ID() int { return ch.id }

// Vertices returns the chain's vertices from start to end.
func (ch *Chain) Vertices() []*Vertex { return slices.Clone(ch.vertices) }

// Points yields the positions of the chain's vertices from start to end.
func (ch *Chain) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, v := range ch.vertices {
			if !yield(v.Point) {
				return
			}
		}
	}
}

// Segments yields the chain's segments from start to end.
func (ch *Chain) Segments() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i := 1; i < len(ch.vertices); i++ {
			if !yield(Line{ch.vertices[i-1].Point, ch.vertices[i].Point}) {
				return
			}
		}
	}
}

// Len returns the number of segments of the chain.
func (ch *Chain) Len() int { return len(ch.vertices) - 1 }

func (ch *Chain) Start() *Vertex { return ch.vertices[0] }
func (ch *Chain) End() *Vertex   { return ch.vertices[len(ch.vertices)-1] }

// Node returns the vertex reached when traversing the chain in direction
// sign: the end for sign > 0, the start otherwise.
func (ch *Chain) Node(sign int) *Vertex {
	if sign > 0 {
		return ch.End()
	}
	return ch.Start()
}

// IsLoop reports whether the chain starts and ends at the same vertex.
func (ch *Chain) IsLoop() bool { return ch.Start() == ch.End() }

// Removed reports whether the chain has been removed from its cluster.
func (ch *Chain) Removed() bool { return ch.removed }

// endpoint returns the endpoint with incidence sign σ: the start for +1.
func (ch *Chain) endpoint(sigma int) *Vertex { return ch.Node(-sigma) }

// neighbor returns the vertex next to the endpoint with incidence sign σ.
func (ch *Chain) neighbor(sigma int) *Vertex {
	if sigma > 0 {
		return ch.vertices[1]
	}
	return ch.vertices[len(ch.vertices)-2]
}

// angleAt returns the direction, in radians, in which the chain leaves its
// endpoint with incidence sign σ.
func (ch *Chain) angleAt(sigma int) float64 {
	return ch.neighbor(sigma).Sub(ch.endpoint(sigma).Point).Angle()
}

// setEndpoint replaces the endpoint with incidence sign σ by v, keeping the
// incidence lists of both vertices up to date.
func (ch *Chain) setEndpoint(sigma int, v *Vertex) {
	old := ch.endpoint(sigma)
	old.chains = signedRemove(old.chains, sigma, ch)
	if sigma > 0 {
		ch.vertices[0] = v
	} else {
		ch.vertices[len(ch.vertices)-1] = v
	}
	v.chains = append(v.chains, SignedChain{sigma, ch})
}

// Area returns the signed area contribution of the chain, ½Σ(yᵢ+yᵢ₊₁)(xᵢ−xᵢ₊₁).
// It is additive: the sum over a closed cycle of chains is the area the
// cycle encloses, positive when counterclockwise.
func (ch *Chain) Area() float64 {
	var area2 float64
	for i := 1; i < len(ch.vertices); i++ {
		v := ch.vertices[i-1]
		w := ch.vertices[i]
		area2 += (v.Y + w.Y) * (v.X - w.X)
	}
	return 0.5 * area2
}

// Length returns the sum of the segment lengths.
func (ch *Chain) Length() float64 {
	var l float64
	for i := 1; i < len(ch.vertices); i++ {
		l += ch.vertices[i-1].Distance(ch.vertices[i].Point)
	}
	return l
}

// SignedRegions returns the regions bordering the chain.
func (ch *Chain) SignedRegions() []SignedRegion { return slices.Clone(ch.regions) }

// Region returns the region on the chain's left (sign > 0) or right
// (sign < 0) side, or nil if that side borders the exterior.
func (ch *Chain) Region(sign int) (*Region, error) {
	switch len(ch.regions) {
	case 0:
		return nil, nil
	case 1:
		if ch.regions[0].Sign*sign > 0 {
			return ch.regions[0].Elem, nil
		}
		return nil, nil
	case 2:
		r0, r1 := ch.regions[0], ch.regions[1]
		if r0.Sign*r1.Sign >= 0 {
			return nil, fmt.Errorf("chain %d has two regions on the same side: %w", ch.id, ErrInvalidTopology)
		}
		if r0.Sign*sign > 0 {
			return r0.Elem, nil
		}
		return r1.Elem, nil
	default:
		return nil, fmt.Errorf("chain %d borders %d regions: %w", ch.id, len(ch.regions), ErrInvalidTopology)
	}
}

// rayCrossings counts the crossings of the upward vertical ray from p with
// the chain. degenerate is set when the ray passes through a vertex, and
// onBoundary when p lies on the chain.
func (ch *Chain) rayCrossings(p Point) (count int, onBoundary, degenerate bool) {
	for i := 1; i < len(ch.vertices); i++ {
		k := ch.vertices[i-1]
		j := ch.vertices[i]
		if j.X < p.X && k.X < p.X {
			continue
		}
		if j.X > p.X && k.X > p.X {
			continue
		}
		if j.X == p.X || k.X == p.X {
			return 0, false, true
		}
		y0 := j.Y + (p.X-j.X)*(k.Y-j.Y)/(k.X-j.X)
		if y0 == p.Y {
			return 0, true, false
		}
		if y0 > p.Y {
			count++
		}
	}
	return count, false, false
}

func (ch *Chain) String() string {
	return fmt.Sprintf("Chain(%d)", ch.id)
}
