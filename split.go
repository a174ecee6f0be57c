package bubble

import (
	"fmt"
	"math"
	"slices"
)

// SplitVertex separates a node with more than three chain ends into triple
// points. At each step the two chain ends leaving v at the smallest angle
// to each other move to a new node, which is joined to v by a new short
// chain bordering the regions needed to keep every boundary closed. Nodes
// with three or fewer chain ends are left alone. If any step fails, the
// cluster is left as it was.
func (c *Cluster) SplitVertex(v *Vertex) error {
	if v.removed {
		return fmt.Errorf("split %s: %w", v, ErrNotFound)
	}
	if len(v.chains) <= 3 {
		return nil
	}
	cp := c.checkpoint()
	for len(v.chains) > 3 {
		if err := c.splitOnce(v); err != nil {
			c.restore(cp)
			return err
		}
	}
	return nil
}

type angledEnd struct {
	SignedChain
	angle float64
}

// closestEnds returns the two chain ends at v that are separated by the
// smallest counterclockwise angle, and the direction bisecting them. Ties
// are broken in favor of the pair with the smaller angle.
func closestEnds(v *Vertex) (a, b SignedChain, bisector float64) {
	ends := make([]angledEnd, len(v.chains))
	for i, sc := range v.chains {
		th := sc.Elem.angleAt(sc.Sign)
		if th < 0 {
			th += 2 * math.Pi
		}
		ends[i] = angledEnd{sc, th}
	}
	slices.SortStableFunc(ends, func(x, y angledEnd) int {
		switch {
		case x.angle < y.angle:
			return -1
		case x.angle > y.angle:
			return 1
		default:
			return 0
		}
	})

	const eps = 1e-9
	best, gap := 0, math.Inf(1)
	for i := range ends {
		next := ends[(i+1)%len(ends)].angle
		if i == len(ends)-1 {
			next += 2 * math.Pi
		}
		if g := next - ends[i].angle; g < gap-eps {
			best, gap = i, g
		}
	}
	a = ends[best].SignedChain
	b = ends[(best+1)%len(ends)].SignedChain
	return a, b, ends[best].angle + gap/2
}

// flow returns, for every region bordering one of the given chain ends, the
// sum of σ·ρ over those ends, where σ is the end's incidence sign and ρ the
// side of the region. A region's boundary leaves the node along an end with
// σ·ρ = +1 and enters it along an end with σ·ρ = −1.
func flow(ends ...SignedChain) []SignedRegion {
	var out []SignedRegion
	for _, e := range ends {
		for _, sr := range e.Elem.regions {
			out, _ = signedAdd(out, e.Sign*sr.Sign, sr.Elem)
		}
	}
	return out
}

// validRegions reports whether rs can be the region set of a single chain.
func validRegions(rs []SignedRegion) bool {
	for _, sr := range rs {
		if sr.Sign < -1 || sr.Sign > 1 {
			return false
		}
	}
	switch len(rs) {
	case 0, 1:
		return true
	case 2:
		return rs[0].Sign != rs[1].Sign
	default:
		return false
	}
}

func (c *Cluster) splitOnce(v *Vertex) error {
	a, b, bisector := closestEnds(v)

	// The link runs from v to the new node w, where it ends (σ = −1). For
	// the regions at w to stay closed, the link must carry the flow of the
	// moved ends.
	links := flow(a, b)
	if !validRegions(links) {
		return fmt.Errorf("split %s: link chain would border %v: %w", v, links, ErrInvalidTopology)
	}

	na := a.Elem.neighbor(a.Sign)
	nb := b.Elem.neighbor(b.Sign)
	offset := na.Midpoint(nb.Point).Sub(v.Point).Div(3)
	if offset.Hypot() < 1e-3*c.opts.DS {
		offset = VecFromAngle(bisector).Mul(c.opts.DS / 3)
	}

	w := c.newNode(v.Translate(offset))
	a.Elem.setEndpoint(a.Sign, w)
	b.Elem.setEndpoint(b.Sign, w)
	link := newChain([]*Vertex{v, w})
	c.addChain(link)
	for _, sr := range links {
		sr.Elem.addChain(sr.Sign, link)
	}
	return nil
}
