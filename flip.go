package bubble

import (
	"fmt"
	"slices"
)

// FlipChain replaces the two regions bordering ch by the two regions
// adjacent to it across its endpoints. The flipped chain is a segment of
// length at most ds, perpendicular to the old chord through its midpoint;
// the neighbors on its left side are moved to its new start. The chains
// meeting the old endpoints keep their shape and are extended to the new
// ones, so a flip away from the outer boundary leaves the total area
// unchanged.
//
// If either endpoint joins fewer than three chain ends, FlipChain does
// nothing. A chain that ends up bordering no region is removed.
func (c *Cluster) FlipChain(ch *Chain) error {
	if ch.removed {
		return fmt.Errorf("flip %s: %w", ch, ErrNotFound)
	}
	if ch.IsLoop() {
		return fmt.Errorf("flip %s: chain is closed: %w", ch, ErrInvalidTopology)
	}
	a, b := ch.Start(), ch.End()
	if len(a.chains) < 3 || len(b.chains) < 3 {
		return nil
	}
	if len(ch.regions) == 0 {
		return fmt.Errorf("flip %s: chain borders no region: %w", ch, ErrInvalidTopology)
	}

	c.materializeExternal()
	defer c.dropExternal()

	north, err := ch.Region(1)
	if err != nil {
		return fmt.Errorf("flip %s: %w", ch, err)
	}
	south, err := ch.Region(-1)
	if err != nil {
		return fmt.Errorf("flip %s: %w", ch, err)
	}
	if north == nil || south == nil {
		return fmt.Errorf("flip %s: chain borders %d regions: %w", ch, len(ch.regions), ErrInvalidTopology)
	}

	// The boundary of the northern region enters a along aN and leaves b
	// along bN.
	aN, ok := endAlong(a, ch, north, -1)
	if !ok {
		return fmt.Errorf("flip %s: %s does not enter %s: %w", ch, north, a, ErrInvalidTopology)
	}
	bN, ok := endAlong(b, ch, north, 1)
	if !ok {
		return fmt.Errorf("flip %s: %s does not leave %s: %w", ch, north, b, ErrInvalidTopology)
	}

	// The flipped chain starts at the node taking aN and bN, so it must
	// carry the negated flow of those two ends.
	regions := flow(aN, bN)
	for i := range regions {
		regions[i].Sign = -regions[i].Sign
	}
	if !validRegions(regions) {
		return fmt.Errorf("flip %s: flipped chain would border %v: %w", ch, regions, ErrInvalidTopology)
	}

	mid := a.Midpoint(b.Point)
	chord := b.Sub(a.Point)
	l := min(chord.Hypot(), c.opts.DS)
	if l == 0 {
		l = c.opts.DS
		chord = Vec(1, 0)
	}
	half := chord.Turn90().Normalize().Mul(l / 2)

	c.keepEnds(a, ch)
	c.keepEnds(b, ch)
	p := c.newNode(mid.Translate(half))
	aN.Elem.setEndpoint(aN.Sign, p)
	bN.Elem.setEndpoint(bN.Sign, p)
	c.pinch(a, b)
	ch.setEndpoint(1, p)
	a.Point = mid.Translate(half.Negate())
	for _, v := range ch.vertices[1 : len(ch.vertices)-1] {
		v.removed = true
	}
	ch.vertices = []*Vertex{p, a}

	for _, sr := range ch.SignedRegions() {
		sr.Elem.removeChain(ch)
	}
	for _, sr := range regions {
		sr.Elem.addChain(sr.Sign, ch)
	}

	c.dropExternal()
	if len(ch.regions) == 0 {
		c.removeChain(ch)
		c.SimplifyChains()
		c.SimplifyVertices()
	}
	return nil
}

// endAlong returns the chain end at v, other than skip, along which the
// boundary of r leaves v (dir = +1) or enters it (dir = −1).
func endAlong(v *Vertex, skip *Chain, r *Region, dir int) (SignedChain, bool) {
	for _, sc := range v.chains {
		if sc.Elem == skip {
			continue
		}
		if sc.Sign*signedFind(sc.Elem.regions, r) == dir {
			return sc, true
		}
	}
	return SignedChain{}, false
}

// keepEnds inserts a vertex at the position of v next to every end at v of a
// chain other than skip, so that moving v away extends those chains instead
// of reshaping them.
func (c *Cluster) keepEnds(v *Vertex, skip *Chain) {
	for _, sc := range v.chains {
		x := sc.Elem
		if x == skip {
			continue
		}
		w := NewVertex(v.Point)
		c.registerVertex(w)
		if sc.Sign > 0 {
			x.vertices = slices.Insert(x.vertices, 1, w)
		} else {
			x.vertices = slices.Insert(x.vertices, len(x.vertices)-1, w)
		}
	}
}
