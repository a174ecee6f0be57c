package bubble

import "fmt"

// PinchVertices merges b into a. Every chain ending at b is reattached to
// a, which moves to the midpoint of the two and stays pinned if either of
// them was. b is removed from the cluster.
func (c *Cluster) PinchVertices(a, b *Vertex) error {
	if a.removed || b.removed {
		return fmt.Errorf("pinch %s and %s: %w", a, b, ErrNotFound)
	}
	if a == b {
		return nil
	}
	switch {
	case a.Pinned:
	case b.Pinned:
		a.Point = b.Point
		a.Pinned = true
	default:
		a.Point = a.Midpoint(b.Point)
	}
	c.pinch(a, b)
	return nil
}

// pinch reattaches every chain end at b to a and removes b, leaving a
// where it is.
func (c *Cluster) pinch(a, b *Vertex) {
	if a == b {
		return
	}
	for _, sc := range b.chains {
		vs := sc.Elem.vertices
		if sc.Sign > 0 {
			vs[0] = a
		} else {
			vs[len(vs)-1] = a
		}
		a.chains = append(a.chains, sc)
	}
	b.chains = nil
	b.removed = true
	c.removeNode(b)
	if !a.node {
		c.addNode(a)
	}
}

// CollapseChain shrinks ch to a point. The endpoints of an open chain are
// pinched together and the chain is removed; the other chains at either
// endpoint keep their regions. A closed chain is simply removed, together
// with any region left without a boundary.
func (c *Cluster) CollapseChain(ch *Chain) error {
	if ch.removed {
		return fmt.Errorf("collapse %s: %w", ch, ErrNotFound)
	}
	if ch.IsLoop() {
		c.removeChain(ch)
		c.SimplifyVertices()
		return nil
	}
	a, b := ch.Start(), ch.End()
	c.removeChain(ch)
	for _, v := range ch.vertices[1 : len(ch.vertices)-1] {
		v.removed = true
	}
	return c.PinchVertices(a, b)
}
