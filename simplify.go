package bubble

import "slices"

// SimplifyChains merges the two chains meeting at every unpinned node that
// joins exactly two different chains, as long as both border the same
// regions on the same sides. The surviving chain keeps its orientation and
// its vertices; the node becomes one of its interior vertices. Merging is
// repeated until no such node is left.
func (c *Cluster) SimplifyChains() {
	for changed := true; changed; {
		changed = false
		for _, v := range slices.Clone(c.nodes) {
			if v.node && v.removable() && c.mergeAt(v) {
				changed = true
			}
		}
	}
}

// SimplifyVertices removes the unpinned nodes no chain ends at.
func (c *Cluster) SimplifyVertices() {
	for _, v := range slices.Clone(c.nodes) {
		if len(v.chains) == 0 && !v.Pinned {
			c.removeNode(v)
			v.removed = true
		}
	}
}

func (c *Cluster) mergeAt(v *Vertex) bool {
	s1, s2 := v.chains[0], v.chains[1]
	c1, c2 := s1.Elem, s2.Elem

	// rel is +1 if c2 runs in the same direction as c1 through v.
	rel := 1
	if s1.Sign == s2.Sign {
		rel = -1
	}
	if len(c1.regions) != len(c2.regions) {
		return false
	}
	for _, sr := range c2.regions {
		if signedFind(c1.regions, sr.Elem) != rel*sr.Sign {
			return false
		}
	}

	// Orient c2 along c1.
	tail := slices.Clone(c2.vertices)
	if rel < 0 {
		slices.Reverse(tail)
	}
	var vs []*Vertex
	if s1.Sign < 0 {
		vs = append(slices.Clone(c1.vertices), tail[1:]...)
	} else {
		vs = append(tail[:len(tail)-1], c1.vertices...)
	}

	w := c2.endpoint(-s2.Sign)
	w.chains = signedRemove(w.chains, -s2.Sign, c2)
	w.chains = append(w.chains, SignedChain{s1.Sign, c1})

	for _, sr := range slices.Clone(c2.regions) {
		sr.Elem.removeChain(c2)
	}
	c2.removed = true
	c.chains = slices.DeleteFunc(c.chains, func(o *Chain) bool { return o == c2 })

	c1.vertices = vs
	v.chains = nil
	c.removeNode(v)
	return true
}
