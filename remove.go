package bubble

import (
	"fmt"
	"slices"
)

// RemoveChainAndRegion removes region r, which defaults to the first region
// bordering ch when r is nil or does not border ch. If ch separates r from
// another region, r is merged into it: their shared chains disappear and
// the other region takes over r's area target. Chains left bordering no
// region are removed, and the resulting degree-two nodes are simplified
// away.
func (c *Cluster) RemoveChainAndRegion(ch *Chain, r *Region) error {
	if ch.removed {
		return fmt.Errorf("remove %s: %w", ch, ErrNotFound)
	}
	if r != nil && r.removed {
		return fmt.Errorf("remove %s: %w", r, ErrNotFound)
	}
	if r == nil || signedFind(ch.regions, r) == 0 {
		r = nil
		if len(ch.regions) > 0 {
			r = ch.regions[0].Elem
		}
	}
	if r != nil {
		var other *Region
		for _, sr := range ch.regions {
			if sr.Elem != r {
				other = sr.Elem
			}
		}
		if other != nil {
			for _, sc := range slices.Clone(r.chains) {
				other.addChain(sc.Sign, sc.Elem)
			}
			other.target += r.target
			other.smoothTarget += r.smoothTarget
		}
		c.removeRegionAndOrphans(r)
	}
	if !ch.removed {
		c.removeChain(ch)
	}
	c.SimplifyChains()
	c.SimplifyVertices()
	return nil
}

// RemoveRegion removes r together with the chains that bordered only r.
func (c *Cluster) RemoveRegion(r *Region) error {
	if r.removed || r.external {
		return fmt.Errorf("remove %s: %w", r, ErrNotFound)
	}
	c.removeRegionAndOrphans(r)
	c.SimplifyChains()
	c.SimplifyVertices()
	return nil
}

// RemoveChain removes a chain that borders no region.
func (c *Cluster) RemoveChain(ch *Chain) error {
	if ch.removed {
		return fmt.Errorf("remove %s: %w", ch, ErrNotFound)
	}
	if len(ch.regions) > 0 {
		return fmt.Errorf("remove %s: chain borders %d regions: %w", ch, len(ch.regions), ErrInvalidTopology)
	}
	c.removeChain(ch)
	c.SimplifyChains()
	c.SimplifyVertices()
	return nil
}

func (c *Cluster) removeRegionAndOrphans(r *Region) {
	chains := r.SignedChains()
	c.removeRegion(r)
	for _, sc := range chains {
		if len(sc.Elem.regions) == 0 {
			c.removeChain(sc.Elem)
		}
	}
}
