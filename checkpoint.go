package bubble

import "slices"

// checkpoint records a cluster and the entities in it, so that an operation
// failing partway through can be undone.
type checkpoint struct {
	chains   []*Chain
	nodes    []*Vertex
	regions  []*Region
	external *Region

	lastVertexID int
	lastChainID  int
	lastRegionID int

	vertexState map[*Vertex]Vertex
	chainState  map[*Chain]Chain
	regionState map[*Region]Region
}

func (c *Cluster) checkpoint() *checkpoint {
	cp := &checkpoint{
		chains:       slices.Clone(c.chains),
		nodes:        slices.Clone(c.nodes),
		regions:      slices.Clone(c.regions),
		external:     c.external,
		lastVertexID: c.lastVertexID,
		lastChainID:  c.lastChainID,
		lastRegionID: c.lastRegionID,
		vertexState:  make(map[*Vertex]Vertex),
		chainState:   make(map[*Chain]Chain, len(c.chains)),
		regionState:  make(map[*Region]Region, len(c.regions)),
	}
	for v := range c.Vertices() {
		saved := *v
		saved.chains = slices.Clone(v.chains)
		cp.vertexState[v] = saved
	}
	for _, ch := range c.chains {
		saved := *ch
		saved.vertices = slices.Clone(ch.vertices)
		saved.regions = slices.Clone(ch.regions)
		cp.chainState[ch] = saved
	}
	for _, r := range c.regions {
		saved := *r
		saved.chains = slices.Clone(r.chains)
		cp.regionState[r] = saved
	}
	return cp
}

// restore puts c back into the state recorded by cp. Entities created after
// the checkpoint are dropped; those existing at the time get their fields
// back, so pointers held by callers stay valid.
func (c *Cluster) restore(cp *checkpoint) {
	c.chains = cp.chains
	c.nodes = cp.nodes
	c.regions = cp.regions
	c.external = cp.external
	c.lastVertexID = cp.lastVertexID
	c.lastChainID = cp.lastChainID
	c.lastRegionID = cp.lastRegionID
	for v, saved := range cp.vertexState {
		*v = saved
	}
	for ch, saved := range cp.chainState {
		*ch = saved
	}
	for r, saved := range cp.regionState {
		*r = saved
	}
}
