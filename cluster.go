package bubble

import (
	"iter"
	"math"
	"math/rand/v2"
	"slices"
)

// Options configures a cluster.
type Options struct {
	// DS is the target spacing of vertices along chains.
	DS float64
	// DT is the integration time step. Evolve steps by min(DT, DS²/4), so
	// DT has no effect while it exceeds DS²/4, as it does with the defaults.
	DT float64
	// Seed seeds the generator used to perturb degenerate point-in-region
	// queries.
	Seed uint64
	// FixTopology enables pinching of vanishing chains and splitting of
	// nodes with more than three chains during evolution.
	FixTopology bool
	// PressureGain scales the pressure response to area errors.
	PressureGain float64
}

// DefaultOptions returns the options used by [New] when none are given.
func DefaultOptions() Options {
	return Options{
		DS:           0.1,
		DT:           0.2,
		Seed:         1,
		FixTopology:  true,
		PressureGain: 1,
	}
}

// Cluster owns the chains, nodes and regions of a planar bubble cluster and
// performs every operation that changes them.
//
// A Cluster is not safe for concurrent use.
type Cluster struct {
	opts Options
	rng  *rand.Rand

	chains  []*Chain
	nodes   []*Vertex
	regions []*Region

	// external is non-nil while an operation has materialized the unbounded
	// complement as a region.
	external *Region

	lastVertexID int
	lastChainID  int
	lastRegionID int
}

// New returns an empty cluster.
func New(opts Options) *Cluster {
	def := DefaultOptions()
	if opts.DS <= 0 {
		opts.DS = def.DS
	}
	if opts.DT <= 0 {
		opts.DT = def.DT
	}
	if opts.PressureGain == 0 {
		opts.PressureGain = def.PressureGain
	}
	return &Cluster{
		opts: opts,
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
}

func (c *Cluster) Options() Options { return c.opts }
func (c *Cluster) DS() float64      { return c.opts.DS }
func (c *Cluster) DT() float64      { return c.opts.DT }

// SetDS changes the target vertex spacing. Non-positive values are ignored.
func (c *Cluster) SetDS(ds float64) {
	if ds > 0 {
		c.opts.DS = ds
	}
}

// SetDT changes the integration time step. Non-positive values are ignored.
// Steps larger than DS²/4 are limited to it.
func (c *Cluster) SetDT(dt float64) {
	if dt > 0 {
		c.opts.DT = dt
	}
}

// SetFixTopology enables or disables automatic topology repair.
func (c *Cluster) SetFixTopology(on bool) { c.opts.FixTopology = on }

// Chains returns all chains of the cluster.
func (c *Cluster) Chains() []*Chain { return slices.Clone(c.chains) }

// Nodes returns all nodes of the cluster.
func (c *Cluster) Nodes() []*Vertex { return slices.Clone(c.nodes) }

// Regions returns the bounded regions of the cluster.
func (c *Cluster) Regions() []*Region { return slices.Clone(c.regions) }

// Vertices yields every vertex of the cluster: the nodes first, then the
// interior vertices of each chain.
func (c *Cluster) Vertices() iter.Seq[*Vertex] {
	return func(yield func(*Vertex) bool) {
		for _, v := range c.nodes {
			if !yield(v) {
				return
			}
		}
		for _, ch := range c.chains {
			for _, v := range ch.vertices[1 : len(ch.vertices)-1] {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// BoundingBox returns the smallest rectangle enclosing every vertex. It
// returns false for an empty cluster.
func (c *Cluster) BoundingBox() (Rect, bool) {
	return BoundingBox(func(yield func(Point) bool) {
		for v := range c.Vertices() {
			if !yield(v.Point) {
				return
			}
		}
	})
}

// Node returns the node with the given id.
func (c *Cluster) Node(id int) (*Vertex, bool) {
	i := slices.IndexFunc(c.nodes, func(v *Vertex) bool { return v.id == id })
	if i < 0 {
		return nil, false
	}
	return c.nodes[i], true
}

// Chain returns the chain with the given id.
func (c *Cluster) Chain(id int) (*Chain, bool) {
	i := slices.IndexFunc(c.chains, func(ch *Chain) bool { return ch.id == id })
	if i < 0 {
		return nil, false
	}
	return c.chains[i], true
}

// Region returns the region with the given id.
func (c *Cluster) Region(id int) (*Region, bool) {
	i := slices.IndexFunc(c.regions, func(r *Region) bool { return r.id == id })
	if i < 0 {
		return nil, false
	}
	return c.regions[i], true
}

// Perimeter returns the total length of the chains bordering at least one
// region.
func (c *Cluster) Perimeter() float64 {
	var p float64
	for _, ch := range c.chains {
		if len(ch.regions) > 0 {
			p += ch.Length()
		}
	}
	return p
}

// Area returns the sum of the areas of all bounded regions.
func (c *Cluster) Area() float64 {
	var a float64
	for _, r := range c.regions {
		a += r.Area()
	}
	return a
}

// RegionContaining returns the bounded region containing p, or nil if p
// lies outside every region.
func (c *Cluster) RegionContaining(p Point) *Region {
	for _, r := range c.regions {
		if c.Contains(r, p) {
			return r
		}
	}
	return nil
}

// Contains reports whether p lies inside r. Points on the boundary are
// inside. When the test ray passes exactly through a vertex, the query is
// repeated with p shifted right by a small random amount drawn from the
// cluster's seeded generator.
func (c *Cluster) Contains(r *Region, p Point) bool {
	const maxAttempts = 64
	for range maxAttempts {
		inside, degenerate := r.crossings(p)
		if !degenerate {
			return inside
		}
		p.X += (0.5 + c.rng.Float64()) * 1e-7
	}
	return false
}

// ClosestChain returns the chain whose middle vertex is closest to p.
func (c *Cluster) ClosestChain(p Point) *Chain {
	var best *Chain
	dist := math.Inf(1)
	for _, ch := range c.chains {
		v := ch.vertices[len(ch.vertices)/2]
		if d := v.Distance(p); d < dist {
			dist = d
			best = ch
		}
	}
	return best
}

// ClosestNode returns the node closest to p.
func (c *Cluster) ClosestNode(p Point) *Vertex {
	var best *Vertex
	dist := math.Inf(1)
	for _, v := range c.nodes {
		if d := v.Distance(p); d < dist {
			dist = d
			best = v
		}
	}
	return best
}

func (c *Cluster) addNode(v *Vertex) {
	if v.node {
		return
	}
	c.registerVertex(v)
	v.node = true
	c.nodes = append(c.nodes, v)
}

func (c *Cluster) removeNode(v *Vertex) {
	if !v.node {
		return
	}
	v.node = false
	c.nodes = slices.DeleteFunc(c.nodes, func(w *Vertex) bool { return w == v })
}

func (c *Cluster) registerVertex(v *Vertex) {
	if v.id == 0 {
		c.lastVertexID++
		v.id = c.lastVertexID
	}
}

// addChain adds ch to the cluster, assigning ids to it and its vertices and
// tracking its endpoints as nodes.
func (c *Cluster) addChain(ch *Chain) {
	if ch.id == 0 {
		c.lastChainID++
		ch.id = c.lastChainID
	}
	for _, v := range ch.vertices {
		c.registerVertex(v)
	}
	c.addNode(ch.Start())
	c.addNode(ch.End())
	c.chains = append(c.chains, ch)
}

// removeChain detaches ch from its endpoints and its regions and drops it
// from the cluster. Regions left without chains are removed as well.
func (c *Cluster) removeChain(ch *Chain) {
	if ch.removed {
		return
	}
	ch.Start().chains = signedRemove(ch.Start().chains, 1, ch)
	ch.End().chains = signedRemove(ch.End().chains, -1, ch)
	for _, sr := range slices.Clone(ch.regions) {
		r := sr.Elem
		r.removeChain(ch)
		if len(r.chains) == 0 && !r.external {
			c.removeRegion(r)
		}
	}
	ch.removed = true
	c.chains = slices.DeleteFunc(c.chains, func(o *Chain) bool { return o == ch })
}

func (c *Cluster) newRegion(target float64) *Region {
	r := newRegion(math.Abs(target))
	c.lastRegionID++
	r.id = c.lastRegionID
	c.regions = append(c.regions, r)
	return r
}

func (c *Cluster) removeRegion(r *Region) {
	r.clear()
	r.removed = true
	c.regions = slices.DeleteFunc(c.regions, func(o *Region) bool { return o == r })
}

func (c *Cluster) newNode(pt Point) *Vertex {
	v := NewVertex(pt)
	c.addNode(v)
	return v
}

// materializeExternal creates the external region: every chain bordering
// exactly one region gets the external region on its other side. It returns
// the existing external region if there is one.
func (c *Cluster) materializeExternal() *Region {
	if c.external != nil {
		return c.external
	}
	ext := &Region{external: true}
	for _, ch := range c.chains {
		if len(ch.regions) == 1 {
			ext.addChain(-ch.regions[0].Sign, ch)
		}
	}
	c.external = ext
	return ext
}

// dropExternal detaches the external region from all chains.
func (c *Cluster) dropExternal() {
	if c.external == nil {
		return
	}
	c.external.clear()
	c.external = nil
}
