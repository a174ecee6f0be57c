package bubble

import (
	"fmt"
	"math"
	"slices"
)

// Graft inserts the polyline through points into the cluster.
//
// In a cluster without regions the polyline is closed into a loop, which
// becomes the boundary of a new region whose target is its enclosed area.
// Otherwise the polyline must cut the region containing its middle point,
// or the exterior of the cluster: both ends are attached to the nearest
// vertices on that region's boundary and the region is split in two. The
// smaller piece becomes a new region; the area target is shared between
// both pieces in proportion to their areas.
//
// Graft returns [ErrDegenerateGeometry] for fewer than two points or a loop
// enclosing no area, and [ErrInvalidTopology], leaving the cluster
// unchanged, if the ends cannot be attached to the same boundary loop.
func (c *Cluster) Graft(points []Point) (*Chain, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("graft %d points: %w", len(points), ErrDegenerateGeometry)
	}
	if len(c.regions) == 0 {
		return c.graftLoop(points)
	}
	cp := c.checkpoint()
	ch, err := c.graftCut(points)
	if err != nil {
		c.restore(cp)
		return nil, err
	}
	return ch, nil
}

// AddBubble adds a circular region approximated by a regular polygon with n
// vertices, or with segments of length about ds if n < 3. The circle must
// not overlap any existing region.
func (c *Cluster) AddBubble(center Point, radius float64, n int) (*Region, error) {
	circle := Circle{Center: center, Radius: radius}
	if !(radius > 0) {
		return nil, fmt.Errorf("bubble of radius %g: %w", radius, ErrDegenerateGeometry)
	}
	if n < 3 {
		n = circle.Segments(c.opts.DS)
	}
	pts := circle.Polygon(n)
	for _, pt := range pts {
		if r := c.RegionContaining(pt); r != nil {
			return nil, fmt.Errorf("bubble at %v overlaps %s: %w", center, r, ErrInvalidTopology)
		}
	}
	for _, v := range c.nodes {
		if circle.Contains(v.Point) {
			return nil, fmt.Errorf("bubble at %v contains %s: %w", center, v, ErrInvalidTopology)
		}
	}
	ch, err := c.graftLoop(pts)
	if err != nil {
		return nil, err
	}
	return ch.regions[0].Elem, nil
}

func newVertices(points []Point) []*Vertex {
	vs := make([]*Vertex, len(points))
	for i, pt := range points {
		vs[i] = NewVertex(pt)
	}
	return vs
}

// graftLoop closes points into a loop bounding a new region.
func (c *Cluster) graftLoop(points []Point) (*Chain, error) {
	if len(points) > 2 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}
	if len(points) < 3 {
		return nil, fmt.Errorf("graft loop of %d points: %w", len(points), ErrDegenerateGeometry)
	}
	vs := newVertices(points)
	vs = append(vs, vs[0])
	ch := newChain(vs)
	area := ch.Area()
	if area == 0 || math.IsNaN(area) {
		return nil, fmt.Errorf("graft loop enclosing no area: %w", ErrDegenerateGeometry)
	}
	c.addChain(ch)
	r := c.newRegion(area)
	sign := 1
	if area < 0 {
		sign = -1
	}
	r.addChain(sign, ch)
	return ch, nil
}

// attachment is a vertex on a region's boundary that a grafted chain end is
// attached to.
type attachment struct {
	v *Vertex
	// interior is set if v is an interior vertex of a chain, which has to
	// be split there first.
	interior bool
}

// closestAttachment returns the interior vertex of r's boundary chains
// closest to p, or the closest node if the boundary has no interior
// vertices. exclude is never returned.
func closestAttachment(r *Region, p Point, exclude *Vertex) (attachment, bool) {
	var best attachment
	dist := math.Inf(1)
	for _, sc := range r.chains {
		vs := sc.Elem.vertices
		for _, v := range vs[1 : len(vs)-1] {
			if v == exclude {
				continue
			}
			if d := v.DistanceSquared(p); d < dist {
				best, dist = attachment{v, true}, d
			}
		}
	}
	if best.v != nil {
		return best, true
	}
	for _, sc := range r.chains {
		for _, v := range []*Vertex{sc.Elem.Start(), sc.Elem.End()} {
			if v == exclude {
				continue
			}
			if d := v.DistanceSquared(p); d < dist {
				best, dist = attachment{v, false}, d
			}
		}
	}
	return best, best.v != nil
}

// loopIndex returns the index of the first loop passing through v.
func loopIndex(loops [][]SignedChain, v *Vertex) int {
	for i, loop := range loops {
		for _, sc := range loop {
			if slices.Contains(sc.Elem.vertices, v) {
				return i
			}
		}
	}
	return -1
}

func (c *Cluster) graftCut(points []Point) (*Chain, error) {
	r := c.RegionContaining(points[len(points)/2])
	if r == nil {
		r = c.materializeExternal()
		defer c.dropExternal()
	}

	first, ok := closestAttachment(r, points[0], nil)
	if !ok {
		return nil, fmt.Errorf("graft into %s: no boundary vertex: %w", r, ErrInvalidTopology)
	}
	last, ok := closestAttachment(r, points[len(points)-1], first.v)
	if !ok {
		return nil, fmt.Errorf("graft into %s: no second boundary vertex: %w", r, ErrInvalidTopology)
	}
	loops, ok := r.Loops()
	if !ok {
		return nil, fmt.Errorf("graft into %s: boundary is not closed: %w", r, ErrInvalidTopology)
	}
	if i := loopIndex(loops, first.v); i < 0 || i != loopIndex(loops, last.v) {
		return nil, fmt.Errorf("graft into %s: ends attach to different boundaries: %w", r, ErrInvalidTopology)
	}

	ch := newChain(newVertices(points))
	c.addChain(ch)
	start := c.attach(first)
	end := c.attach(last)
	c.pinch(start, ch.Start())
	c.pinch(end, ch.End())

	if err := c.splitRegion(r, ch); err != nil {
		return nil, err
	}
	c.SimplifyChains()
	return ch, nil
}

// attach turns the vertex of a into a node, splitting the chain it lies on
// if necessary, and returns it.
func (c *Cluster) attach(a attachment) *Vertex {
	if !a.interior {
		return a.v
	}
	for _, x := range c.chains {
		if i := slices.Index(x.vertices, a.v); i > 0 && i < len(x.vertices)-1 {
			c.splitChain(x, i)
			break
		}
	}
	return a.v
}

// splitChain cuts x at its i-th vertex, which becomes a node. x keeps the
// first part; the second part is a new chain bordering the same regions.
func (c *Cluster) splitChain(x *Chain, i int) *Chain {
	end := x.End()
	end.chains = signedRemove(end.chains, -1, x)
	tail := slices.Clone(x.vertices[i:])
	x.vertices = slices.Clip(x.vertices[:i+1])
	v := x.End()
	v.chains = append(v.chains, SignedChain{-1, x})
	y := newChain(tail)
	c.addChain(y)
	for _, sr := range x.regions {
		sr.Elem.addChain(sr.Sign, y)
	}
	return y
}

// splitRegion splits r along ch, whose endpoints lie on the same boundary
// loop of r. The smaller of the two pieces becomes a new region.
func (c *Cluster) splitRegion(r *Region, ch *Chain) error {
	start, end := ch.Start(), ch.End()
	oldArea := r.Area()

	var path []SignedChain
	sign := 1
	if start == end {
		if ch.Area() < 0 {
			sign = -1
		}
	} else {
		var ok bool
		path, ok = LocatePath(r.chains, end, start, 1)
		if !ok || (PathArea(path)+ch.Area())/oldArea >= 0.5 {
			path, ok = LocatePath(r.chains, start, end, 1)
			sign = -1
		}
		if !ok {
			return fmt.Errorf("split %s along %s: no boundary path: %w", r, ch, ErrInvalidTopology)
		}
	}

	nr := c.newRegion(0)
	for _, sc := range path {
		r.removeChain(sc.Elem)
		nr.addChain(sc.Sign, sc.Elem)
	}
	nr.addChain(sign, ch)
	r.addChain(-sign, ch)

	newArea := math.Abs(nr.Area())
	nr.pressure = r.pressure
	if r.external || oldArea == 0 {
		nr.target = newArea
		nr.smoothTarget = newArea
		return nil
	}
	rest := math.Abs(r.Area())
	ratio := r.target / math.Abs(oldArea)
	smoothRatio := r.smoothTarget / math.Abs(oldArea)
	nr.target = newArea * ratio
	nr.smoothTarget = newArea * smoothRatio
	r.target = rest * ratio
	r.smoothTarget = rest * smoothRatio
	return nil
}
