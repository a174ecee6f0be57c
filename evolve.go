package bubble

import (
	"math"
	"slices"

	"github.com/charmbracelet/harmonica"
)

const (
	// pressureSmoothing is the weight of the new value in the exponential
	// smoothing of region pressures.
	pressureSmoothing = 0.5
	// targetFrequency is the angular frequency of the spring that moves the
	// smoothed area target toward the requested one.
	targetFrequency = 1.0
	// nodeRelaxation is the fraction of the distance to the barycenter of
	// its neighbors that a node moves in one step.
	nodeRelaxation = 0.5
)

// Evolve advances the cluster by one time step: it moves the vertices
// according to the current forces, recenters the cluster, remeshes the
// chains to the target spacing, repairs nodes with more than three chains if
// FixTopology is set, updates the region pressures and recomputes the forces.
// A step that fails is undone as a whole.
func (c *Cluster) Evolve() error {
	cp := c.checkpoint()
	if err := c.step(); err != nil {
		c.restore(cp)
		return err
	}
	return nil
}

func (c *Cluster) step() error {
	for _, r := range c.regions {
		r.areaPrev = r.Area()
	}
	c.integrate()
	c.recenter()
	if err := c.equalize(); err != nil {
		return err
	}
	if c.opts.FixTopology {
		for _, v := range slices.Clone(c.nodes) {
			if v.node && len(v.chains) > 3 {
				if err := c.SplitVertex(v); err != nil {
					return err
				}
			}
		}
	}
	c.updatePressures()
	c.computeForces()
	return nil
}

// stableStep returns the time step used for integration, dt limited by the
// stability bound of the explicit curvature flow.
func (c *Cluster) stableStep() float64 {
	ds := c.opts.DS
	return min(c.opts.DT, 0.25*ds*ds)
}

func (c *Cluster) integrate() {
	h := c.stableStep()
	maxStep := 0.5 * c.opts.DS
	moves := make(map[*Vertex]Vec2)
	for _, ch := range c.chains {
		if len(ch.regions) == 0 {
			continue
		}
		for _, v := range ch.vertices[1 : len(ch.vertices)-1] {
			if v.Pinned {
				continue
			}
			moves[v] = v.Force.Mul(h).Clamp(maxStep)
		}
	}
	for _, v := range c.nodes {
		if v.Pinned || len(v.chains) == 0 || !c.bordersRegion(v) {
			continue
		}
		var bary Vec2
		for _, sc := range v.chains {
			bary = bary.Add(Vec2(sc.Elem.neighbor(sc.Sign).Point))
		}
		bary = bary.Div(float64(len(v.chains)))
		moves[v] = Point(bary).Sub(v.Point).Mul(nodeRelaxation).Clamp(maxStep)
	}
	for v, d := range moves {
		v.Point = v.Translate(d)
	}
}

func (c *Cluster) bordersRegion(v *Vertex) bool {
	for _, sc := range v.chains {
		if len(sc.Elem.regions) > 0 {
			return true
		}
	}
	return false
}

// recenter translates the cluster so that its bounding box is centered at
// the origin.
func (c *Cluster) recenter() {
	box, ok := c.BoundingBox()
	if !ok {
		return
	}
	c.transform(Translate(Vec2(box.Center()).Negate()))
}

// equalize inserts or removes interior vertices so that the segments of
// every chain stay close to the target spacing. Chains shorter than ds are
// collapsed when FixTopology is set; a closed chain disappears together with
// the region it was the only boundary of.
func (c *Cluster) equalize() error {
	ds := c.opts.DS
	for _, ch := range slices.Clone(c.chains) {
		if ch.removed || len(ch.regions) == 0 {
			continue
		}
		n := float64(ch.Len())
		l := ch.Length()
		switch {
		case ds*(n+1) < l:
			c.insertVertex(ch)
		case ds*(n-1) > l:
			if l < ds && c.opts.FixTopology {
				v := ch.Start()
				if err := c.CollapseChain(ch); err != nil {
					return err
				}
				if !v.removed && len(v.chains) >= 4 {
					if err := c.SplitVertex(v); err != nil {
						return err
					}
				}
			} else if ch.Len() > 3 {
				c.deleteVertex(ch)
			}
		}
	}
	return nil
}

// insertVertex subdivides the longest segment of ch at its midpoint.
func (c *Cluster) insertVertex(ch *Chain) {
	best, length := 0, -1.0
	for i := 1; i < len(ch.vertices); i++ {
		if d := ch.vertices[i-1].Distance(ch.vertices[i].Point); d > length {
			best, length = i, d
		}
	}
	v := NewVertex(ch.vertices[best-1].Midpoint(ch.vertices[best].Point))
	c.registerVertex(v)
	ch.vertices = slices.Insert(ch.vertices, best, v)
}

// deleteVertex removes the interior vertex of ch whose neighbors are
// closest to each other.
func (c *Cluster) deleteVertex(ch *Chain) {
	best, dist := 0, math.Inf(1)
	for i := 1; i < len(ch.vertices)-1; i++ {
		if ch.vertices[i].Pinned {
			continue
		}
		if d := ch.vertices[i-1].Distance(ch.vertices[i+1].Point); d < dist {
			best, dist = i, d
		}
	}
	if best == 0 {
		return
	}
	ch.vertices[best].removed = true
	ch.vertices = slices.Delete(ch.vertices, best, best+1)
}

// updatePressures moves each region's smoothed target toward its requested
// target along a critically damped spring and relaxes the pressure toward a
// value proportional to the remaining area error.
func (c *Cluster) updatePressures() {
	ds := c.opts.DS
	spring := harmonica.NewSpring(c.opts.DT, targetFrequency, 1.0)
	for _, r := range c.regions {
		r.smoothTarget, r.smoothVel = spring.Update(r.smoothTarget, r.smoothVel, r.target)
		goal := c.opts.PressureGain * (r.smoothTarget - r.Area()) / (ds * ds)
		r.pressure += pressureSmoothing * (goal - r.pressure)
	}
}
