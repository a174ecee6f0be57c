package bubble

// computeForces sets the force on every vertex of a chain bordering at least
// one region: a discrete curvature term on interior vertices and a pressure
// term on every segment, distributed to its two endpoints. The pressure term
// of a segment is limited so that it moves a vertex by at most ds in one
// integration step.
func (c *Cluster) computeForces() {
	for v := range c.Vertices() {
		v.Force = Vec2{}
	}
	ds := c.opts.DS
	maxForce := ds / c.stableStep()
	for _, ch := range c.chains {
		if len(ch.regions) == 0 {
			continue
		}
		vs := ch.vertices
		for i := 1; i < len(vs)-1; i++ {
			// (v₋ − v) + (v₊ − v) ≈ ds²κ for uniform spacing
			lap := vs[i-1].Sub(vs[i].Point).Add(vs[i+1].Sub(vs[i].Point))
			vs[i].Force = vs[i].Force.Add(lap.Div(ds * ds))
		}

		var p float64
		for _, sr := range ch.regions {
			p += float64(sr.Sign) * sr.Elem.pressure
		}
		if p == 0 {
			continue
		}
		i := 0
		for seg := range ch.Segments() {
			// the right normal points out of the region on the left
			f := seg.Normal().Mul(seg.Length() * p / (2 * ds)).Clamp(maxForce)
			vs[i].Force = vs[i].Force.Add(f)
			vs[i+1].Force = vs[i+1].Force.Add(f)
			i++
		}
	}
}
