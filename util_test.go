package bubble

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func approxEqual(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps
}

// build returns a cluster made of the given chains and regions. Chain ends
// at equal positions share a node. A region is listed as 1-based chain
// indices, negated for chains it borders on their right. Region targets are
// set to their areas.
func build(t *testing.T, chains [][]Point, regions [][]int) (*Cluster, []*Chain, []*Region) {
	t.Helper()
	c := New(DefaultOptions())
	var nodes []*Vertex
	node := func(pt Point) *Vertex {
		for _, v := range nodes {
			if v.Point == pt {
				return v
			}
		}
		v := NewVertex(pt)
		nodes = append(nodes, v)
		return v
	}

	var chs []*Chain
	for _, pts := range chains {
		vs := newVertices(pts)
		vs[0] = node(pts[0])
		vs[len(vs)-1] = node(pts[len(pts)-1])
		ch := newChain(vs)
		c.addChain(ch)
		chs = append(chs, ch)
	}
	var rs []*Region
	for _, idx := range regions {
		r := c.newRegion(0)
		for _, i := range idx {
			sign := 1
			if i < 0 {
				sign, i = -1, -i
			}
			r.addChain(sign, chs[i-1])
		}
		r.SetTarget(r.Area())
		r.smoothTarget = r.target
		rs = append(rs, r)
	}
	if err := c.CheckTopology(); err != nil {
		t.Fatalf("invalid cluster: %v", err)
	}
	return c, chs, rs
}

// hCluster returns a 4×4 square divided into four regions by an H-shaped
// set of chains. The bar of the H, chain 1, runs from a = (-0.5, 0) to
// b = (0.5, 0) and separates north (6.5) from south (6.5); the west (1.5)
// and east (1.5) triangles touch its endpoints.
func hCluster(t *testing.T) (c *Cluster, chains []*Chain, north, south, west, east *Region) {
	t.Helper()
	c, chains, rs := build(t, [][]Point{
		{Pt(-0.5, 0), Pt(0, 0), Pt(0.5, 0)},            // 1: a → b
		{Pt(-0.5, 0), Pt(-2, 1)},                       // 2: a → p1
		{Pt(-0.5, 0), Pt(-2, -1)},                      // 3: a → p2
		{Pt(0.5, 0), Pt(2, 1)},                         // 4: b → p3
		{Pt(0.5, 0), Pt(2, -1)},                        // 5: b → p4
		{Pt(-2, -1), Pt(-2, 1)},                        // 6: p2 → p1
		{Pt(-2, 1), Pt(-2, 2), Pt(2, 2), Pt(2, 1)},     // 7: p1 → p3
		{Pt(2, 1), Pt(2, -1)},                          // 8: p3 → p4
		{Pt(2, -1), Pt(2, -2), Pt(-2, -2), Pt(-2, -1)}, // 9: p4 → p2
	}, [][]int{
		{1, 4, -7, -2},
		{-1, 3, -9, -5},
		{2, -6, -3},
		{5, -8, -4},
	})
	return c, chains, rs[0], rs[1], rs[2], rs[3]
}

// square returns the corners and edge points, spaced 0.1 apart, of the unit
// square, counterclockwise from the origin.
func square() []Point {
	var pts []Point
	for i := range 10 {
		pts = append(pts, Pt(float64(i)/10, 0))
	}
	for i := range 10 {
		pts = append(pts, Pt(1, float64(i)/10))
	}
	for i := range 10 {
		pts = append(pts, Pt(float64(10-i)/10, 1))
	}
	for i := range 10 {
		pts = append(pts, Pt(0, float64(10-i)/10))
	}
	return pts
}

func maxValence(c *Cluster) int {
	n := 0
	for _, v := range c.nodes {
		n = max(n, len(v.chains))
	}
	return n
}

func checkTopology(t *testing.T, c *Cluster) {
	t.Helper()
	if err := c.CheckTopology(); err != nil {
		t.Fatal(err)
	}
}

// regionSigns maps the ids of the regions bordering ch to their sides.
func regionSigns(ch *Chain) map[int]int {
	out := make(map[int]int)
	for _, sr := range ch.SignedRegions() {
		out[sr.Elem.ID()] = sr.Sign
	}
	return out
}
