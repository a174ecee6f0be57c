package bubble

import (
	"errors"
	"math"
	"testing"
)

// wheel returns a cluster of five wedges meeting at the origin. The spokes,
// chains 1 to 5, leave the center at the given angles in degrees; chains 6
// to 10 join the spoke ends.
func wheel(t *testing.T, degrees ...float64) (*Cluster, []*Chain, *Vertex) {
	t.Helper()
	var rim []Point
	for _, d := range degrees {
		rim = append(rim, Point(VecFromAngle(d*math.Pi/180)))
	}
	var chains [][]Point
	for _, p := range rim {
		chains = append(chains, []Point{Pt(0, 0), p})
	}
	for i, p := range rim {
		chains = append(chains, []Point{p, rim[(i+1)%len(rim)]})
	}
	var regions [][]int
	n := len(degrees)
	for i := range n {
		regions = append(regions, []int{i + 1, n + i + 1, -((i+1)%n + 1)})
	}
	c, chs, _ := build(t, chains, regions)
	return c, chs, chs[0].Start()
}

func TestSplitVertex(t *testing.T) {
	c, chains, center := wheel(t, 0, 10, 120, 200, 280)
	area := c.Area()
	if v := center.Valence(); v != 5 {
		t.Fatalf("center has valence %d, want 5", v)
	}

	if err := c.SplitVertex(center); err != nil {
		t.Fatal(err)
	}
	checkTopology(t, c)

	// The closest pair moves first, then the pair with the smaller of two
	// equal gaps.
	w := chains[0].Start()
	if w == center || chains[1].Start() != w {
		t.Errorf("spokes at 0° and 10° start at %v and %v, want a shared new node", chains[0].Start(), chains[1].Start())
	}
	if v := w.Valence(); v != 3 {
		t.Errorf("new node has valence %d, want 3", v)
	}
	w2 := chains[2].Start()
	if w2 == center || w2 == w || chains[3].Start() != w2 {
		t.Errorf("spokes at 120° and 200° start at %v and %v, want a shared new node", chains[2].Start(), chains[3].Start())
	}
	if chains[4].Start() != center {
		t.Errorf("spoke at 280° moved to %v", chains[4].Start())
	}
	if v := maxValence(c); v > 3 {
		t.Errorf("got maximum valence %d, want at most 3", v)
	}
	if len(c.Nodes()) != 8 || len(c.Chains()) != 12 || len(c.Regions()) != 5 {
		t.Errorf("got %d nodes, %d chains, %d regions, want 8, 12, 5",
			len(c.Nodes()), len(c.Chains()), len(c.Regions()))
	}
	if got := c.Area(); !approxEqual(got, area, 1e-12) {
		t.Errorf("got total area %v, want %v", got, area)
	}

	// The new node sits a third of the way toward the midpoint of the moved
	// spokes' far ends.
	want := rimMid(chains[0], chains[1]).Mul(1.0 / 3)
	if d := w.Distance(Point(want)); d > 1e-12 {
		t.Errorf("new node at %v, want %v", w.Point, want)
	}
}

func TestSplitVertexEqualGaps(t *testing.T) {
	// The gaps 0°–10° and 250°–260° are equally small; the pair first in
	// angular order is split off first.
	c, chains, center := wheel(t, 0, 10, 130, 250, 260)
	if err := c.SplitVertex(center); err != nil {
		t.Fatal(err)
	}
	checkTopology(t, c)

	w, w2 := chains[0].Start(), chains[3].Start()
	if w == center || chains[1].Start() != w {
		t.Errorf("spokes at 0° and 10° start at %v and %v, want a shared new node", chains[0].Start(), chains[1].Start())
	}
	if w2 == center || w2 == w || chains[4].Start() != w2 {
		t.Errorf("spokes at 250° and 260° start at %v and %v, want a shared new node", chains[3].Start(), chains[4].Start())
	}
	if w.ID() > w2.ID() {
		t.Errorf("node %v for 250° and 260° was created before node %v for 0° and 10°", w2, w)
	}
	if chains[2].Start() != center {
		t.Errorf("spoke at 130° moved to %v", chains[2].Start())
	}
	for _, v := range []*Vertex{center, w, w2} {
		if got := v.Valence(); got != 3 {
			t.Errorf("%v has valence %d, want 3", v, got)
		}
	}
}

func rimMid(a, b *Chain) Vec2 {
	return Vec2(a.End().Midpoint(b.End().Point))
}

func TestSplitVertexLinkRegions(t *testing.T) {
	c, chains, center := wheel(t, 0, 10, 120, 200, 280)
	regions := c.Regions()
	if err := c.SplitVertex(center); err != nil {
		t.Fatal(err)
	}
	// The first link separates the wedges on either side of the moved
	// 10° wedge.
	var link *Chain
	for _, sc := range chains[0].Start().SignedChains() {
		if sc.Elem != chains[0] && sc.Elem != chains[1] {
			link = sc.Elem
		}
	}
	if link == nil {
		t.Fatal("no link chain at the new node")
	}
	if link.Start() != center {
		t.Errorf("link starts at %v, want the center", link.Start())
	}
	diff(t, regionSigns(link), map[int]int{regions[4].ID(): -1, regions[1].ID(): 1})
}

func TestSplitVertexNoop(t *testing.T) {
	c, chains, _, _, _, _ := hCluster(t)
	a := chains[0].Start()
	before := c.Snapshot()
	if err := c.SplitVertex(a); err != nil {
		t.Fatal(err)
	}
	diff(t, c.Snapshot(), before)
}

func TestSplitVertexRemoved(t *testing.T) {
	c, chains, _, _, _, _ := hCluster(t)
	b := chains[0].End()
	if err := c.CollapseChain(chains[0]); err != nil {
		t.Fatal(err)
	}
	if err := c.SplitVertex(b); !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}
