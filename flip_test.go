package bubble

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func regionAreas(rs ...*Region) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Area()
	}
	return out
}

func TestFlipChain(t *testing.T) {
	c, chains, north, south, west, east := hCluster(t)
	bar := chains[0]
	approx := cmpopts.EquateApprox(0, 1e-12)

	if err := c.FlipChain(bar); err != nil {
		t.Fatal(err)
	}
	checkTopology(t, c)
	diff(t, regionSigns(bar), map[int]int{west.ID(): -1, east.ID(): 1})
	diff(t, []Point{bar.Start().Point, bar.End().Point}, []Point{Pt(0, 0.05), Pt(0, -0.05)}, approx)
	diff(t, bar.Len(), 1)
	diff(t, regionAreas(north, south, west, east), []float64{6.475, 6.475, 1.525, 1.525}, approx)
	// The chains that met the bar keep their old ends as interior vertices.
	diff(t, chains[1].Vertices()[1].Point, Pt(-0.5, 0))
	diff(t, chains[4].Vertices()[1].Point, Pt(0.5, 0))
	if len(c.Nodes()) != 6 || len(c.Chains()) != 9 {
		t.Errorf("got %d nodes and %d chains, want 6 and 9", len(c.Nodes()), len(c.Chains()))
	}
	if v := maxValence(c); v != 3 {
		t.Errorf("got maximum valence %d, want 3", v)
	}
	// The northern chains of both former endpoints now start at the new
	// top node.
	if chains[1].Start() != bar.Start() || chains[3].Start() != bar.Start() {
		t.Errorf("chains 2 and 4 start at %v and %v, want %v", chains[1].Start(), chains[3].Start(), bar.Start())
	}

	// Flipping back restores the original regions.
	if err := c.FlipChain(bar); err != nil {
		t.Fatal(err)
	}
	checkTopology(t, c)
	diff(t, regionSigns(bar), map[int]int{north.ID(): -1, south.ID(): 1})
	diff(t, []Point{bar.Start().Point, bar.End().Point}, []Point{Pt(0.05, 0), Pt(-0.05, 0)}, approx)
	diff(t, regionAreas(north, south, west, east), []float64{6.4775, 6.4775, 1.5225, 1.5225}, approx)
	if got := c.Area(); !approxEqual(got, 16, 1e-12) {
		t.Errorf("got total area %v, want 16", got)
	}
}

func TestFlipChainConservesArea(t *testing.T) {
	// An H whose bar is tilted and bent, so that no symmetry balances the
	// area changes of the four regions.
	c, chains, _ := build(t, [][]Point{
		{Pt(-0.7, 0.2), Pt(0, 0.3), Pt(0.4, -0.1)},
		{Pt(-0.7, 0.2), Pt(-2, 1)},
		{Pt(-0.7, 0.2), Pt(-2, -1)},
		{Pt(0.4, -0.1), Pt(2, 1)},
		{Pt(0.4, -0.1), Pt(2, -1)},
		{Pt(-2, -1), Pt(-2, 1)},
		{Pt(-2, 1), Pt(-2, 2), Pt(2, 2), Pt(2, 1)},
		{Pt(2, 1), Pt(2, -1)},
		{Pt(2, -1), Pt(2, -2), Pt(-2, -2), Pt(-2, -1)},
	}, [][]int{
		{1, 4, -7, -2},
		{-1, 3, -9, -5},
		{2, -6, -3},
		{5, -8, -4},
	})
	bar := chains[0]
	for i := range 2 {
		if err := c.FlipChain(bar); err != nil {
			t.Fatal(err)
		}
		checkTopology(t, c)
		if got := c.Area(); !approxEqual(got, 16, 1e-12) {
			t.Errorf("flip %d: got total area %v, want 16", i+1, got)
		}
		if l := bar.Length(); l > c.DS()+1e-12 {
			t.Errorf("flip %d: flipped chain has length %v, want at most %v", i+1, l, c.DS())
		}
	}
}

func TestFlipChainOnOuterBoundary(t *testing.T) {
	// The unit square split by a vertical chord into a left half and two
	// right quarters. Chain 2 runs from the inner node m to the node t on
	// the outer boundary.
	c, chains, rs := build(t, [][]Point{
		{Pt(0.5, 0), Pt(0.5, 0.5)},                   // 1: b → m
		{Pt(0.5, 0.5), Pt(0.5, 1)},                   // 2: m → t
		{Pt(0.5, 0.5), Pt(1, 0.5)},                   // 3: m → r
		{Pt(0.5, 1), Pt(0, 1), Pt(0, 0), Pt(0.5, 0)}, // 4: t → b
		{Pt(0.5, 0), Pt(1, 0), Pt(1, 0.5)},           // 5: b → r
		{Pt(1, 0.5), Pt(1, 1), Pt(0.5, 1)},           // 6: r → t
	}, [][]int{
		{1, 2, 4},
		{5, -3, -1},
		{3, 6, -2},
	})
	left, lower, upper := rs[0], rs[1], rs[2]
	if err := c.FlipChain(chains[1]); err != nil {
		t.Fatal(err)
	}
	checkTopology(t, c)
	diff(t, regionSigns(chains[1]), map[int]int{lower.ID(): -1})
	// Only the sliver between the old outer node and the flipped chain,
	// half a chain length high and ds wide, leaves the cluster.
	approx := cmpopts.EquateApprox(0, 1e-12)
	diff(t, regionAreas(left, lower, upper), []float64{0.4875, 0.2625, 0.2375}, approx)
	if got, bound := 1-c.Area(), c.DS()*0.5/2; got < 0 || got > bound+1e-12 {
		t.Errorf("flip lost area %v, want at most %v", got, bound)
	}
}

func TestFlipChainLowValence(t *testing.T) {
	c, chains, _ := build(t, [][]Point{
		{Pt(0, 0), Pt(1, 0), Pt(1, 1)},
		{Pt(1, 1), Pt(0, 1), Pt(0, 0)},
	}, [][]int{{1, 2}})
	before := c.Snapshot()
	if err := c.FlipChain(chains[0]); err != nil {
		t.Fatal(err)
	}
	diff(t, c.Snapshot(), before)
}

func TestFlipChainErrors(t *testing.T) {
	c := New(DefaultOptions())
	loop, err := c.Graft(square())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.FlipChain(loop); !errors.Is(err, ErrInvalidTopology) {
		t.Errorf("flip of a closed chain: got error %v, want ErrInvalidTopology", err)
	}

	c, chains, _, _, _, _ := hCluster(t)
	if err := c.CollapseChain(chains[0]); err != nil {
		t.Fatal(err)
	}
	if err := c.FlipChain(chains[0]); !errors.Is(err, ErrNotFound) {
		t.Errorf("flip of a removed chain: got error %v, want ErrNotFound", err)
	}
}
