package bubble

import "testing"

func TestCheckpointRestore(t *testing.T) {
	c, chains, north, _, _, _ := hCluster(t)
	bar := chains[0]
	before := c.Snapshot()
	cp := c.checkpoint()

	if err := c.FlipChain(bar); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := c.Evolve(); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.CollapseChain(chains[6]); err != nil {
		t.Fatal(err)
	}
	north.SetTarget(1)

	c.restore(cp)
	checkTopology(t, c)
	diff(t, c.Snapshot(), before)
	if bar.Removed() || chains[6].Removed() {
		t.Error("restored chains are still marked removed")
	}
	diff(t, north.AreaTarget(), 6.5)
	diff(t, north.Pressure(), 0.0)

	// Ids handed out after the checkpoint are handed out again.
	if err := c.FlipChain(bar); err != nil {
		t.Fatal(err)
	}
	fresh, freshChains, _, _, _, _ := hCluster(t)
	if err := fresh.FlipChain(freshChains[0]); err != nil {
		t.Fatal(err)
	}
	diff(t, c.Snapshot(), fresh.Snapshot())
}
