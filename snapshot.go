package bubble

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// snapshotDigits is the number of decimal digits kept for coordinates and
// targets in a [Snapshot].
const snapshotDigits = 3

// Snapshot is a serializable description of a cluster's topology: every
// vertex with its rounded position, every chain as its vertex ids, and
// every region with its rounded target and signed chain ids. Entries are
// sorted by id, so equal command sequences produce equal snapshots.
type Snapshot struct {
	Nodes   []NodeRecord   `json:"nodes"`
	Chains  []ChainRecord  `json:"chains"`
	Regions []RegionRecord `json:"regions"`
}

// NodeRecord marshals to the JSON array [id, x, y].
type NodeRecord struct {
	ID int
	X  float64
	Y  float64
}

// ChainRecord marshals to the JSON array [id, vertex ids...].
type ChainRecord struct {
	ID       int
	Vertices []int
}

// RegionRecord marshals to the JSON array [id, target, [±chain ids...]],
// where a negative chain id marks a chain bordering the region on its right.
type RegionRecord struct {
	ID     int
	Target float64
	Chains []int
}

func (n NodeRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{n.ID, n.X, n.Y})
}

func (n *NodeRecord) UnmarshalJSON(b []byte) error {
	var raw []float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("node record has %d fields, want 3", len(raw))
	}
	*n = NodeRecord{ID: int(raw[0]), X: raw[1], Y: raw[2]}
	return nil
}

func (ch ChainRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(append([]int{ch.ID}, ch.Vertices...))
}

func (ch *ChainRecord) UnmarshalJSON(b []byte) error {
	var raw []int
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) < 3 {
		return fmt.Errorf("chain record has %d fields, want at least 3", len(raw))
	}
	*ch = ChainRecord{ID: raw[0], Vertices: raw[1:]}
	return nil
}

func (r RegionRecord) MarshalJSON() ([]byte, error) {
	chains := r.Chains
	if chains == nil {
		chains = []int{}
	}
	return json.Marshal([]any{r.ID, r.Target, chains})
}

func (r *RegionRecord) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("region record has %d fields, want 3", len(raw))
	}
	var out RegionRecord
	if err := json.Unmarshal(raw[0], &out.ID); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &out.Target); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &out.Chains); err != nil {
		return err
	}
	*r = out
	return nil
}

// Snapshot returns the current state of the cluster.
func (c *Cluster) Snapshot() Snapshot {
	var s Snapshot
	for v := range c.Vertices() {
		pt := v.RoundTo(snapshotDigits)
		s.Nodes = append(s.Nodes, NodeRecord{ID: v.id, X: pt.X, Y: pt.Y})
	}
	for _, ch := range c.chains {
		rec := ChainRecord{ID: ch.id}
		for _, v := range ch.vertices {
			rec.Vertices = append(rec.Vertices, v.id)
		}
		s.Chains = append(s.Chains, rec)
	}
	for _, r := range c.regions {
		rec := RegionRecord{ID: r.id, Target: roundTo(r.target, snapshotDigits)}
		for _, sc := range r.chains {
			rec.Chains = append(rec.Chains, sc.Sign*sc.Elem.id)
		}
		s.Regions = append(s.Regions, rec)
	}
	slices.SortFunc(s.Nodes, func(a, b NodeRecord) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(s.Chains, func(a, b ChainRecord) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(s.Regions, func(a, b RegionRecord) int { return cmp.Compare(a.ID, b.ID) })
	return s
}

// Info returns a human-readable dump of the incidences of every node, chain
// and region.
func (c *Cluster) Info() string {
	var b strings.Builder
	for _, v := range c.nodes {
		fmt.Fprintf(&b, "node %d %v:", v.id, v.Point)
		for _, sc := range v.chains {
			fmt.Fprintf(&b, " %+d", sc.Sign*sc.Elem.id)
		}
		b.WriteByte('\n')
	}
	for _, ch := range c.chains {
		fmt.Fprintf(&b, "chain %d (%d -> %d, %d vertices, length %.3f):",
			ch.id, ch.Start().id, ch.End().id, len(ch.vertices), ch.Length())
		for _, sr := range ch.regions {
			fmt.Fprintf(&b, " %+d", sr.Sign*sr.Elem.id)
		}
		b.WriteByte('\n')
	}
	for _, r := range c.regions {
		fmt.Fprintf(&b, "region %d (target %.3f, area %.3f, pressure %.3f):",
			r.id, r.target, r.Area(), r.pressure)
		for _, sc := range r.chains {
			fmt.Fprintf(&b, " %+d", sc.Sign*sc.Elem.id)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
