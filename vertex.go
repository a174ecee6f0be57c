package bubble

import "fmt"

// Vertex is a point of the mesh. Interior vertices of a chain only carry
// shape; vertices at chain endpoints are the nodes of the cluster and record
// which chains start (+1) or end (−1) at them.
type Vertex struct {
	Point
	// Force accumulated by the last force computation.
	Force Vec2
	// Pinned vertices do not move and are never simplified away.
	Pinned bool

	id      int
	chains  []SignedChain
	node    bool
	removed bool
}

func NewVertex(pt Point) *Vertex {
	return &Vertex{Point: pt}
}

// ID returns the identifier assigned when the vertex was added to a
// cluster, or 0.
func (v *Vertex) ID() int { return v.id }

// SignedChains returns the chains having v as an endpoint.
func (v *Vertex) SignedChains() []SignedChain {
	out := make([]SignedChain, len(v.chains))
	copy(out, v.chains)
	return out
}

// Valence returns the number of chain endpoints at v. A closed chain
// starting and ending at v counts twice.
func (v *Vertex) Valence() int { return len(v.chains) }

// IsNode reports whether v is tracked as a node of its cluster.
func (v *Vertex) IsNode() bool { return v.node }

// removable reports whether v is a degree-2 point joining two distinct
// chains.
func (v *Vertex) removable() bool {
	return !v.Pinned && !v.removed && len(v.chains) == 2 && v.chains[0].Elem != v.chains[1].Elem
}

func (v *Vertex) String() string {
	return fmt.Sprintf("Vertex(%d)", v.id)
}
