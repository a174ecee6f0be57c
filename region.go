package bubble

import (
	"fmt"
	"math"
	"slices"
)

// Region is an area of the plane bounded by one or more closed cycles of
// signed chains.
//
// The unbounded complement of a cluster is represented by an external region
// only while a surgery operation needs it; it never appears in
// [Cluster.Regions].
type Region struct {
	id       int
	chains   []SignedChain
	target   float64
	pressure float64
	external bool
	removed  bool

	// area control state: smoothed target and its rate of change
	smoothTarget float64
	smoothVel    float64
	areaPrev     float64
}

func newRegion(target float64) *Region {
	return &Region{
		target:       target,
		smoothTarget: target,
	}
}

// ID returns the identifier assigned when the region was added to a cluster.
func (r *Region) ID() int { return r.id }

// IsExternal reports whether r stands for the unbounded complement.
func (r *Region) IsExternal() bool { return r.external }

// Removed reports whether the region has been removed from its cluster.
func (r *Region) Removed() bool { return r.removed }

// SignedChains returns the chains bounding the region with their
// orientation.
func (r *Region) SignedChains() []SignedChain { return slices.Clone(r.chains) }

// AreaTarget returns the area the region is driven toward.
func (r *Region) AreaTarget() float64 { return r.target }

// SetTarget changes the area the region is driven toward. The pressure
// feedback follows the new target gradually.
func (r *Region) SetTarget(target float64) {
	r.target = math.Abs(target)
}

// Pressure returns the current pressure of the region.
func (r *Region) Pressure() float64 { return r.pressure }

// AreaPrev returns the area recorded at the start of the last evolution
// step.
func (r *Region) AreaPrev() float64 { return r.areaPrev }

// Area returns the signed area enclosed by the region's boundary. It is
// positive for bounded regions.
func (r *Region) Area() float64 {
	return PathArea(r.chains)
}

// Perimeter returns the total length of the region's boundary.
func (r *Region) Perimeter() float64 {
	var p float64
	for _, sc := range r.chains {
		p += sc.Elem.Length()
	}
	return p
}

// addChain adds chain with the given sign to the boundary of r. Opposite
// signs cancel, so adding a chain already present with the opposite sign
// removes it from both sides.
func (r *Region) addChain(sign int, ch *Chain) {
	r.chains, _ = signedAdd(r.chains, sign, ch)
	ch.regions, _ = signedAdd(ch.regions, sign, r)
}

// removeChain detaches ch from r regardless of its sign.
func (r *Region) removeChain(ch *Chain) {
	r.chains = signedRemove(r.chains, 0, ch)
	ch.regions = signedRemove(ch.regions, 0, r)
}

// clear detaches every chain from r.
func (r *Region) clear() {
	for _, sc := range r.chains {
		sc.Elem.regions = signedRemove(sc.Elem.regions, 0, r)
	}
	r.chains = nil
}

// crossings returns the parity of the crossings of the upward ray from p
// with the boundary of r.
func (r *Region) crossings(p Point) (inside, degenerate bool) {
	count := 0
	for _, sc := range r.chains {
		n, on, deg := sc.Elem.rayCrossings(p)
		if deg {
			return false, true
		}
		if on {
			return true, false
		}
		count += n
	}
	return count%2 == 1, false
}

// Loops decomposes the boundary of r into closed loops, each a sequence of
// signed chains traversed head to tail. It returns false if the boundary
// does not close up.
func (r *Region) Loops() ([][]SignedChain, bool) {
	pool := slices.Clone(r.chains)
	var loops [][]SignedChain
	for len(pool) > 0 {
		last := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		ch := last.Elem
		path, ok := locatePath(&pool, ch.Node(last.Sign), ch.Node(-last.Sign), 1)
		if !ok {
			return nil, false
		}
		loops = append(loops, append(path, last))
	}
	return loops, true
}

func (r *Region) String() string {
	if r.external {
		return "Region(external)"
	}
	return fmt.Sprintf("Region(%d)", r.id)
}
