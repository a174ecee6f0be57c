package bubble

// Signed pairs an element with an orientation, +1 or −1.
//
// For a vertex, a Signed[*Chain] records that the vertex is the start (+1) or
// the end (−1) of the chain. For a chain, a Signed[*Region] records on which
// side the region lies: +1 if the region's counterclockwise boundary runs
// along the chain from start to end (the region is on the chain's left),
// −1 otherwise. A region's Signed[*Chain] uses the same sign.
type Signed[T comparable] struct {
	Sign int
	Elem T
}

type (
	SignedChain  = Signed[*Chain]
	SignedRegion = Signed[*Region]
)

// signedAdd adds sign to the multiplicity of elem in s. Entries whose
// multiplicity drops to zero are removed. It returns the updated slice and
// the resulting multiplicity.
func signedAdd[T comparable](s []Signed[T], sign int, elem T) ([]Signed[T], int) {
	for i := range s {
		if s[i].Elem != elem {
			continue
		}
		s[i].Sign += sign
		if s[i].Sign == 0 {
			return append(s[:i], s[i+1:]...), 0
		}
		return s, s[i].Sign
	}
	return append(s, Signed[T]{sign, elem}), sign
}

// signedRemove removes every entry for elem with the given sign. A sign of 0
// matches any sign.
func signedRemove[T comparable](s []Signed[T], sign int, elem T) []Signed[T] {
	out := s[:0]
	for _, e := range s {
		if e.Elem == elem && (sign == 0 || e.Sign == sign) {
			continue
		}
		out = append(out, e)
	}
	clear(s[len(out):])
	return out
}

// signedFind returns the sign elem has in s, or 0.
func signedFind[T comparable](s []Signed[T], elem T) int {
	for _, e := range s {
		if e.Elem == elem {
			return e.Sign
		}
	}
	return 0
}
