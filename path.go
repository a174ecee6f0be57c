package bubble

import "slices"

// LocatePath walks the signed chains in pool from start to end, following
// each chain in the direction given by its sign multiplied by sign. Every
// chain is used at most once, and chains leading back to start are skipped
// unless start is also end. A walk that treats reaching start again as a
// failure would reject regions whose boundary touches itself at a node;
// skipping lets such a boundary split into several loops instead. It
// returns false if the walk gets stuck before reaching end. The returned
// chains carry the sign with which they are traversed.
func LocatePath(pool []SignedChain, start, end *Vertex, sign int) ([]SignedChain, bool) {
	pool = slices.Clone(pool)
	return locatePath(&pool, start, end, sign)
}

// locatePath is like LocatePath but consumes the used chains from pool.
func locatePath(pool *[]SignedChain, start, end *Vertex, sign int) ([]SignedChain, bool) {
	var path []SignedChain
	for v := start; v != end; {
		i := slices.IndexFunc(*pool, func(sc SignedChain) bool {
			if sc.Elem.Node(-sign*sc.Sign) != v {
				return false
			}
			next := sc.Elem.Node(sign * sc.Sign)
			return next != start || next == end
		})
		if i < 0 {
			return nil, false
		}
		sc := (*pool)[i]
		path = append(path, SignedChain{sc.Sign * sign, sc.Elem})
		*pool = slices.Delete(*pool, i, i+1)
		v = sc.Elem.Node(sign * sc.Sign)
	}
	return path, true
}

// PathArea returns the signed area of a sequence of signed chains, the sum of
// sign·area over its elements.
func PathArea(path []SignedChain) float64 {
	var area float64
	for _, sc := range path {
		area += float64(sc.Sign) * sc.Elem.Area()
	}
	return area
}

// PathPoints returns the vertex positions along path, omitting the final
// vertex of each chain so that consecutive chains do not repeat their shared
// node. For a closed path the result is the polygon it describes.
func PathPoints(path []SignedChain) []Point {
	var pts []Point
	for _, sc := range path {
		vs := sc.Elem.vertices
		if sc.Sign > 0 {
			for i := 0; i < len(vs)-1; i++ {
				pts = append(pts, vs[i].Point)
			}
		} else {
			for i := len(vs) - 1; i > 0; i-- {
				pts = append(pts, vs[i].Point)
			}
		}
	}
	return pts
}
