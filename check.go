package bubble

import (
	"errors"
	"fmt"
)

// CheckTopology verifies the incidence invariants of the cluster and
// returns every violation found, each wrapping [ErrInvalidTopology]:
//
//   - a chain borders at most two regions, on opposite sides;
//   - a chain lists a region exactly when the region lists the chain, with
//     the same sign;
//   - a node lists a chain exactly when it is the chain's start (+1) or
//     end (−1);
//   - interior vertices of chains list no chains;
//   - every region's boundary decomposes into closed loops.
func (c *Cluster) CheckTopology() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidTopology))
	}

	nodes := make(map[*Vertex]bool, len(c.nodes))
	for _, v := range c.nodes {
		nodes[v] = true
		if v.removed {
			fail("%s is removed but still a node", v)
		}
		for _, sc := range v.chains {
			if sc.Elem.removed {
				fail("%s lists removed %s", v, sc.Elem)
			}
			if sc.Elem.endpoint(sc.Sign) != v {
				fail("%s lists %s with sign %+d but is not that endpoint", v, sc.Elem, sc.Sign)
			}
		}
	}

	for _, ch := range c.chains {
		if ch.removed {
			fail("%s is removed but still listed", ch)
		}
		if _, err := ch.Region(1); err != nil {
			errs = append(errs, err)
		}
		for _, sigma := range []int{1, -1} {
			v := ch.endpoint(sigma)
			if !nodes[v] {
				fail("endpoint %s of %s is not a node", v, ch)
			}
			if !hasSigned(v.chains, sigma, ch) {
				fail("%s does not list %s with sign %+d", v, ch, sigma)
			}
		}
		for _, v := range ch.vertices[1 : len(ch.vertices)-1] {
			if len(v.chains) > 0 {
				fail("interior vertex %s of %s lists chains", v, ch)
			}
		}
		for _, sr := range ch.regions {
			if sr.Elem.removed {
				fail("%s lists removed %s", ch, sr.Elem)
			}
			if signedFind(sr.Elem.chains, ch) != sr.Sign {
				fail("%s lists %s with sign %+d but not conversely", ch, sr.Elem, sr.Sign)
			}
		}
	}

	for _, r := range c.regions {
		for _, sc := range r.chains {
			if signedFind(sc.Elem.regions, r) != sc.Sign {
				fail("%s lists %s with sign %+d but not conversely", r, sc.Elem, sc.Sign)
			}
		}
		if _, ok := r.Loops(); !ok {
			fail("boundary of %s is not closed", r)
		}
	}
	return errors.Join(errs...)
}

func hasSigned[T comparable](s []Signed[T], sign int, elem T) bool {
	for _, e := range s {
		if e.Sign == sign && e.Elem == elem {
			return true
		}
	}
	return false
}
