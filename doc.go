// Package bubble simulates planar clusters of soap bubbles. Regions of the
// plane are bounded by polylines that meet at triple points and are driven
// toward prescribed areas by a discretized curvature and pressure flow.
//
// # Mesh
//
// The cluster is a topological mesh of three kinds of entities.
//
// A [Vertex] is a point. Vertices at the ends of chains are the nodes of
// the cluster; they record which chains start or end at them. Interior
// vertices only carry shape.
//
// A [Chain] is an oriented polyline from one node to another, possibly the
// same one. It borders at most two regions, one on each side. A region on
// the chain's left has sign +1: its counterclockwise boundary runs along the
// chain from start to end.
//
// A [Region] is bounded by one or more closed loops of signed chains. Its
// area is the sum of the signed areas of its chains, which is positive for
// bounded regions. The unbounded complement of the cluster, the exterior, is
// represented as a region only while an operation needs it.
//
// Incidences are kept in both directions: a chain lists its regions exactly
// when those regions list the chain, with the same sign, and a node lists
// the chains starting (+1) or ending (−1) at it. [Cluster.CheckTopology]
// verifies these invariants.
//
// # Evolution
//
// [Cluster.Evolve] performs one time step. Interior vertices move along the
// sum of a curvature force and a pressure force; nodes relax toward the
// barycenter of their neighbors, which keeps the angles at triple points
// balanced. Chains are then remeshed so that their segments stay close to
// the target spacing ds, chains shorter than ds are collapsed, and nodes
// joining more than three chains are split. Finally the region pressures
// are updated from the difference between area and target.
//
// # Surgery
//
// The topology changes through a small set of operations, each of which
// leaves the mesh valid or fails with [ErrInvalidTopology] without changing
// it:
//
//   - [Cluster.Graft] inserts a drawn polyline, creating the first region
//     or splitting an existing one (or the exterior) in two.
//   - [Cluster.SplitVertex] separates a node into triple points.
//   - [Cluster.FlipChain] swaps the regions on either side of a chain for
//     the regions beyond its endpoints.
//   - [Cluster.CollapseChain] shrinks a chain to a point.
//   - [Cluster.RemoveChainAndRegion] deletes a region, merging it into its
//     neighbor across a chain.
//   - [Cluster.SimplifyChains] and [Cluster.SimplifyVertices] clean up
//     nodes joining two chains and nodes joining none.
//
// A [Session] applies the same operations as [Command] values that refer to
// entities by id, and records the state of the cluster as a [Snapshot].
//
// # Determinism
//
// Operations never depend on map iteration order, and the only random
// choice, the perturbation of point-in-region queries whose test ray hits a
// vertex, is drawn from a generator seeded by [Options.Seed]. Equal command
// sequences therefore produce equal snapshots.
package bubble
