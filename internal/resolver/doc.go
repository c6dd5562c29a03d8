// Package resolver turns a set of selected units into an executable plan.
//
// Resolution happens in passes, each with its own file:
//
//   - links_implicit.go infers producer -> consumer edges from port
//     compatibility (kind, then schema subset).
//   - links_explicit.go validates user wiring hints and overlays them as
//     forced edges.
//   - cycles.go rejects cyclic graphs with the full cycle path.
//   - stages.go groups units into stages of mutually independent units.
//   - wiring.go binds every input port to the nearest compatible producer.
//
// A Resolver holds no state between calls. Arguments are never modified, and
// identical arguments always produce identical plans.
package resolver
