// Package boundary classifies the data nodes of a candidate region into
// inputs, outputs and internal nodes, and decides whether the region is a
// well-formed, self-contained unit.
//
// A data node is an input when no transform inside the region produces it,
// an output when something outside the region (or nothing at all) consumes
// it, and internal otherwise. Input classification wins for pass-through
// nodes. Containment is then checked against every transform's reads and
// writes, and both the input and output sets must be non-empty.
//
// Invalid regions are reported as data on the returned RegionBoundary; the
// analyzer never returns an error and performs no I/O.
package boundary
