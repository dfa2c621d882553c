// Package candidate holds the broad-phase output handed to a narrow phase.
//
// Each pair names two mesh primitives by their local indices. A narrow phase
// consumes a pair together with the vertex positions (and, for friction, the
// per-vertex displacements) and computes the closest-point parameters of the
// pair; nothing in this package does geometry.
package candidate
