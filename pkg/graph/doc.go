// Package graph records the composition graph of a part: the tree of
// primitives, placements and boolean operations one generator call builds.
// Nodes are content-addressed, so identical inputs always produce the same
// root ID. A graph lives for one build and is discarded after export.
package graph
