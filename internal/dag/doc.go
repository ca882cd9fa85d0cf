// Package dag holds the dependency graph between builder instances. An edge
// from A to B means B consumes the volumes of A, so A must be constructed
// first. The graph only orders names; it knows nothing about geometry.
package dag
