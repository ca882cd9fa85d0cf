// Package engine assembles a geometry from a configuration model. It creates
// one builder instance per declaration, decodes its options, binds its
// sub-builders and slots, orders the instances with a dependency graph and
// constructs them leaves first. The result is a single rooted volume tree
// whose every volume and material reference resolves.
package engine
