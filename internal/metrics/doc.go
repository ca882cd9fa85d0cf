// Package metrics records assembly statistics: per-kind construction time and
// outcome, and the size of the finished tree. The Prometheus recorder writes
// to a private registry that can be dumped to a node-exporter textfile once
// the run is over; there is no HTTP endpoint.
package metrics
