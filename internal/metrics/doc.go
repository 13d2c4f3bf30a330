// Package metrics provides build and step metrics for artifact builds.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so callers never need nil checks. PrometheusRecorder registers
// its collectors on a caller-supplied registry; since artifact builds are
// short-lived processes, the registry is flushed to disk with WriteTextfile
// for pickup by a node_exporter textfile collector rather than scraped.
package metrics
