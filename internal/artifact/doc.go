// Package artifact wires the release build: it registers the domain steps
// on a pipeline.Pipeline and binds them to injected file, tag and metrics
// capabilities.
//
// A build reads the package manifest, selects the latest release tag merged
// into HEAD, bumps it, copies the files chosen by the package kind's rules
// into {artifact_dir}/{version}/{type}, rewrites version metadata in the copy
// and removes transient paths. A failed step stops the run; nothing already
// written is rolled back.
package artifact
