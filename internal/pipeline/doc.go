// Package pipeline runs named, weighted build steps in order over a shared,
// typed state.
//
// Steps run sequentially in ascending weight; ties keep registration order.
// The first failing step stops the run and is reported by name. Pinned steps
// always run last: their weight is recomputed on every registration as the
// highest weight of the other steps plus a fixed offset.
package pipeline
