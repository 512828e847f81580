// Package fast provides push-style primitives over iter.Seq that skip the
// pullflow stage protocol for raw speed.
//
// # DISCLAIMER: USE AT YOUR OWN RISK
//
// This package intentionally bypasses the following pullflow features:
//
//   - Move semantics: a Seq may be ranged over any number of times
//   - Failure latching: there is no error channel, a failing function must panic
//   - Hooks: nothing can be observed between two operators
//   - Close: abandoned sources are released only by the range statement
//
// # When to use this package
//
//   - CPU-bound transformations where per-element stage calls dominate
//   - Trusted code paths where panics are acceptable
//   - Benchmarking to measure the cost of the stage protocol
//
// Values move between the two worlds with FromStream and ToStream.
package fast
