// Package metrics defines the Recorder abstraction used by the compiler to
// report batch and per-unit outcomes, with a no-op default and a Prometheus
// implementation.
package metrics
