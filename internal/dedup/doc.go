// Package dedup collapses duplicate city candidates and partitions the
// survivors against the set of cities already present downstream.
package dedup
