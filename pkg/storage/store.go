// Package storage persists named collections as whole units. There are no
// partial reads or writes: callers load a full collection, mutate it in
// memory, and write the full collection back. Two interleaved
// read-modify-write cycles therefore race and the last writer wins; this
// is a documented hazard of the design, not something the store hides.
package storage

import "context"

// Store reads and writes a named collection as a whole.
type Store interface {
	// Read unmarshals the collection into out (a pointer to a slice).
	// A collection that has never been written reads as empty.
	Read(ctx context.Context, collection string, out interface{}) error
	// Write replaces the collection with records.
	Write(ctx context.Context, collection string, records interface{}) error
}
