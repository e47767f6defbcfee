// Package store defines the storage interface the relay runs against, so the
// protocol layer does not depend on the badger implementation.
package store

import (
	"okra.dev/encoders/event"
	"okra.dev/encoders/filter"
	"okra.dev/encoders/filters"
	"okra.dev/utils/context"
)

// I is an event store. Save methods are idempotent on the event id; the
// replaceable variants implement the latest-wins policy for their kind
// class, where latest means greater created_at and ties break to the
// lexicographically greater id.
type I interface {
	// Init opens or creates the store at the given path.
	Init(path string) (err error)
	// Path returns the directory the store lives in.
	Path() string
	// Close releases the store.
	Close() (err error)
	// Wipe deletes everything in the store.
	Wipe() (err error)
	// Sync flushes pending writes to disk.
	Sync() (err error)
	// SaveEvent stores a regular event. exists is true when an event with
	// the same id is already stored, in which case nothing is written.
	SaveEvent(c context.T, ev *event.E) (exists bool, err error)
	// SaveReplaceable stores a replaceable event, deleting any older event
	// with the same pubkey and kind. It reports whether the new event was
	// stored (false when an equal or later one is already present).
	SaveReplaceable(c context.T, ev *event.E) (stored bool, err error)
	// SaveParameterized stores a parameterized replaceable event, keyed by
	// pubkey, kind and the value of the first "d" tag.
	SaveParameterized(c context.T, ev *event.E) (stored bool, err error)
	// QueryEvents returns the stored events matching the filter, newest
	// first, bounded by the filter's limit when set.
	QueryEvents(c context.T, f *filter.F) (evs event.S, err error)
	// QueryForFilters runs every filter of a REQ, deduplicates by id and
	// returns the union sorted newest first.
	QueryForFilters(c context.T, ff *filters.T) (evs event.S, err error)
	// DeleteEvent removes the event with the given id and all its index
	// entries.
	DeleteEvent(c context.T, id []byte) (err error)
}
