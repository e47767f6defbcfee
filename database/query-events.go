package database

import (
	"errors"
	"math"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"okra.dev/encoders/event"
	"okra.dev/encoders/filter"
	"okra.dev/encoders/filters"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
)

// QueryEvents returns the stored events matching the filter, newest first.
// Id lookups go through the id index, author-constrained queries walk the
// author index, anything else scans the event records.
func (d *D) QueryEvents(c context.T, f *filter.F) (evs event.S, err error) {
	if f == nil {
		return
	}
	err = d.DB.View(
		func(txn *badger.Txn) (err error) {
			switch {
			case f.Ids != nil && f.Ids.Len() > 0:
				evs, err = d.queryByIds(txn, f)
			case f.Authors != nil && f.Authors.Len() > 0:
				evs, err = d.queryByAuthors(txn, f)
			default:
				evs, err = d.queryScan(txn, f)
			}
			return
		},
	)
	if err != nil {
		return
	}
	sort.Sort(evs)
	if f.Limit != nil && uint(len(evs)) > *f.Limit {
		evs = evs[:*f.Limit]
	}
	return
}

func (d *D) queryByIds(txn *badger.Txn, f *filter.F) (
	evs event.S, err error,
) {
	for _, id := range f.Ids.Field {
		var ser uint64
		var ok bool
		if ser, ok, err = getSerial(txn, idKey(id)); chk.E(err) {
			return
		}
		if !ok {
			continue
		}
		var ev *event.E
		if ev, err = d.getEventBySerial(txn, ser); chk.E(err) {
			return
		}
		if ev != nil && f.Matches(ev) {
			evs = append(evs, ev)
		}
	}
	return
}

func (d *D) queryByAuthors(txn *badger.Txn, f *filter.F) (
	evs event.S, err error,
) {
	for _, pk := range f.Authors.Field {
		prefix := pubPrefix(pk)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		start := prefix
		if f.Until != nil && f.Until.I64() < math.MaxInt64 {
			// seek past everything newer than until; timestamps are
			// inverted in the key
			start = pubKey(pk, f.Until.I64()+1, 0)
		}
		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			createdAt, ser := pubKeyParts(it.Item().Key())
			if f.Until != nil && createdAt > f.Until.I64() {
				continue
			}
			if f.Since != nil && createdAt < f.Since.I64() {
				// iteration is newest first, nothing older can match
				break
			}
			var ev *event.E
			if ev, err = d.getEventBySerial(txn, ser); chk.E(err) {
				it.Close()
				return
			}
			if ev != nil && f.Matches(ev) {
				evs = append(evs, ev)
			}
		}
		it.Close()
	}
	return
}

func (d *D) queryScan(txn *badger.Txn, f *filter.F) (
	evs event.S, err error,
) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefixEv
	it := txn.NewIterator(opts)
	defer it.Close()
	for it.Rewind(); it.ValidForPrefix(prefixEv); it.Next() {
		var v []byte
		if v, err = it.Item().ValueCopy(nil); chk.E(err) {
			return
		}
		var ev *event.E
		if ev, err = decodeEvent(v); chk.E(err) {
			return
		}
		if f.Matches(ev) {
			evs = append(evs, ev)
		}
	}
	return
}

// QueryForFilters runs every filter of a REQ, deduplicates by id and returns
// the union newest first, capped at the smallest limit any filter carries.
func (d *D) QueryForFilters(c context.T, ff *filters.T) (
	evs event.S, err error,
) {
	if ff == nil {
		return
	}
	var limit uint
	var hasLimit bool
	seen := make(map[string]struct{})
	for _, f := range ff.F {
		if f.Limit != nil && *f.Limit == 0 {
			continue
		}
		if f.Limit != nil && (!hasLimit || *f.Limit < limit) {
			limit = *f.Limit
			hasLimit = true
		}
		var part event.S
		if part, err = d.QueryEvents(c, f); err != nil {
			if errors.Is(err, badger.ErrDBClosed) {
				return
			}
			chk.E(err)
			err = nil
			continue
		}
		for _, ev := range part {
			if _, ok := seen[string(ev.Id)]; ok {
				continue
			}
			seen[string(ev.Id)] = struct{}{}
			evs = append(evs, ev)
		}
	}
	sort.Sort(evs)
	if hasLimit && uint(len(evs)) > limit {
		evs = evs[:limit]
	}
	return
}
