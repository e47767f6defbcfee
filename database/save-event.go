package database

import (
	"errors"

	"github.com/dgraph-io/badger/v4"

	"okra.dev/encoders/event"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// newerWins reports whether a supersedes b under the latest-wins rule:
// greater created_at, ties broken by the lexicographically greater id.
func newerWins(a, b *event.E) bool {
	if a.CreatedAt.I64() != b.CreatedAt.I64() {
		return a.CreatedAt.I64() > b.CreatedAt.I64()
	}
	return string(a.Id) > string(b.Id)
}

// update runs fn in a read-write transaction, retrying once when badger
// reports a conflict.
func (d *D) update(fn func(txn *badger.Txn) error) (err error) {
	for range 2 {
		err = d.DB.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return
		}
		log.D.Ln("retrying conflicted transaction")
	}
	return
}

// writeEvent stores the event record and its id and author index entries.
func (d *D) writeEvent(txn *badger.Txn, ev *event.E, ser uint64) (err error) {
	var b []byte
	if b, err = encodeEvent(ev); chk.E(err) {
		return
	}
	if err = txn.Set(evKey(ser), b); chk.E(err) {
		return
	}
	if err = txn.Set(idKey(ev.Id), serBytes(ser)); chk.E(err) {
		return
	}
	if err = txn.Set(
		pubKey(ev.Pubkey, ev.CreatedAt.I64(), ser), nil,
	); chk.E(err) {
		return
	}
	return
}

// dropEvent removes the event record and its id and author index entries.
func (d *D) dropEvent(txn *badger.Txn, ev *event.E, ser uint64) (err error) {
	if err = txn.Delete(evKey(ser)); chk.E(err) {
		return
	}
	if err = txn.Delete(idKey(ev.Id)); chk.E(err) {
		return
	}
	if err = txn.Delete(
		pubKey(ev.Pubkey, ev.CreatedAt.I64(), ser),
	); chk.E(err) {
		return
	}
	return
}

// getSerial reads a stored serial value.
func getSerial(txn *badger.Txn, key []byte) (ser uint64, ok bool, err error) {
	var it *badger.Item
	if it, err = txn.Get(key); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			err = nil
		}
		return
	}
	var v []byte
	if v, err = it.ValueCopy(nil); chk.E(err) {
		return
	}
	if len(v) != 8 {
		return
	}
	return serFromBytes(v), true, nil
}

// getEventBySerial loads the event stored under a serial.
func (d *D) getEventBySerial(txn *badger.Txn, ser uint64) (
	ev *event.E, err error,
) {
	var it *badger.Item
	if it, err = txn.Get(evKey(ser)); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			err = nil
		}
		return
	}
	var v []byte
	if v, err = it.ValueCopy(nil); chk.E(err) {
		return
	}
	return decodeEvent(v)
}

// SaveEvent stores a regular event, reporting exists when an event with the
// same id is already present.
func (d *D) SaveEvent(c context.T, ev *event.E) (exists bool, err error) {
	err = d.update(
		func(txn *badger.Txn) (err error) {
			if _, err = txn.Get(idKey(ev.Id)); err == nil {
				exists = true
				return nil
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return
			}
			var ser uint64
			if ser, err = d.serial(); chk.E(err) {
				return
			}
			return d.writeEvent(txn, ev, ser)
		},
	)
	return
}

// SaveReplaceable stores a replaceable event, keeping only the latest per
// pubkey and kind.
func (d *D) SaveReplaceable(c context.T, ev *event.E) (
	stored bool, err error,
) {
	return d.saveLatest(ev, rkKey(ev.Pubkey, ev.Kind.K))
}

// SaveParameterized stores a parameterized replaceable event, keeping only
// the latest per pubkey, kind and d tag value.
func (d *D) SaveParameterized(c context.T, ev *event.E) (
	stored bool, err error,
) {
	return d.saveLatest(ev, prKey(ev.Pubkey, ev.Kind.K, ev.DTag()))
}

// saveLatest implements the latest-wins policy around a pointer key that
// names the current holder of a replaceable identity.
func (d *D) saveLatest(ev *event.E, ptr []byte) (stored bool, err error) {
	err = d.update(
		func(txn *badger.Txn) (err error) {
			if _, err = txn.Get(idKey(ev.Id)); err == nil {
				// exact duplicate, the identity already holds this event
				return nil
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return
			}
			var oldSer uint64
			var hasOld bool
			if oldSer, hasOld, err = getSerial(txn, ptr); chk.E(err) {
				return
			}
			var old *event.E
			if hasOld {
				if old, err = d.getEventBySerial(txn, oldSer); chk.E(err) {
					return
				}
			}
			if old != nil && !newerWins(ev, old) {
				// a later event already holds the identity
				return nil
			}
			var ser uint64
			if ser, err = d.serial(); chk.E(err) {
				return
			}
			if err = d.writeEvent(txn, ev, ser); chk.E(err) {
				return
			}
			if err = txn.Set(ptr, serBytes(ser)); chk.E(err) {
				return
			}
			if old != nil {
				if err = d.dropEvent(txn, old, oldSer); chk.E(err) {
					return
				}
			}
			stored = true
			return
		},
	)
	return
}
