package database

import (
	"errors"

	"github.com/dgraph-io/badger/v4"

	"okra.dev/encoders/event"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
)

// DeleteEvent removes the event with the given id together with all its
// index entries, including any replaceable pointer that names it.
func (d *D) DeleteEvent(c context.T, id []byte) (err error) {
	return d.update(
		func(txn *badger.Txn) (err error) {
			var ser uint64
			var ok bool
			if ser, ok, err = getSerial(txn, idKey(id)); chk.E(err) {
				return
			}
			if !ok {
				return
			}
			var ev *event.E
			if ev, err = d.getEventBySerial(txn, ser); chk.E(err) {
				return
			}
			if ev == nil {
				return
			}
			if err = d.dropEvent(txn, ev, ser); chk.E(err) {
				return
			}
			var ptr []byte
			if ev.Kind.IsReplaceable() {
				ptr = rkKey(ev.Pubkey, ev.Kind.K)
			} else if ev.Kind.IsParameterizedReplaceable() {
				ptr = prKey(ev.Pubkey, ev.Kind.K, ev.DTag())
			}
			if ptr != nil {
				var held uint64
				var has bool
				if held, has, err = getSerial(txn, ptr); chk.E(err) {
					return
				}
				if has && held == ser {
					if err = txn.Delete(ptr); chk.E(err) {
						return
					}
				}
			}
			return
		},
	)
}

// ErrDBClosed is re-exported so callers can test for shutdown without
// importing badger.
var ErrDBClosed = badger.ErrDBClosed

// IsClosed reports whether an error indicates the database has shut down.
func IsClosed(err error) bool { return errors.Is(err, badger.ErrDBClosed) }
