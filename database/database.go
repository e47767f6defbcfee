// Package database is the badger-backed event store. Events live under a
// monotonic serial; secondary indexes point ids, authors and replaceable
// identities at serials.
package database

import (
	"os"

	"github.com/dgraph-io/badger/v4"

	"okra.dev/interfaces/store"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
	"okra.dev/utils/units"
)

// D is the store.
type D struct {
	ctx     context.T
	cancel  context.F
	dataDir string
	*badger.DB
	seq *badger.Sequence
}

var _ store.I = &D{}

// New creates a store handle. The database itself opens in Init.
func New(ctx context.T, cancel context.F, dataDir, logLevel string) (
	d *D, err error,
) {
	d = &D{
		ctx:     ctx,
		cancel:  cancel,
		dataDir: dataDir,
	}
	return
}

// Init opens or creates the database at the given path.
func (d *D) Init(path string) (err error) {
	if path != "" {
		d.dataDir = path
	}
	if err = os.MkdirAll(d.dataDir, 0755); chk.E(err) {
		return
	}
	opts := badger.DefaultOptions(d.dataDir)
	opts.BlockCacheSize = int64(256 * units.Mb)
	opts.CompactL0OnClose = true
	opts.Logger = &logger{}
	if d.DB, err = badger.Open(opts); chk.E(err) {
		return
	}
	log.T.Ln("getting event sequence lease", d.dataDir)
	if d.seq, err = d.DB.GetSequence(seqKey, 1000); chk.E(err) {
		return
	}
	go func() {
		<-d.ctx.Done()
		chk.E(d.Close())
	}()
	return
}

// Path returns the directory the database files live in.
func (d *D) Path() string { return d.dataDir }

// Sync flushes buffers to disk.
func (d *D) Sync() (err error) {
	if d.DB == nil {
		return
	}
	_ = d.DB.RunValueLogGC(0.5)
	return d.DB.Sync()
}

// Close releases the sequence lease and closes the database.
func (d *D) Close() (err error) {
	if d.seq != nil {
		chk.E(d.seq.Release())
		d.seq = nil
	}
	if d.DB != nil {
		err = d.DB.Close()
		d.DB = nil
	}
	return
}

// Wipe deletes everything.
func (d *D) Wipe() (err error) { return d.DB.DropAll() }

// serial issues the next event serial.
func (d *D) serial() (ser uint64, err error) { return d.seq.Next() }
