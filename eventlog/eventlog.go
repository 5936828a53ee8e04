package eventlog

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/orm"
)

const bucketName = "evtlog"

var (
	bucket = orm.NewModelBucket(bucketName, &Event{})
	seq    = orm.NewSequence(bucketName, "id")
)

// Emit appends the event to the log. Height is taken from the context.
func Emit(ctx liquid.Context, db liquid.KVStore, e *Event) error {
	if height, ok := liquid.GetHeight(ctx); ok {
		e.Height = height
	}
	key, err := seq.NextVal(db)
	if err != nil {
		return errors.Wrap(err, "event sequence")
	}
	if err := bucket.Put(db, key, e); err != nil {
		return errors.Wrapf(err, "cannot store %s event", e.Kind)
	}

	keyvals := []interface{}{"kind", e.Kind, "source", e.Source}
	if e.Failed {
		keyvals = append(keyvals, "failed", true, "reason", e.Reason)
	}
	liquid.GetLogger(ctx).Debug("event", keyvals...)
	return nil
}

// Last returns the number of emitted events.
func Last(db liquid.ReadOnlyKVStore) (uint64, error) {
	return seq.Latest(db)
}

// List returns events with a sequence number greater than after, in
// emission order. Empty kind matches every event.
func List(db liquid.ReadOnlyKVStore, after uint64, kind string) ([]*Event, error) {
	it, err := bucket.PrefixScan(db, nil)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Event
	for {
		var e Event
		key, err := it.LoadNext(&e)
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		if orm.DecodeSequence(key) <= after {
			continue
		}
		if kind == "" || e.Kind == kind {
			res = append(res, &e)
		}
	}
}

// RegisterQuery exposes the log under the /events path.
func RegisterQuery(qr liquid.QueryRouter) {
	bucket.Register("events", qr)
}
