package orm

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/store"
)

func (mb *modelBucket) Register(name string, r liquid.QueryRouter) {
	r.Register("/"+name, bucketQuery{bucket: mb})
}

type bucketQuery struct {
	bucket *modelBucket
}

var _ liquid.QueryHandler = bucketQuery{}

// Query returns stored entities. Returned keys do not carry the bucket
// prefix.
func (q bucketQuery) Query(db liquid.ReadOnlyKVStore, mod string, data []byte) ([]liquid.Model, error) {
	switch mod {
	case liquid.KeyQueryMod:
		raw, err := db.Get(q.bucket.dbKey(data))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []liquid.Model{liquid.Pair(data, raw)}, nil
	case liquid.PrefixQueryMod:
		start := q.bucket.dbKey(data)
		it, err := db.Iterator(start, prefixEnd(start))
		if err != nil {
			return nil, err
		}
		models, err := store.ReadAll(it)
		if err != nil {
			return nil, err
		}
		for i, m := range models {
			models[i].Key = m.Key[len(q.bucket.prefix):]
		}
		return models, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
