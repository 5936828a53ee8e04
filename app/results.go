package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// ResultSet is the serialized form of either keys or values of a query
// result.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// ResultsFromKeys collects the keys of the query result. Together with
// ResultsFromValues it is the response format of every ABCI query.
func ResultsFromKeys(models []liquid.Model) *ResultSet {
	return collect(models, func(m liquid.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of the query result.
func ResultsFromValues(models []liquid.Model) *ResultSet {
	return collect(models, func(m liquid.Model) []byte { return m.Value })
}

func collect(models []liquid.Model, field func(liquid.Model) []byte) *ResultSet {
	res := &ResultSet{Results: make([][]byte, 0, len(models))}
	for _, m := range models {
		res.Results = append(res.Results, field(m))
	}
	return res
}

// JoinResults pairs keys and values returned by a query.
func JoinResults(keys, values *ResultSet) ([]liquid.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "got %d keys and %d values",
			len(keys.Results), len(values.Results))
	}
	models := make([]liquid.Model, 0, len(keys.Results))
	for i, k := range keys.Results {
		models = append(models, liquid.Pair(k, values.Results[i]))
	}
	return models, nil
}

// UnmarshalOneResult decodes the first entity of a serialized ResultSet.
// An empty set is reported as ErrNotFound.
func UnmarshalOneResult(bz []byte, o liquid.Persistent) error {
	var res ResultSet
	if err := liquid.Unmarshal(bz, &res); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result set")
	}
	return liquid.Unmarshal(res.Results[0], o)
}
