package liquid_test

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/liquidtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoMsg struct {
	Num  int64  `protobuf:"varint,1,opt,name=num,proto3" json:"num,omitempty"`
	Text string `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
}

func (m *demoMsg) Reset()         { *m = demoMsg{} }
func (m *demoMsg) String() string { return proto.CompactTextString(m) }
func (*demoMsg) ProtoMessage()    {}
func (*demoMsg) Path() string     { return "demo/msg" }

func (m *demoMsg) Validate() error {
	if m.Num < 0 {
		return errors.Wrap(errors.ErrMsg, "negative num")
	}
	return nil
}

var _ liquid.Msg = (*demoMsg)(nil)

type otherMsg struct {
	demoMsg
}

func TestLoadMsg(t *testing.T) {
	msg := &demoMsg{Num: 17, Text: "hello world"}

	cases := map[string]struct {
		tx      liquid.Tx
		dest    func() interface{}
		wantErr *errors.Error
	}{
		"pointer destination": {
			tx:   &liquidtest.Tx{Msg: msg},
			dest: func() interface{} { var m *demoMsg; return &m },
		},
		"struct destination": {
			tx:   &liquidtest.Tx{Msg: msg},
			dest: func() interface{} { return &demoMsg{} },
		},
		"not a pointer": {
			tx:      &liquidtest.Tx{Msg: msg},
			dest:    func() interface{} { return demoMsg{} },
			wantErr: errors.ErrType,
		},
		"type mismatch": {
			tx:      &liquidtest.Tx{Msg: msg},
			dest:    func() interface{} { return &otherMsg{} },
			wantErr: errors.ErrType,
		},
		"invalid message": {
			tx:      &liquidtest.Tx{Msg: &demoMsg{Num: -1}},
			dest:    func() interface{} { return &demoMsg{} },
			wantErr: errors.ErrMsg,
		},
		"tx error": {
			tx:      &liquidtest.Tx{Err: errors.ErrNotFound},
			dest:    func() interface{} { return &demoMsg{} },
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dest := tc.dest()
			err := liquid.LoadMsg(tc.tx, dest)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			switch d := dest.(type) {
			case **demoMsg:
				assert.Equal(t, msg, *d)
			case *demoMsg:
				assert.Equal(t, *msg, *d)
			default:
				t.Fatalf("unexpected destination %T", dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo/msg", liquid.GetPath(&liquidtest.Tx{Msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", liquid.GetPath(&liquidtest.Tx{}))
	assert.Equal(t, "(missing)", liquid.GetPath(&liquidtest.Tx{Err: errors.ErrMsg}))
}

func TestMarshal(t *testing.T) {
	msg := &demoMsg{Num: 3, Text: "LIQ"}
	raw, err := liquid.Marshal(msg)
	require.NoError(t, err)

	var got demoMsg
	require.NoError(t, liquid.Unmarshal(raw, &got))
	assert.Equal(t, *msg, got)

	err = liquid.Unmarshal([]byte{0xff, 0xff, 0xff}, &got)
	assert.True(t, errors.ErrType.Is(err), "got %+v", err)
}
