package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/liquidtest"
	"github.com/iov-one/liquid/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Owner liquid.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Limit uint64         `protobuf:"varint,2,opt,name=limit,proto3" json:"limit,omitempty"`
	Name  string         `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *testConfig) Reset()                   { *m = testConfig{} }
func (m *testConfig) String() string           { return proto.CompactTextString(m) }
func (*testConfig) ProtoMessage()              {}
func (m *testConfig) GetOwner() liquid.Address { return m.Owner }

func (m *testConfig) Validate() error {
	if m.Limit == 0 {
		return errors.Wrap(errors.ErrModel, "limit")
	}
	return nil
}

type updateMsg struct {
	Patch *testConfig `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *updateMsg) Reset()         { *m = updateMsg{} }
func (m *updateMsg) String() string { return proto.CompactTextString(m) }
func (*updateMsg) ProtoMessage()    {}
func (*updateMsg) Path() string     { return "test/update_configuration" }
func (*updateMsg) Validate() error  { return nil }

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var conf testConfig
	err := Load(db, "test", &conf)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	err = Save(db, "test", &testConfig{})
	assert.True(t, errors.ErrModel.Is(err), "got %+v", err)

	require.NoError(t, Save(db, "test", &testConfig{Limit: 5, Name: "x"}))
	require.NoError(t, Load(db, "test", &conf))
	assert.Equal(t, uint64(5), conf.Limit)
	assert.Equal(t, "x", conf.Name)
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	genesis := `{"conf": {"test": {"limit": 12, "name": "genesis"}}}`
	var opts liquid.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	require.NoError(t, InitConfig(db, opts, "test", &testConfig{}))
	var conf testConfig
	require.NoError(t, Load(db, "test", &conf))
	assert.Equal(t, uint64(12), conf.Limit)

	err := InitConfig(db, opts, "other", &testConfig{})
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestUpdateConfiguration(t *testing.T) {
	owner := liquidtest.NewCondition()
	stranger := liquidtest.NewCondition()
	auth := &liquidtest.CtxAuth{Key: "auth"}

	cases := map[string]struct {
		signer   liquid.Condition
		patch    *testConfig
		wantErr  *errors.Error
		wantConf testConfig
	}{
		"owner can update": {
			signer:   owner,
			patch:    &testConfig{Limit: 99},
			wantConf: testConfig{Owner: owner.Address(), Limit: 99, Name: "orig"},
		},
		"stranger cannot update": {
			signer:   stranger,
			patch:    &testConfig{Limit: 99},
			wantErr:  errors.ErrUnauthorized,
			wantConf: testConfig{Owner: owner.Address(), Limit: 5, Name: "orig"},
		},
		"patch is required": {
			signer:   owner,
			wantErr:  errors.ErrState,
			wantConf: testConfig{Owner: owner.Address(), Limit: 5, Name: "orig"},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, Save(db, "test", &testConfig{Owner: owner.Address(), Limit: 5, Name: "orig"}))

			h := NewUpdateConfigurationHandler("test", func() OwnedConfig { return &testConfig{} }, auth)
			ctx := auth.SetConditions(context.Background(), tc.signer)
			tx := &liquidtest.Tx{Msg: &updateMsg{Patch: tc.patch}}

			_, err := h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				require.NoError(t, err)
			}

			var conf testConfig
			require.NoError(t, Load(db, "test", &conf))
			assert.Equal(t, tc.wantConf, conf)
		})
	}
}
