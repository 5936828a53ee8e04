package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/gconf"
)

const confPkg = "cash"

// Configuration of the cash extension.
type Configuration struct {
	// Owner may update this configuration.
	Owner liquid.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// Issuer may create new coins. Empty disables issuing.
	Issuer liquid.Address `protobuf:"bytes,2,opt,name=issuer,proto3" json:"issuer,omitempty"`
}

func (m *Configuration) Reset()                   { *m = Configuration{} }
func (m *Configuration) String() string           { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()              {}
func (m *Configuration) GetOwner() liquid.Address { return m.Owner }

func (m *Configuration) Validate() error {
	// owner field is optional... possible to make it immutable
	if len(m.Owner) != 0 {
		if err := m.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	if len(m.Issuer) != 0 {
		if err := m.Issuer.Validate(); err != nil {
			return errors.Wrap(err, "issuer address")
		}
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, err
	}
}
