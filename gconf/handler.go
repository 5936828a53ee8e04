package gconf

import (
	"reflect"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/x"
)

// OwnedConfig must have an Owner field in protobuf. A configuration update
// message must be signed by an owner in order to be authorized to apply the
// change.
type OwnedConfig interface {
	Configuration
	GetOwner() liquid.Address
}

// UpdateConfigurationHandler applies a configuration patch message. The
// message must have a "Patch" field holding a configuration of the same
// type. Zero value fields of the patch do not modify the configuration.
type UpdateConfigurationHandler struct {
	pkg string
	// newConfig returns an empty instance used to load the data.
	newConfig func() OwnedConfig
	auth      x.Authenticator
}

var _ liquid.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// To pass authentication step, each message must be signed by the current
// configuration owner. A configuration that was not created via genesis
// cannot be updated.
func NewUpdateConfigurationHandler(pkg string, newConfig func() OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		newConfig: newConfig,
		auth:      auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	if _, err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	conf, err := h.applyTx(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	liquid.GetLogger(ctx).Info("configuration updated", "pkg", h.pkg, "conf", conf.String())
	return &liquid.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (OwnedConfig, error) {
	conf := h.newConfig()
	if err := Load(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "load current configuration")
	}
	// Configuration owner must sign the transaction in order to
	// authenticate the change.
	if err := x.Authorize(ctx, h.auth, x.Roles{Owner: conf.GetOwner()}, x.OwnerOnly); err != nil {
		return nil, err
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(conf, payload); err != nil {
		return nil, errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	return conf, nil
}

func patch(config OwnedConfig, payload OwnedConfig) error {
	if reflect.TypeOf(payload) != reflect.TypeOf(config) {
		return errors.Wrapf(errors.ErrMsg, "config in message %T doesn't match store %T", payload, config)
	}
	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field of
// the same type as the configuration. Content of this field is extracted and
// returned.
func patchPayload(tx liquid.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrapf(errors.ErrInput, "%T has no Patch field", msg)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
