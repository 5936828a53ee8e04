package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// Genesis is the part of the tendermint genesis file the application cares
// about.
type Genesis struct {
	ChainID  string         `json:"chain_id"`
	AppState liquid.Options `json:"app_state"`
}

// LoadGenesis reads the genesis file at given location.
func LoadGenesis(filename string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot parse genesis file: %s", err)
	}
	return &gen, nil
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

// SetGenesisAppState writes given application state into an existing
// genesis file, leaving all other content untouched.
func SetGenesisAppState(filename string, appState json.RawMessage) error {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "read genesis file")
	}
	var doc genesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse genesis file: %s", err)
	}
	if !json.Valid(appState) {
		return errors.Wrap(errors.ErrInput, "app state is not valid JSON")
	}
	doc["app_state"] = appState
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize genesis")
	}
	return ioutil.WriteFile(filename, out, 0600)
}
