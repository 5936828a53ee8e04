package server

import (
	"encoding/json"
	"path/filepath"

	"github.com/iov-one/liquid/app"
)

// GenOptions can parse command-line arguments to generate default
// app_state for the genesis file. It also returns human readable output
// to print, like generated keys.
type GenOptions func(args []string) (json.RawMessage, string, error)

// GenesisFile returns the location of the tendermint genesis file.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitGenesis adds the generated app_state to the genesis file created by
// `tendermint init` in given home directory.
func InitGenesis(gen GenOptions, home string, args []string) (string, error) {
	state, out, err := gen(args)
	if err != nil {
		return "", err
	}
	if err := app.SetGenesisAppState(GenesisFile(home), state); err != nil {
		return "", err
	}
	return out, nil
}
