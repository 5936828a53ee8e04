package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/crypto"
	"github.com/iov-one/liquid/crypto/bech32"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/x/cash"
	xliquid "github.com/iov-one/liquid/x/liquid"
)

// genesisSupply is the amount of reward coins and liquid units given to the
// development account.
const genesisSupply = 1000000

// GenInitOptions will produce some basic options for one rich account that
// also administers a single distribution token, to use for dev mode.
//
// Arguments are optional: [ticker] [admin address in hex].
func GenInitOptions(args []string) (json.RawMessage, string, error) {
	ticker := "IOV"
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, "", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
		}
	}

	var (
		admin liquid.Address
		keys  string
	)
	if len(args) > 1 {
		if err := json.Unmarshal([]byte(fmt.Sprintf("%q", args[1])), &admin); err != nil {
			return nil, "", errors.Wrap(err, "admin address")
		}
		if err := admin.Validate(); err != nil {
			return nil, "", errors.Wrap(err, "admin address")
		}
	} else {
		addr, out, err := GenerateCoinKey()
		if err != nil {
			return nil, "", err
		}
		admin, keys = addr, out
	}

	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{{
			Address: admin,
			Coins:   []*coin.Coin{coin.NewCoinp(genesisSupply, ticker)},
		}},
		"custody": []interface{}{},
		"liquid": []xliquid.GenesisToken{{
			Admin:           admin,
			Name:            "Liquid Infrastructure",
			Symbol:          "LIQ",
			RewardTickers:   []string{ticker},
			ApprovedHolders: []liquid.Address{admin},
			Balances:        []xliquid.GenesisBalance{{Holder: admin, Amount: genesisSupply}},
		}},
		"conf": map[string]interface{}{
			"cash": cash.Configuration{Owner: admin, Issuer: admin},
			"liquid": func() xliquid.Configuration {
				c := xliquid.DefaultConfiguration()
				c.Owner = admin
				return c
			}(),
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "serialize genesis")
	}
	return raw, keys, nil
}

// AddressHRP is the human readable part of bech32 encoded addresses.
const AddressHRP = "liq"

type output struct {
	Address liquid.Address     `json:"address"`
	Bech32  string             `json:"bech32"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a new key, along with a json
// representation of the key pair.
func GenerateCoinKey() (liquid.Address, string, error) {
	privKey := crypto.GenPrivateKey()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	human, err := bech32.Encode(AddressHRP, addr)
	if err != nil {
		return nil, "", err
	}
	out := output{Address: addr, Bech32: human, Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
