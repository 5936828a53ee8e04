package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/liquid/crypto"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/operator"
	"github.com/tendermint/tendermint/libs/log"
)

// keyFile is the format written by the init command.
type keyFile struct {
	Secret *crypto.PrivateKey `json:"secret"`
}

// LoadKey reads the private key from a JSON key file.
func LoadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read key file")
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse key file: %s", err)
	}
	if kf.Secret == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no secret in key file")
	}
	if _, err := kf.Secret.Sign(nil); err != nil {
		return nil, errors.Wrap(err, "key")
	}
	return kf.Secret, nil
}

// Operate runs the operator until a termination signal is received.
func Operate(client operator.Client, cfg *Config, logger log.Logger) error {
	if err := cfg.ValidateOperator(); err != nil {
		return err
	}
	key, err := LoadKey(cfg.Operator.KeyFile)
	if err != nil {
		return err
	}
	tokens, err := cfg.TokenIDs()
	if err != nil {
		return err
	}
	op, err := operator.New(client, key, cfg.Operator.ChainID, tokens, logger.With("module", "operator"))
	if err != nil {
		return err
	}
	if err := op.Schedule(cfg.Operator.WithdrawCron, cfg.Operator.DistributeCron); err != nil {
		return err
	}
	op.Start()
	sig := WaitForSignal()
	logger.Info("Stopping operator", "signal", sig.String())
	<-op.Stop().Done()
	return nil
}
