package server

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the daemon configuration. Values are read from a YAML
// file and the LIQUID_* environment variables take precedence over it.
type Config struct {
	// Home is the tendermint home directory. The application database
	// is kept next to the tendermint data.
	Home     string `yaml:"home" env:"LIQUID_HOME"`
	Bind     string `yaml:"bind" env:"LIQUID_BIND"`
	LogLevel string `yaml:"log_level" env:"LIQUID_LOG_LEVEL"`
	Debug    bool   `yaml:"debug" env:"LIQUID_DEBUG"`
	Operator struct {
		Node           string   `yaml:"node" env:"LIQUID_NODE"`
		ChainID        string   `yaml:"chain_id" env:"LIQUID_CHAIN_ID"`
		KeyFile        string   `yaml:"key_file" env:"LIQUID_KEY_FILE"`
		Tokens         []string `yaml:"tokens" env:"LIQUID_TOKENS" envSeparator:","`
		WithdrawCron   string   `yaml:"withdraw_cron" env:"LIQUID_WITHDRAW_CRON"`
		DistributeCron string   `yaml:"distribute_cron" env:"LIQUID_DISTRIBUTE_CRON"`
	} `yaml:"operator"`
}

// LoadConfig reads the configuration from a YAML file, then applies
// environment variable overrides and defaults. A missing file is not an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "read config")
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(errors.ErrInput, "parse config: %s", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "environment: %s", err)
	}

	if cfg.Bind == "" {
		cfg.Bind = "tcp://localhost:26658"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Operator.Node == "" {
		cfg.Operator.Node = "tcp://localhost:26657"
	}
	if cfg.Operator.WithdrawCron == "" {
		cfg.Operator.WithdrawCron = "@every 1h"
	}
	if cfg.Operator.DistributeCron == "" {
		cfg.Operator.DistributeCron = "@daily"
	}
	return cfg, nil
}

// Validate checks the settings required by the daemon.
func (c *Config) Validate() error {
	if c.Bind == "" {
		return errors.Wrap(errors.ErrEmpty, "bind")
	}
	switch c.LogLevel {
	case "debug", "info", "error", "none":
	default:
		return errors.Wrapf(errors.ErrInput, "log level %q", c.LogLevel)
	}
	return nil
}

// ValidateOperator checks the settings required by the operator.
func (c *Config) ValidateOperator() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !liquid.IsValidChainID(c.Operator.ChainID) {
		return errors.Wrapf(errors.ErrInput, "operator chain id %q", c.Operator.ChainID)
	}
	if c.Operator.KeyFile == "" {
		return errors.Wrap(errors.ErrEmpty, "operator key file")
	}
	if _, err := c.TokenIDs(); err != nil {
		return err
	}
	return nil
}

// TokenIDs decodes the hex encoded token IDs processed by the operator.
func (c *Config) TokenIDs() ([][]byte, error) {
	if len(c.Operator.Tokens) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "operator tokens")
	}
	ids := make([][]byte, 0, len(c.Operator.Tokens))
	for _, t := range c.Operator.Tokens {
		id, err := hex.DecodeString(strings.TrimSpace(t))
		if err != nil || len(id) != 8 {
			return nil, errors.Wrapf(errors.ErrInput, "token id %q", t)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
