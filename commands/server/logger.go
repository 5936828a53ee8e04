package server

import (
	"io"

	"github.com/iov-one/liquid/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// NewLogger returns a tendermint logger writing to out and filtering
// messages below given level.
func NewLogger(out io.Writer, level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(out))
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}
