package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/liquid/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// Start runs the ABCI socket server until a termination signal is received.
func Start(gen AppGenerator, cfg *Config, logger log.Logger) error {
	application, err := gen(cfg.Home, logger, cfg.Debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", cfg.Bind)
	svr, err := server.NewServer(cfg.Bind, "socket", application)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start server")
	}

	sig := WaitForSignal()
	logger.Info("Stopping ABCI app", "signal", sig.String())
	return svr.Stop()
}

// WaitForSignal blocks until the process is asked to terminate.
func WaitForSignal() os.Signal {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	return <-c
}
