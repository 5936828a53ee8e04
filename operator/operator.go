package operator

import (
	"context"
	"fmt"
	"sync"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/app"
	"github.com/iov-one/liquid/crypto"
	"github.com/iov-one/liquid/errors"
	xliquid "github.com/iov-one/liquid/x/liquid"
	"github.com/robfig/cron/v3"
	"github.com/tendermint/tendermint/libs/log"
)

// Operator submits withdraw and distribute transactions for a set of
// tokens.
type Operator struct {
	client  Client
	key     *crypto.PrivateKey
	chainID string
	tokens  [][]byte
	logger  log.Logger
	cron    *cron.Cron

	// mu serializes submissions so that nonces are used in order.
	mu sync.Mutex
}

// New returns an operator signing with given key. Nothing is scheduled until
// Schedule is called.
func New(client Client, key *crypto.PrivateKey, chainID string, tokens [][]byte, logger log.Logger) (*Operator, error) {
	if !liquid.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	if len(tokens) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no tokens")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	cl := cronLogger{logger: logger}
	return &Operator{
		client:  client,
		key:     key,
		chainID: chainID,
		tokens:  tokens,
		logger:  logger,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}, nil
}

// Schedule registers the withdraw and distribute jobs. An empty cron
// expression disables the job.
func (o *Operator) Schedule(withdrawSpec, distributeSpec string) error {
	if withdrawSpec != "" {
		if _, err := o.cron.AddFunc(withdrawSpec, o.runWithdraw); err != nil {
			return errors.Wrapf(errors.ErrInput, "withdraw schedule %q: %s", withdrawSpec, err)
		}
	}
	if distributeSpec != "" {
		if _, err := o.cron.AddFunc(distributeSpec, o.runDistribute); err != nil {
			return errors.Wrapf(errors.ErrInput, "distribute schedule %q: %s", distributeSpec, err)
		}
	}
	return nil
}

// Start runs the scheduler in its own goroutine.
func (o *Operator) Start() {
	o.logger.Info("operator started", "tokens", len(o.tokens))
	o.cron.Start()
}

// Stop stops the scheduler. The returned context is done once all running
// jobs completed.
func (o *Operator) Stop() context.Context {
	o.logger.Info("operator stopping")
	return o.cron.Stop()
}

// WithdrawAll collects the revenue of the managed accounts of every token.
// All tokens are processed even if some fail, the first error is returned.
func (o *Operator) WithdrawAll() error {
	return o.forEachToken("withdraw", func(id []byte) liquid.Msg {
		return &xliquid.WithdrawFromAllMsg{TokenID: id}
	})
}

// DistributeAll distributes the collected revenue of every token.
// All tokens are processed even if some fail, the first error is returned.
func (o *Operator) DistributeAll() error {
	return o.forEachToken("distribute", func(id []byte) liquid.Msg {
		return &xliquid.DistributeMsg{TokenID: id}
	})
}

func (o *Operator) runWithdraw() {
	if err := o.WithdrawAll(); err != nil {
		o.logger.Error("withdraw job failed", "err", err)
	}
}

func (o *Operator) runDistribute() {
	if err := o.DistributeAll(); err != nil {
		o.logger.Error("distribute job failed", "err", err)
	}
}

func (o *Operator) forEachToken(action string, build func([]byte) liquid.Msg) error {
	var first error
	for _, id := range o.tokens {
		res, err := o.Submit(build(id))
		if err != nil {
			o.logger.Error("submission failed", "action", action, "token", fmt.Sprintf("%X", id), "err", err)
			if first == nil {
				first = errors.Wrapf(err, "%s token %X", action, id)
			}
			continue
		}
		o.logger.Info("submitted", "action", action, "token", fmt.Sprintf("%X", id), "log", res.Log)
	}
	return first
}

// Submit signs given message with the operator key and waits until it is
// executed.
func (o *Operator) Submit(msg liquid.Msg) (*DeliverResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	tx, err := app.NewTx(msg)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	seq, err := nextSequence(o.client, o.key.PublicKey().Address())
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	if err := tx.Sign(o.key, o.chainID, seq); err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	res, err := broadcast(o.client, tx)
	if err != nil {
		return nil, err
	}
	return &DeliverResult{Data: res.Data, Log: res.Log}, nil
}

// DeliverResult is the outcome of a successful submission.
type DeliverResult struct {
	Data []byte
	Log  string
}

// cronLogger sends the scheduler logs to the application logger.
type cronLogger struct {
	logger log.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}
