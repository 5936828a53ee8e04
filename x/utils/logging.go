package utils

import (
	"time"

	"github.com/iov-one/liquid"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ liquid.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx, next liquid.Checker) (*liquid.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx, next liquid.Deliverer) (*liquid.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx liquid.Context, tx liquid.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := liquid.GetLogger(ctx).With("path", liquid.GetPath(tx), "duration", delta/time.Microsecond)
	if height, ok := liquid.GetHeight(ctx); ok {
		logger = logger.With("height", height)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
