package utils

import (
	"time"

	"github.com/iov-one/splitter"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ splitter.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx, next splitter.Checker) (*splitter.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx, next splitter.Deliverer) (*splitter.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes the message path, the time and the result to the logger
func logDuration(ctx splitter.Context, tx splitter.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := splitter.GetLogger(ctx).With("path", msgPath(tx), "duration", delta/time.Microsecond)

	if err != nil {
		logger = logger.With("err", err)
	}

	// An empty message is logged as well, the entry carries the duration.
	switch {
	case err != nil:
		logger.Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
