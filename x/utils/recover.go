package utils

import (
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
)

// Recovery turns a panic raised while processing a transaction into an
// errors.ErrPanic result. The panic is logged with the path of the message
// that caused it and, once authenticated, with its signer.
type Recovery struct{}

var _ splitter.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx, next splitter.Checker) (_ *splitter.CheckResult, err error) {
	defer r.recover(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx, next splitter.Deliverer) (_ *splitter.DeliverResult, err error) {
	defer r.recover(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

func (Recovery) recover(ctx splitter.Context, tx splitter.Tx, err *error) {
	p := recover()
	if p == nil {
		return
	}
	path := msgPath(tx)
	*err = errors.Wrapf(errors.ErrPanic, "%s: %v", path, p)

	keyvals := []interface{}{"path", path, "panic", p}
	if signer, ok := splitter.GetSigner(ctx); ok {
		keyvals = append(keyvals, "signer", signer)
	}
	splitter.GetLogger(ctx).Error("transaction panic", keyvals...)
}

// msgPath returns the routing path of the transaction message.
func msgPath(tx splitter.Tx) string {
	if tx == nil {
		return "(missing)"
	}
	return splitter.GetPath(tx)
}
