package sigs

import (
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
)

const (
	signatureVerifyCost = 500
)

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr splitter.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures and sets the first signer as the
// authenticated caller in the context.
type Decorator struct {
	allowMissingSigs bool
}

var _ splitter.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx, next splitter.Checker) (*splitter.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	// Only valid signatures are charged.
	res.GasAllocated += int64(n * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx, next splitter.Deliverer) (*splitter.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

// authenticate returns the context with the signer set and the number of
// verified signatures.
func (d Decorator) authenticate(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx) (splitter.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissingSigs {
			return ctx, 0, nil
		}
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "transaction cannot be signed")
	}

	signers, err := VerifyTxSignatures(store, stx, splitter.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		if d.allowMissingSigs {
			return ctx, 0, nil
		}
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}

	splitter.GetLogger(ctx).Debug("signature verified", "signer", signers[0])
	return splitter.WithSigner(ctx, signers[0]), len(signers), nil
}
