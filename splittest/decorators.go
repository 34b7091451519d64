package splittest

import "github.com/iov-one/splitter"

// Decorator is a mock implementation of the splitter.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted, regardless of the result.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ splitter.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx, next splitter.Checker) (*splitter.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx, next splitter.Deliverer) (*splitter.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// Decorate returns a handler that passes every call through the decorator
// first.
func Decorate(h splitter.Handler, d splitter.Decorator) splitter.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn splitter.Handler
	dc splitter.Decorator
}

func (d *decoratedHandler) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}

// SignerAuth sets the signer of every transaction it processes. A nil
// Signer leaves the transaction unsigned.
type SignerAuth struct {
	Signer splitter.Address
}

var _ splitter.Decorator = SignerAuth{}

func (a SignerAuth) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx, next splitter.Checker) (*splitter.CheckResult, error) {
	return next.Check(a.sign(ctx), db, tx)
}

func (a SignerAuth) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx, next splitter.Deliverer) (*splitter.DeliverResult, error) {
	return next.Deliver(a.sign(ctx), db, tx)
}

func (a SignerAuth) sign(ctx splitter.Context) splitter.Context {
	if a.Signer == nil {
		return ctx
	}
	return splitter.WithSigner(ctx, a.Signer)
}
