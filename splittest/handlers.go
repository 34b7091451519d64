package splittest

import "github.com/iov-one/splitter"

// Handler is a mock implementation of the splitter.Handler interface. It
// returns configured results and counts its calls.
type Handler struct {
	checkCall   int
	CheckResult splitter.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult splitter.DeliverResult
	DeliverErr    error
}

var _ splitter.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler sets a key in the store on every call. It can be used to
// check that writes of a failed call are discarded.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ splitter.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &splitter.CheckResult{}, h.Err
}

func (h WriteHandler) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &splitter.DeliverResult{}, h.Err
}

// PanicHandler always panics with the given value.
type PanicHandler struct {
	Value interface{}
}

var _ splitter.Handler = PanicHandler{}

func (h PanicHandler) Check(splitter.Context, splitter.KVStore, splitter.Tx) (*splitter.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(splitter.Context, splitter.KVStore, splitter.Tx) (*splitter.DeliverResult, error) {
	panic(h.Value)
}
