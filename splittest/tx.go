package splittest

import (
	"fmt"

	"github.com/iov-one/splitter"
)

// Tx represents a single message that is to be processed within a
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg splitter.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ splitter.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (splitter.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return fmt.Sprintf("splittest.Tx{%v}", tx.Msg) }
func (*Tx) ProtoMessage()     {}

// Msg is a message that does nothing but routing.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ splitter.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return fmt.Sprintf("splittest.Msg{%s}", m.RoutePath) }
func (*Msg) ProtoMessage()    {}
