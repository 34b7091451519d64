package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/x/royalty"
	"github.com/iov-one/splitter/x/sigs"
)

// Tx is the transaction of the splitter application. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures            []*sigs.StdSignature           `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	ReceiveMsg            *royalty.ReceiveMsg            `protobuf:"bytes,51,opt,name=receive_msg,json=receiveMsg,proto3" json:"receive_msg,omitempty"`
	RegisterTokenMsg      *royalty.RegisterTokenMsg      `protobuf:"bytes,52,opt,name=register_token_msg,json=registerTokenMsg,proto3" json:"register_token_msg,omitempty"`
	ChangeDistributionMsg *royalty.ChangeDistributionMsg `protobuf:"bytes,53,opt,name=change_distribution_msg,json=changeDistributionMsg,proto3" json:"change_distribution_msg,omitempty"`
	ChangeAdminMsg        *royalty.ChangeAdminMsg        `protobuf:"bytes,54,opt,name=change_admin_msg,json=changeAdminMsg,proto3" json:"change_admin_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ splitter.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (splitter.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// GetMsg returns the only message carried by the transaction.
func (tx *Tx) GetMsg() (splitter.Msg, error) {
	var msgs []splitter.Msg
	if tx.ReceiveMsg != nil {
		msgs = append(msgs, tx.ReceiveMsg)
	}
	if tx.RegisterTokenMsg != nil {
		msgs = append(msgs, tx.RegisterTokenMsg)
	}
	if tx.ChangeDistributionMsg != nil {
		msgs = append(msgs, tx.ChangeDistributionMsg)
	}
	if tx.ChangeAdminMsg != nil {
		msgs = append(msgs, tx.ChangeAdminMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInput, "transaction without a message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "transaction with %d messages", len(msgs))
	}
}

// SetMsg sets the message of the transaction. Any previous message is
// removed.
func (tx *Tx) SetMsg(msg splitter.Msg) error {
	signatures := tx.Signatures
	tx.Reset()
	tx.Signatures = signatures

	switch m := msg.(type) {
	case *royalty.ReceiveMsg:
		tx.ReceiveMsg = m
	case *royalty.RegisterTokenMsg:
		tx.RegisterTokenMsg = m
	case *royalty.ChangeDistributionMsg:
		tx.ChangeDistributionMsg = m
	case *royalty.ChangeAdminMsg:
		tx.ChangeAdminMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns all signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	bz, err := proto.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}
