package royalty

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/fixed"
)

const (
	pathReceiveMsg            = "royalty/receive"
	pathRegisterTokenMsg      = "royalty/register_token"
	pathChangeDistributionMsg = "royalty/change_distribution"
	pathChangeAdminMsg        = "royalty/change_admin"

	maxMemoSize = 128
)

// ReceiveMsg notifies that a token contract transferred Amount of its tokens
// to this application. The token is the signer of the transaction.
type ReceiveMsg struct {
	// Sender is the address that initiated the transfer.
	Sender string `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender"`
	// From is the address whose tokens were transferred.
	From   string `protobuf:"bytes,2,opt,name=from,proto3" json:"from"`
	Amount string `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount"`
	Memo   []byte `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *ReceiveMsg) Reset()         { *m = ReceiveMsg{} }
func (m *ReceiveMsg) String() string { return proto.CompactTextString(m) }
func (*ReceiveMsg) ProtoMessage()    {}

var _ splitter.Msg = (*ReceiveMsg)(nil)

// Path returns the routing path for this message.
func (ReceiveMsg) Path() string {
	return pathReceiveMsg
}

// Validate makes sure the amount is a valid token quantity.
func (m *ReceiveMsg) Validate() error {
	var errs error
	if _, err := fixed.ParseAmount(m.Amount); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrMsg, "memo longer than %d bytes", maxMemoSize))
	}
	return errs
}

// RegisterTokenMsg adds a token contract to the registered tokens.
type RegisterTokenMsg struct {
	Token    string `protobuf:"bytes,1,opt,name=token,proto3" json:"token"`
	Callback string `protobuf:"bytes,2,opt,name=callback,proto3" json:"callback"`
}

func (m *RegisterTokenMsg) Reset()         { *m = RegisterTokenMsg{} }
func (m *RegisterTokenMsg) String() string { return proto.CompactTextString(m) }
func (*RegisterTokenMsg) ProtoMessage()    {}

var _ splitter.Msg = (*RegisterTokenMsg)(nil)

// Path returns the routing path for this message.
func (RegisterTokenMsg) Path() string {
	return pathRegisterTokenMsg
}

// Validate ensures the token is given.
func (m *RegisterTokenMsg) Validate() error {
	if m.Token == "" {
		return errors.Field("Token", errors.ErrEmpty, "token is required")
	}
	return nil
}

// ChangeDistributionMsg replaces the distribution table. A message without a
// distribution removes the stored table.
type ChangeDistributionMsg struct {
	Distribution *Distribution `protobuf:"bytes,1,opt,name=distribution,proto3" json:"distribution,omitempty"`
}

func (m *ChangeDistributionMsg) Reset()         { *m = ChangeDistributionMsg{} }
func (m *ChangeDistributionMsg) String() string { return proto.CompactTextString(m) }
func (*ChangeDistributionMsg) ProtoMessage()    {}

var _ splitter.Msg = (*ChangeDistributionMsg)(nil)

// Path returns the routing path for this message.
func (ChangeDistributionMsg) Path() string {
	return pathChangeDistributionMsg
}

// Validate checks the rates of the new table, if any.
func (m *ChangeDistributionMsg) Validate() error {
	if m.Distribution == nil {
		return nil
	}
	return ValidateDistribution(m.Distribution)
}

// ChangeAdminMsg hands over the configuration to a new admin.
type ChangeAdminMsg struct {
	Admin string `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin"`
}

func (m *ChangeAdminMsg) Reset()         { *m = ChangeAdminMsg{} }
func (m *ChangeAdminMsg) String() string { return proto.CompactTextString(m) }
func (*ChangeAdminMsg) ProtoMessage()    {}

var _ splitter.Msg = (*ChangeAdminMsg)(nil)

// Path returns the routing path for this message.
func (ChangeAdminMsg) Path() string {
	return pathChangeAdminMsg
}

// Validate ensures the new admin is given.
func (m *ChangeAdminMsg) Validate() error {
	if m.Admin == "" {
		return errors.Field("Admin", errors.ErrEmpty, "admin is required")
	}
	return nil
}
