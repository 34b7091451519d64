package royalty

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/gconf"
	"github.com/iov-one/splitter/orm"
)

// BlockSize is the size to which all messages sent to a token contract are
// padded.
const BlockSize = 256

// Royalty is a single recipient share using the human readable address.
// Rate is expressed in the precision of the table it belongs to. Being a
// uint64, a single rate cannot represent 100% of a table with more than
// fixed.MaxSingleShareDecimalPlaces decimal places.
type Royalty struct {
	Recipient string `protobuf:"bytes,1,opt,name=recipient,proto3" json:"recipient"`
	Rate      uint64 `protobuf:"varint,2,opt,name=rate,proto3" json:"rate"`
}

func (m *Royalty) Reset()         { *m = Royalty{} }
func (m *Royalty) String() string { return proto.CompactTextString(m) }
func (*Royalty) ProtoMessage()    {}

// Distribution is the distribution table in its human readable form.
// The rate of each royalty is a fraction of 10^DecimalPlaces.
type Distribution struct {
	DecimalPlaces uint32     `protobuf:"varint,1,opt,name=decimal_places,json=decimalPlaces,proto3" json:"decimal_places"`
	Royalties     []*Royalty `protobuf:"bytes,2,rep,name=royalties,proto3" json:"royalties"`
}

func (m *Distribution) Reset()         { *m = Distribution{} }
func (m *Distribution) String() string { return proto.CompactTextString(m) }
func (*Distribution) ProtoMessage()    {}

// Rates returns all rates in the table order. Missing entries count as zero.
func (m *Distribution) Rates() []uint64 {
	rates := make([]uint64, len(m.Royalties))
	for i, r := range m.Royalties {
		if r != nil {
			rates[i] = r.Rate
		}
	}
	return rates
}

// StoredRoyalty is a recipient share with the canonical recipient address.
type StoredRoyalty struct {
	Recipient []byte `protobuf:"bytes,1,opt,name=recipient,proto3"`
	Rate      uint64 `protobuf:"varint,2,opt,name=rate,proto3"`
}

func (m *StoredRoyalty) Reset()         { *m = StoredRoyalty{} }
func (m *StoredRoyalty) String() string { return proto.CompactTextString(m) }
func (*StoredRoyalty) ProtoMessage()    {}

// StoredDistribution is the persisted form of the distribution table.
type StoredDistribution struct {
	DecimalPlaces uint32           `protobuf:"varint,1,opt,name=decimal_places,json=decimalPlaces,proto3"`
	Royalties     []*StoredRoyalty `protobuf:"bytes,2,rep,name=royalties,proto3"`
}

func (m *StoredDistribution) Reset()         { *m = StoredDistribution{} }
func (m *StoredDistribution) String() string { return proto.CompactTextString(m) }
func (*StoredDistribution) ProtoMessage()    {}

var _ gconf.ValidMessage = (*StoredDistribution)(nil)

// Validate only ensures that every recipient is a valid address. Rates are
// checked before a table is converted into the stored form.
func (m *StoredDistribution) Validate() error {
	var errs error
	for i, r := range m.Royalties {
		if r == nil {
			errs = errors.AppendField(errs, fieldRoyalty(i), errors.ErrEmpty)
			continue
		}
		if err := splitter.Address(r.Recipient).Validate(); err != nil {
			errs = errors.AppendField(errs, fieldRoyalty(i)+".Recipient", err)
		}
	}
	return errs
}

// Config is the singleton configuration of the extension.
type Config struct {
	// Admin is the only address allowed to change the configuration.
	Admin []byte `protobuf:"bytes,1,opt,name=admin,proto3"`
	// CodeHash is the callback credential of this application, handed to
	// token contracts so that they can call back on transfer.
	CodeHash string `protobuf:"bytes,2,opt,name=code_hash,json=codeHash,proto3"`
}

func (m *Config) Reset()         { *m = Config{} }
func (m *Config) String() string { return proto.CompactTextString(m) }
func (*Config) ProtoMessage()    {}

var _ gconf.ValidMessage = (*Config)(nil)

// Validate ensures the admin is set.
func (m *Config) Validate() error {
	return errors.AppendField(nil, "Admin", splitter.Address(m.Admin).Validate())
}

// AdminAddress returns the admin as an address.
func (m *Config) AdminAddress() splitter.Address {
	return splitter.Address(m.Admin)
}

// TokenInfo is the registered token entry. It is stored under the token
// address.
type TokenInfo struct {
	Callback string `protobuf:"bytes,1,opt,name=callback,proto3"`
}

func (m *TokenInfo) Reset()         { *m = TokenInfo{} }
func (m *TokenInfo) String() string { return proto.CompactTextString(m) }
func (*TokenInfo) ProtoMessage()    {}

var _ orm.Model = (*TokenInfo)(nil)

// Validate accepts any callback.
func (m *TokenInfo) Validate() error {
	return nil
}

// Transfer is an instruction for a token contract to send Amount to the
// Recipient.
type Transfer struct {
	Recipient string `protobuf:"bytes,1,opt,name=recipient,proto3" json:"recipient"`
	Amount    string `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
	Token     string `protobuf:"bytes,3,opt,name=token,proto3" json:"token"`
	Callback  string `protobuf:"bytes,4,opt,name=callback,proto3" json:"callback"`
	BlockSize uint32 `protobuf:"varint,5,opt,name=block_size,json=blockSize,proto3" json:"block_size"`
}

func (m *Transfer) Reset()         { *m = Transfer{} }
func (m *Transfer) String() string { return proto.CompactTextString(m) }
func (*Transfer) ProtoMessage()    {}

// RegisterReceive is an instruction for a token contract to notify this
// application whenever it receives tokens.
type RegisterReceive struct {
	Token     string `protobuf:"bytes,1,opt,name=token,proto3" json:"token"`
	Callback  string `protobuf:"bytes,2,opt,name=callback,proto3" json:"callback"`
	CodeHash  string `protobuf:"bytes,3,opt,name=code_hash,json=codeHash,proto3" json:"code_hash"`
	BlockSize uint32 `protobuf:"varint,4,opt,name=block_size,json=blockSize,proto3" json:"block_size"`
}

func (m *RegisterReceive) Reset()         { *m = RegisterReceive{} }
func (m *RegisterReceive) String() string { return proto.CompactTextString(m) }
func (*RegisterReceive) ProtoMessage()    {}

// Instruction is an outbound message produced by a transaction. Exactly one
// of the fields is set.
type Instruction struct {
	Transfer        *Transfer        `protobuf:"bytes,1,opt,name=transfer,proto3" json:"transfer,omitempty"`
	RegisterReceive *RegisterReceive `protobuf:"bytes,2,opt,name=register_receive,json=registerReceive,proto3" json:"register_receive,omitempty"`
}

func (m *Instruction) Reset()         { *m = Instruction{} }
func (m *Instruction) String() string { return proto.CompactTextString(m) }
func (*Instruction) ProtoMessage()    {}

// Instructions is the result data of every transaction handled by this
// extension.
type Instructions struct {
	Instructions []*Instruction `protobuf:"bytes,1,rep,name=instructions,proto3" json:"instructions"`
}

func (m *Instructions) Reset()         { *m = Instructions{} }
func (m *Instructions) String() string { return proto.CompactTextString(m) }
func (*Instructions) ProtoMessage()    {}

// NewTransfer returns a transfer instruction.
func NewTransfer(recipient, amount, token, callback string) *Instruction {
	return &Instruction{
		Transfer: &Transfer{
			Recipient: recipient,
			Amount:    amount,
			Token:     token,
			Callback:  callback,
			BlockSize: BlockSize,
		},
	}
}

// NewRegisterReceive returns a register receive instruction.
func NewRegisterReceive(token, callback, codeHash string) *Instruction {
	return &Instruction{
		RegisterReceive: &RegisterReceive{
			Token:     token,
			Callback:  callback,
			CodeHash:  codeHash,
			BlockSize: BlockSize,
		},
	}
}

// EncodeInstructions serializes instructions so they can be returned as the
// transaction result.
func EncodeInstructions(ins []*Instruction) ([]byte, error) {
	raw, err := proto.Marshal(&Instructions{Instructions: ins})
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return raw, nil
}

// DecodeInstructions is the inverse of EncodeInstructions.
func DecodeInstructions(raw []byte) ([]*Instruction, error) {
	var res Instructions
	if err := proto.Unmarshal(raw, &res); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return res.Instructions, nil
}
