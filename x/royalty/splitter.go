package royalty

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/fixed"
)

// SplitAndForward computes the share of every recipient of the stored
// distribution table and returns a transfer instruction for each of them,
// in the table order. Shares rounding down to zero are included.
//
// The sender must be a registered token. Otherwise ErrNotRegistered is
// returned and no instruction is produced.
func SplitAndForward(
	db splitter.ReadOnlyKVStore,
	codec splitter.AddressCodec,
	sender splitter.Address,
	amount *uint256.Int,
) ([]*Instruction, error) {
	callback, err := LookupToken(db, sender)
	if err != nil {
		return nil, err
	}
	token, err := codec.Human(sender)
	if err != nil {
		return nil, errors.Wrap(err, "token address")
	}

	table, err := loadStoredDistribution(db)
	if err != nil {
		return nil, err
	}
	// Rates were checked when the table was written. The precision is
	// checked again only because the base must be computed.
	base, err := fixed.Base(table.DecimalPlaces)
	if err != nil {
		return nil, errors.Wrap(err, "stored distribution")
	}

	ins := make([]*Instruction, 0, len(table.Royalties))
	for i, r := range table.Royalties {
		share, err := fixed.Share(amount, uint256.NewInt(r.Rate), base)
		if err != nil {
			return nil, errors.Wrapf(err, "royalty %d", i)
		}
		recipient, err := codec.Human(r.Recipient)
		if err != nil {
			return nil, errors.Wrapf(err, "royalty %d recipient", i)
		}
		ins = append(ins, NewTransfer(recipient, share.ToBig().String(), token, callback))
	}
	return ins, nil
}
