package royalty

import (
	"encoding/json"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/fixed"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	receiveCost            = 50
	receivePerRoyaltyCost  = 10
	registerTokenCost      = 100
	changeDistributionCost = 100
	changeAdminCost        = 50
)

// RegisterRoutes registers handlers for royalty message processing.
func RegisterRoutes(r splitter.Registry, codec splitter.AddressCodec) {
	r.Handle(pathReceiveMsg, &receiveHandler{codec: codec})
	r.Handle(pathRegisterTokenMsg, &registerTokenHandler{codec: codec})
	r.Handle(pathChangeDistributionMsg, &changeDistributionHandler{codec: codec})
	r.Handle(pathChangeAdminMsg, &changeAdminHandler{codec: codec})
}

// RegisterQuery registers the royalty state for querying.
//
//   /distribution  current table as JSON, empty if not set
//   /tokens        callback of the token with the given address
//   /config        configuration as JSON
func RegisterQuery(qr splitter.QueryRouter, codec splitter.AddressCodec) {
	qr.Register("/distribution", splitter.QueryHandlerFunc(func(db splitter.ReadOnlyKVStore, _ []byte) ([]byte, error) {
		d, err := LoadDistribution(db, codec)
		switch {
		case err == nil:
			return json.Marshal(d)
		case errors.ErrNotFound.Is(err):
			return nil, nil
		default:
			return nil, err
		}
	}))
	qr.Register("/tokens", splitter.QueryHandlerFunc(func(db splitter.ReadOnlyKVStore, data []byte) ([]byte, error) {
		callback, err := LookupToken(db, data)
		switch {
		case err == nil:
			return []byte(callback), nil
		case ErrNotRegistered.Is(err):
			return nil, nil
		default:
			return nil, err
		}
	}))
	qr.Register("/config", splitter.QueryHandlerFunc(func(db splitter.ReadOnlyKVStore, _ []byte) ([]byte, error) {
		conf, err := LoadConfig(db)
		switch {
		case err == nil:
		case errors.ErrNotFound.Is(err):
			return nil, nil
		default:
			return nil, err
		}
		admin, err := codec.Human(conf.AdminAddress())
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Admin    string `json:"admin"`
			CodeHash string `json:"code_hash"`
		}{admin, conf.CodeHash})
	}))
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

// receiveHandler splits tokens received from a registered token contract.
type receiveHandler struct {
	codec splitter.AddressCodec
}

var _ splitter.Handler = (*receiveHandler)(nil)

func (h *receiveHandler) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.CheckResult, error) {
	_, ins, err := h.split(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &splitter.CheckResult{
		GasAllocated: receiveCost + receivePerRoyaltyCost*int64(len(ins)),
	}, nil
}

func (h *receiveHandler) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.DeliverResult, error) {
	msg, ins, err := h.split(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	data, err := EncodeInstructions(ins)
	if err != nil {
		return nil, err
	}

	token := ""
	if len(ins) > 0 {
		token = ins[0].Transfer.Token
	}
	splitter.GetLogger(ctx).Debug("tokens split",
		"token", token,
		"sender", msg.Sender,
		"from", msg.From,
		"amount", msg.Amount,
		"transfers", len(ins))

	return &splitter.DeliverResult{
		Data: data,
		Tags: []common.KVPair{
			tag("action", "receive"),
			tag("token", token),
		},
	}, nil
}

func (h *receiveHandler) split(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*ReceiveMsg, []*Instruction, error) {
	var msg ReceiveMsg
	if err := splitter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := LoadConfig(db); err != nil {
		return nil, nil, err
	}
	// The token contract notifies about the transfer, so the token is
	// the one signing the transaction.
	token, ok := splitter.GetSigner(ctx)
	if !ok {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "token signature required")
	}
	amount, err := fixed.ParseAmount(msg.Amount)
	if err != nil {
		return nil, nil, errors.Wrap(err, "amount")
	}
	ins, err := SplitAndForward(db, h.codec, token, amount)
	if err != nil {
		return nil, nil, err
	}
	return &msg, ins, nil
}

// registerTokenHandler adds a token contract to the directory.
type registerTokenHandler struct {
	codec splitter.AddressCodec
}

var _ splitter.Handler = (*registerTokenHandler)(nil)

func (h *registerTokenHandler) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &splitter.CheckResult{GasAllocated: registerTokenCost}, nil
}

func (h *registerTokenHandler) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.DeliverResult, error) {
	conf, msg, token, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := RegisterToken(db, token, msg.Callback); err != nil {
		return nil, errors.Wrap(err, "cannot register token")
	}

	data, err := EncodeInstructions([]*Instruction{
		NewRegisterReceive(msg.Token, msg.Callback, conf.CodeHash),
	})
	if err != nil {
		return nil, err
	}
	splitter.GetLogger(ctx).Info("token registered", "token", msg.Token)
	return &splitter.DeliverResult{
		Data: data,
		Tags: []common.KVPair{
			tag("action", "register_token"),
			tag("token", msg.Token),
		},
	}, nil
}

func (h *registerTokenHandler) validate(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*Config, *RegisterTokenMsg, splitter.Address, error) {
	var msg RegisterTokenMsg
	if err := splitter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := authorize(ctx, db)
	if err != nil {
		return nil, nil, nil, err
	}
	token, err := h.codec.Canonical(msg.Token)
	if err != nil {
		return nil, nil, nil, errors.Field("Token", err, "invalid token address")
	}
	return conf, &msg, token, nil
}

// changeDistributionHandler replaces or removes the distribution table.
type changeDistributionHandler struct {
	codec splitter.AddressCodec
}

var _ splitter.Handler = (*changeDistributionHandler)(nil)

func (h *changeDistributionHandler) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &splitter.CheckResult{GasAllocated: changeDistributionCost}, nil
}

func (h *changeDistributionHandler) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := ValidateAndStore(db, h.codec, msg.Distribution, nil); err != nil {
		return nil, err
	}
	if msg.Distribution == nil {
		splitter.GetLogger(ctx).Info("distribution removed")
	} else {
		splitter.GetLogger(ctx).Info("distribution changed",
			"decimal_places", msg.Distribution.DecimalPlaces,
			"royalties", len(msg.Distribution.Royalties))
	}
	return &splitter.DeliverResult{
		Tags: []common.KVPair{tag("action", "change_distribution")},
	}, nil
}

func (h *changeDistributionHandler) validate(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*ChangeDistributionMsg, error) {
	var msg ChangeDistributionMsg
	if err := splitter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := authorize(ctx, db); err != nil {
		return nil, err
	}
	if msg.Distribution != nil {
		if _, err := canonicalDistribution(h.codec, msg.Distribution); err != nil {
			return nil, err
		}
	}
	return &msg, nil
}

// changeAdminHandler hands the configuration over to a new admin.
type changeAdminHandler struct {
	codec splitter.AddressCodec
}

var _ splitter.Handler = (*changeAdminHandler)(nil)

func (h *changeAdminHandler) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &splitter.CheckResult{GasAllocated: changeAdminCost}, nil
}

func (h *changeAdminHandler) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.DeliverResult, error) {
	conf, admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.Admin = admin
	if err := SaveConfig(db, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save config")
	}
	splitter.GetLogger(ctx).Info("admin changed", "admin", admin)
	return &splitter.DeliverResult{
		Tags: []common.KVPair{tag("action", "change_admin")},
	}, nil
}

func (h *changeAdminHandler) validate(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*Config, splitter.Address, error) {
	var msg ChangeAdminMsg
	if err := splitter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := authorize(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	admin, err := h.codec.Canonical(msg.Admin)
	if err != nil {
		return nil, nil, errors.Field("Admin", err, "invalid admin address")
	}
	return conf, admin, nil
}
