package royalty

import (
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/gconf"
)

// InitParams is the configuration this extension starts with.
type InitParams struct {
	Admin         string        `json:"admin"`
	Distribution  *Distribution `json:"distribution"`
	Token         string        `json:"token"`
	TokenCallback string        `json:"token_callback"`
	CodeHash      string        `json:"code_hash"`
}

// Init stores the initial configuration, distribution table and registered
// token. It can be called only once for a store.
//
// The returned instruction asks the token to notify this application about
// received tokens.
func Init(db splitter.KVStore, codec splitter.AddressCodec, params InitParams) ([]*Instruction, error) {
	switch ok, err := IsInitialized(db); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrap(errors.ErrState, "already initialized")
	}

	admin, err := codec.Canonical(params.Admin)
	if err != nil {
		return nil, errors.Field("Admin", err, "invalid admin address")
	}
	token, err := codec.Canonical(params.Token)
	if err != nil {
		return nil, errors.Field("Token", err, "invalid token address")
	}
	if params.Distribution == nil {
		return nil, errors.Field("Distribution", errors.ErrEmpty, "distribution is required")
	}
	dist, err := canonicalDistribution(codec, params.Distribution)
	if err != nil {
		return nil, err
	}

	// Nothing is written until every parameter was converted.
	conf := Config{Admin: admin, CodeHash: params.CodeHash}
	if err := SaveConfig(db, &conf); err != nil {
		return nil, errors.Wrap(err, "cannot save config")
	}
	if err := gconf.Save(db, distributionKey, dist); err != nil {
		return nil, errors.Wrap(err, "cannot save distribution")
	}
	if err := RegisterToken(db, token, params.TokenCallback); err != nil {
		return nil, errors.Wrap(err, "cannot register token")
	}
	return []*Instruction{
		NewRegisterReceive(params.Token, params.TokenCallback, params.CodeHash),
	}, nil
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file.
type Initializer struct {
	Codec splitter.AddressCodec
}

var _ splitter.Initializer = (*Initializer)(nil)

// FromGenesis reads the "royalty" options. The genesis distribution must
// pass the same rates check as any later change.
func (i *Initializer) FromGenesis(ctx splitter.Context, opts splitter.Options, db splitter.KVStore) error {
	var params InitParams
	if err := opts.ReadOptions("royalty", &params); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if params.Distribution != nil {
		if err := ValidateDistribution(params.Distribution); err != nil {
			return errors.Wrap(err, "genesis distribution")
		}
	}
	ins, err := Init(db, i.Codec, params)
	if err != nil {
		return errors.Wrap(err, "cannot initialize royalty")
	}
	for _, in := range ins {
		splitter.GetLogger(ctx).Info("register receive",
			"token", in.RegisterReceive.Token,
			"code_hash", in.RegisterReceive.CodeHash)
	}
	return nil
}
