package app

import (
	"encoding/json"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/x/royalty"
)

// GenInitOptions produces the app_state for a new chain:
//
//   init <admin> <token> <token_callback> [code_hash]
//
// The admin receives the whole distribution until it is changed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	if len(args) < 3 {
		return nil, errors.Wrap(errors.ErrInput, "usage: init <admin> <token> <token_callback> [code_hash]")
	}
	admin, token, callback := args[0], args[1], args[2]
	var codeHash string
	if len(args) > 3 {
		codeHash = args[3]
	}

	codec := splitter.NewBech32()
	if _, err := codec.Canonical(admin); err != nil {
		return nil, errors.Wrap(err, "admin")
	}
	if _, err := codec.Canonical(token); err != nil {
		return nil, errors.Wrap(err, "token")
	}

	type dict map[string]interface{}
	return json.Marshal(dict{
		"royalty": royalty.InitParams{
			Admin: admin,
			Distribution: &royalty.Distribution{
				DecimalPlaces: 0,
				Royalties: []*royalty.Royalty{
					{Recipient: admin, Rate: 1},
				},
			},
			Token:         token,
			TokenCallback: callback,
			CodeHash:      codeHash,
		},
	})
}
