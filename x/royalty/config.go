package royalty

import (
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/gconf"
)

// configKey is the key under which the extension configuration is stored.
const configKey = "config"

// LoadConfig returns the current configuration. errors.ErrNotFound is
// returned if the extension was never initialized.
func LoadConfig(db splitter.ReadOnlyKVStore) (*Config, error) {
	var conf Config
	if err := gconf.Load(db, configKey, &conf); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(err, "not initialized")
		}
		return nil, err
	}
	return &conf, nil
}

// SaveConfig validates and stores the configuration.
func SaveConfig(db splitter.KVStore, conf *Config) error {
	return gconf.Save(db, configKey, conf)
}

// IsInitialized returns true once the configuration exists.
func IsInitialized(db splitter.ReadOnlyKVStore) (bool, error) {
	return gconf.Exists(db, configKey)
}

// authorize loads the configuration and ensures that the transaction was
// signed by the admin.
func authorize(ctx splitter.Context, db splitter.ReadOnlyKVStore) (*Config, error) {
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	signer, ok := splitter.GetSigner(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	if !conf.AdminAddress().Equals(signer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin only")
	}
	return conf, nil
}
