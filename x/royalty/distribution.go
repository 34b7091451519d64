package royalty

import (
	"fmt"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/fixed"
	"github.com/iov-one/splitter/gconf"
)

// distributionKey is the key under which the only distribution table is
// stored.
const distributionKey = "distribution"

func fieldRoyalty(i int) string {
	return fmt.Sprintf("Royalties.%d", i)
}

// ValidateDistribution ensures that the rates of the given table add up to
// exactly 100% for the declared precision. Precision for which 10^precision
// cannot be represented fails with errors.ErrOverflow.
func ValidateDistribution(d *Distribution) error {
	if d == nil {
		return errors.Wrap(errors.ErrEmpty, "distribution")
	}
	base, err := fixed.Base(d.DecimalPlaces)
	if err != nil {
		return errors.Field("DecimalPlaces", err, "precision too big")
	}
	total, err := fixed.Sum(d.Rates()...)
	if err != nil {
		return errors.Field("Royalties", err, "cannot sum rates")
	}
	if !total.Eq(base) {
		return errors.Wrapf(ErrRates, "sum %s, want %s", total.ToBig(), base.ToBig())
	}
	return nil
}

// ValidateAndStore replaces the stored distribution table.
//
// When a candidate is given, it must pass ValidateDistribution and every
// recipient must be a valid address for the codec.
// Without a candidate, def is stored as it is, without the rates check.
// This is meant to be used only during the initialization.
// Without both the candidate and def, the stored table is removed.
func ValidateAndStore(db splitter.KVStore, codec splitter.AddressCodec, candidate, def *Distribution) error {
	switch {
	case candidate != nil:
		if err := ValidateDistribution(candidate); err != nil {
			return err
		}
		return storeDistribution(db, codec, candidate)
	case def != nil:
		return storeDistribution(db, codec, def)
	default:
		return gconf.Delete(db, distributionKey)
	}
}

func storeDistribution(db splitter.KVStore, codec splitter.AddressCodec, d *Distribution) error {
	stored, err := canonicalDistribution(codec, d)
	if err != nil {
		return err
	}
	if err := gconf.Save(db, distributionKey, stored); err != nil {
		return errors.Wrap(err, "cannot save distribution")
	}
	return nil
}

func canonicalDistribution(codec splitter.AddressCodec, d *Distribution) (*StoredDistribution, error) {
	stored := &StoredDistribution{
		DecimalPlaces: d.DecimalPlaces,
		Royalties:     make([]*StoredRoyalty, len(d.Royalties)),
	}
	var errs error
	for i, r := range d.Royalties {
		if r == nil {
			errs = errors.AppendField(errs, fieldRoyalty(i), errors.ErrEmpty)
			continue
		}
		addr, err := codec.Canonical(r.Recipient)
		if err != nil {
			errs = errors.Append(errs, errors.Field(fieldRoyalty(i)+".Recipient", errors.ErrInput, "invalid recipient %q: %s", r.Recipient, err))
			continue
		}
		stored.Royalties[i] = &StoredRoyalty{Recipient: addr, Rate: r.Rate}
	}
	if errs != nil {
		return nil, errs
	}
	return stored, nil
}

// loadStoredDistribution returns the table in its canonical form.
func loadStoredDistribution(db splitter.ReadOnlyKVStore) (*StoredDistribution, error) {
	var stored StoredDistribution
	if err := gconf.Load(db, distributionKey, &stored); err != nil {
		return nil, errors.Wrap(err, "distribution")
	}
	return &stored, nil
}

// LoadDistribution returns the stored table with all recipients converted
// to the human readable form. It fails with errors.ErrNotFound if the
// table was never set or was removed.
func LoadDistribution(db splitter.ReadOnlyKVStore, codec splitter.AddressCodec) (*Distribution, error) {
	stored, err := loadStoredDistribution(db)
	if err != nil {
		return nil, err
	}
	d := &Distribution{
		DecimalPlaces: stored.DecimalPlaces,
		Royalties:     make([]*Royalty, len(stored.Royalties)),
	}
	for i, r := range stored.Royalties {
		human, err := codec.Human(r.Recipient)
		if err != nil {
			return nil, errors.Wrapf(err, "royalty %d recipient", i)
		}
		d.Royalties[i] = &Royalty{Recipient: human, Rate: r.Rate}
	}
	return d, nil
}
