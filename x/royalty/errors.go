package royalty

import (
	"github.com/iov-one/splitter/errors"
)

// royalty extension reserves error codes 100~109

var (
	// ErrRates is returned when the rates of a distribution table do not
	// add up to exactly 100%.
	ErrRates = errors.Register(100, "rates do not sum to 100%")

	// ErrNotRegistered is returned when tokens are received from a token
	// contract that was never registered.
	ErrNotRegistered = errors.Register(101, "token not registered")
)
