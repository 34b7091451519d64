package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iov-one/splitter/x/royalty"
)

// royaltiesFlag collects "<recipient>:<rate>" values. The flag can be
// given multiple times, the order is kept.
type royaltiesFlag []*royalty.Royalty

func (r *royaltiesFlag) String() string {
	if r == nil {
		return ""
	}
	chunks := make([]string, 0, len(*r))
	for _, ro := range *r {
		chunks = append(chunks, fmt.Sprintf("%s:%d", ro.Recipient, ro.Rate))
	}
	return strings.Join(chunks, ",")
}

func (r *royaltiesFlag) Set(raw string) error {
	chunks := strings.Split(raw, ":")
	if len(chunks) != 2 {
		return fmt.Errorf("invalid royalty %q, want <recipient>:<rate>", raw)
	}
	rate, err := strconv.ParseUint(chunks[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %s", chunks[1], err)
	}
	*r = append(*r, &royalty.Royalty{Recipient: chunks[0], Rate: rate})
	return nil
}
