// Package id hands out trade identifiers.
//
// Identifiers are ULIDs: 26 characters, Crockford base32, lexicographically
// sortable by creation time. Ids created within the same millisecond still
// sort in creation order because entropy comes from a monotonic reader.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a fresh trade id stamped with the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a fresh id stamped with t. Useful when back-filling
// trades from an import so ids keep the ledger order.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	v, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// only fails if entropy is exhausted within one millisecond
		panic(err)
	}
	return v.String()
}

// Created reports the creation time encoded in a trade id. Ids that are
// not ULIDs (for example the short ids of the seed set) return an error.
func Created(s string) (time.Time, error) {
	v, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ulid.Time(v.Time()), nil
}
