// Package idgen issues identifiers for battles and other stored records
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// Func adapts a plain function to Generator
type Func func() string

// Generate implements Generator
func (f Func) Generate() string {
	return f()
}

// NewSequential numbers IDs from 1 (prefix_1, prefix_2, ...). Tests use it
// for predictable battle IDs; it is safe for concurrent use.
func NewSequential(prefix string) Generator {
	var n atomic.Uint64
	return Func(func() string {
		return join(prefix, strconv.FormatUint(n.Add(1), 10))
	})
}

// NewUUID returns random v4 UUIDs behind the prefix
func NewUUID(prefix string) Generator {
	return Func(func() string {
		return join(prefix, uuid.NewString())
	})
}

func join(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
