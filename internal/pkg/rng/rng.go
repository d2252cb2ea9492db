// Package rng provides seeded dice rollers so a battle can be replayed from
// its seed.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

// turnStride separates the per-turn streams derived from one battle seed.
const turnStride = 1_000_003

// Seeded is a dice.Roller backed by math/rand with a fixed seed.
// It is safe for concurrent use.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ dice.Roller = (*Seeded)(nil)

// NewSeeded creates a roller whose sequence is fully determined by seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- game rolls, not secrets
}

// ForTurn derives the roller for one turn of a battle
func ForTurn(seed int64, turn int) *Seeded {
	return NewSeeded(seed + int64(turn)*turnStride)
}

// Roll returns a value in [1, size]
func (s *Seeded) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Intn(size) + 1, nil
}

// RollN rolls count dice of the given size
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if count <= 0 {
		return nil, errors.InvalidArgumentf("dice count must be positive: %d", count)
	}

	results := make([]int, count)
	for i := range results {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// NewSeed generates a battle seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "failed to read random seed")
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
