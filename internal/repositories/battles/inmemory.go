package battles

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage.
// Stored battles never expire.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*entities.Battle
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*entities.Battle),
	}
}

// Create stores a new battle
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateBattle(input.Battle); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Battle.ID]; exists {
		return nil, errors.AlreadyExistsf("battle %s already exists", input.Battle.ID)
	}

	b := input.Battle.Clone()
	now := r.clock.Now().Unix()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.store[b.ID] = b

	return &CreateOutput{Battle: b.Clone()}, nil
}

// Get retrieves a battle by ID. The result is a copy.
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("battle %s not found", input.ID)
	}
	return &GetOutput{Battle: b.Clone()}, nil
}

// Update replaces a stored battle
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateBattle(input.Battle); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.store[input.Battle.ID]
	if !exists {
		return nil, errors.NotFoundf("battle %s not found", input.Battle.ID)
	}

	b := input.Battle.Clone()
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = r.clock.Now().Unix()
	r.store[b.ID] = b

	return &UpdateOutput{Battle: b.Clone()}, nil
}

// Delete removes a battle
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("battle %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

func validateBattle(b *entities.Battle) error {
	if b == nil {
		return errors.InvalidArgument(errBattleNil)
	}
	if b.ID == "" {
		return errors.InvalidArgument(errBattleIDEmpty)
	}
	return nil
}
