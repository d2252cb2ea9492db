package character

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]entities.Character
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]entities.Character),
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Character.ID]; exists {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
	}

	char := copyCharacter(input.Character)
	now := r.clock.Now().Unix()
	char.CreatedAt = now
	char.UpdatedAt = now
	r.store[char.ID] = *char

	return &CreateOutput{Character: copyCharacter(char)}, nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}
	return &GetOutput{Character: copyCharacter(&char)}, nil
}

// Update replaces an existing character
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.store[input.Character.ID]
	if !exists {
		return nil, errors.NotFoundf("character with ID %s not found", input.Character.ID)
	}

	char := copyCharacter(input.Character)
	char.CreatedAt = existing.CreatedAt
	char.UpdatedAt = r.clock.Now().Unix()
	r.store[char.ID] = *char

	return &UpdateOutput{Character: copyCharacter(char)}, nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// ListByPlayerID returns a player's characters ordered by ID
func (r *InMemoryRepository) ListByPlayerID(_ context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Character
	for _, char := range r.store {
		if char.PlayerID == input.PlayerID {
			out = append(out, copyCharacter(&char))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return &ListByPlayerIDOutput{Characters: out}, nil
}

func copyCharacter(c *entities.Character) *entities.Character {
	out := *c
	out.Cards = append([]string(nil), c.Cards...)
	out.Artifact = c.Artifact.Clone()
	out.Engraved = c.Engraved.Clone()
	return &out
}
