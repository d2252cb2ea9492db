// Package battles stores battle sessions between turns.
package battles

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesmock github.com/KirkDiggler/rpg-clash/internal/repositories/battles Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
)

// Repository defines the storage interface for battle sessions.
// Sessions are whole documents; the last write wins.
type Repository interface {
	// Create stores a new battle
	// Returns errors.AlreadyExists if the ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a battle by ID
	// Returns errors.NotFound if it does not exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a stored battle and refreshes its expiry
	// Returns errors.NotFound if it does not exist or has expired
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a battle
	// Returns errors.NotFound if it does not exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the request for storing a new battle
type CreateInput struct {
	Battle *entities.Battle
}

// CreateOutput defines the response for storing a new battle
type CreateOutput struct {
	Battle *entities.Battle
}

// GetInput defines the request for retrieving a battle
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving a battle
type GetOutput struct {
	Battle *entities.Battle
}

// UpdateInput defines the request for replacing a battle
type UpdateInput struct {
	Battle *entities.Battle
}

// UpdateOutput defines the response for replacing a battle
type UpdateOutput struct {
	Battle *entities.Battle
}

// DeleteInput defines the request for removing a battle
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for removing a battle
type DeleteOutput struct{}

const (
	errBattleNil     = "battle cannot be nil"
	errBattleIDEmpty = "battle ID cannot be empty"
)
