package battles

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-clash/internal/redis"
)

const (
	// Key pattern: battle:{id}
	battleKeyPrefix = "battle:"
	// KeyPattern matches every stored battle
	KeyPattern = battleKeyPrefix + "*"
	// DefaultTTL is how long an idle battle is kept
	DefaultTTL = 2 * time.Hour
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL is refreshed on every write. Zero means DefaultTTL.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

var _ Repository = (*redisRepository)(nil)

// NewRedisRepository creates a Redis repository for battle sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		ttl:    ttl,
	}, nil
}

// Create stores a new battle with the configured TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateBattle(input.Battle); err != nil {
		return nil, err
	}

	b := input.Battle.Clone()
	now := r.clock.Now().Unix()
	b.CreatedAt = now
	b.UpdatedAt = now

	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle")
	}

	ok, err := r.client.SetNX(ctx, battleKeyPrefix+b.ID, data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store battle in Redis")
	}
	if !ok {
		return nil, errors.AlreadyExistsf("battle %s already exists", b.ID)
	}

	return &CreateOutput{Battle: b}, nil
}

// Get retrieves a battle by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	data, err := r.client.Get(ctx, battleKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("battle %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get battle from Redis")
	}

	var b entities.Battle
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal battle")
	}

	return &GetOutput{Battle: &b}, nil
}

// Update replaces a battle that still exists and refreshes its TTL
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateBattle(input.Battle); err != nil {
		return nil, err
	}

	b := input.Battle.Clone()
	b.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle")
	}

	ok, err := r.client.SetXX(ctx, battleKeyPrefix+b.ID, data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update battle in Redis")
	}
	if !ok {
		return nil, errors.NotFoundf("battle %s not found", b.ID)
	}

	return &UpdateOutput{Battle: b}, nil
}

// Delete removes a battle
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	n, err := r.client.Del(ctx, battleKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle from Redis")
	}
	if n == 0 {
		return nil, errors.NotFoundf("battle %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
