package character

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-clash/internal/redis"
)

// Keys: character:{id} holds the JSON record, character:player:{player_id}
// is the set of that player's character IDs.
const (
	characterKeyPrefix = "character:"
	playerIndexPrefix  = "character:player:"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

var _ Repository = (*redisRepository)(nil)

// RedisConfig contains configuration for the Redis character repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures the client is set. A nil clock falls back to the real one.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

// NewRedis creates a Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &redisRepository{client: cfg.Client, clock: c}, nil
}

func characterKey(id string) string { return characterKeyPrefix + id }

func playerKey(playerID string) string { return playerIndexPrefix + playerID }

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	char := *input.Character
	char.CreatedAt = r.clock.Now().Unix()
	char.UpdatedAt = char.CreatedAt

	data, err := json.Marshal(&char)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character %s", char.ID)
	}

	stored, err := r.client.SetNX(ctx, characterKey(char.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character %s", char.ID)
	}
	if !stored {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", char.ID)
	}

	if char.PlayerID != "" {
		if err := r.client.SAdd(ctx, playerKey(char.PlayerID), char.ID).Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to index character %s", char.ID)
		}
	}

	return &CreateOutput{Character: &char}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	char, err := r.load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: char}, nil
}

// getter is satisfied by the client and by a WATCH transaction
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *redisRepository) load(ctx context.Context, cmd getter, id string) (*entities.Character, error) {
	raw, err := cmd.Get(ctx, characterKey(id)).Bytes()
	if err == redisclient.Nil {
		return nil, errors.NotFoundf("character with ID %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character %s", id)
	}
	return decode(id, raw)
}

func decode(id string, raw []byte) (*entities.Character, error) {
	var char entities.Character
	if err := json.Unmarshal(raw, &char); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character %s", id)
	}
	return &char, nil
}

// Update replaces the record under WATCH so a concurrent write aborts this
// one instead of leaving the player index pointing at the wrong owner.
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	char := *input.Character
	key := characterKey(char.ID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		existing, err := r.load(ctx, tx, char.ID)
		if err != nil {
			return err
		}

		char.CreatedAt = existing.CreatedAt
		char.UpdatedAt = r.clock.Now().Unix()
		data, err := json.Marshal(&char)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal character %s", char.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if existing.PlayerID == char.PlayerID {
				return nil
			}
			if existing.PlayerID != "" {
				pipe.SRem(ctx, playerKey(existing.PlayerID), char.ID)
			}
			if char.PlayerID != "" {
				pipe.SAdd(ctx, playerKey(char.PlayerID), char.ID)
			}
			return nil
		})
		return err
	}, key)

	switch {
	case err == redis.TxFailedErr:
		return nil, errors.Newf(errors.CodeAborted, "character %s changed during update", char.ID)
	case err != nil:
		return nil, errors.Wrapf(err, "failed to update character %s", char.ID)
	}

	return &UpdateOutput{Character: &char}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	existing, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, characterKey(input.ID))
		if pid := existing.Character.PlayerID; pid != "" {
			pipe.SRem(ctx, playerKey(pid), input.ID)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %s", input.ID)
	}

	return &DeleteOutput{}, nil
}

// ListByPlayerID fetches every indexed record in one MGET. IDs whose record
// is gone are pruned from the index.
func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerKey(input.PlayerID)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read index %s", indexKey)
	}
	if len(ids) == 0 {
		return &ListByPlayerIDOutput{Characters: []*entities.Character{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = characterKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load characters of player %s", input.PlayerID)
	}

	characters := make([]*entities.Character, 0, len(ids))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		char, err := decode(ids[i], []byte(raw))
		if err != nil {
			return nil, err
		}
		characters = append(characters, char)
	}

	if len(stale) > 0 {
		slog.WarnContext(ctx, "Pruning missing characters from player index",
			"player_id", input.PlayerID,
			"count", len(stale),
		)
		if err := r.client.SRem(ctx, indexKey, stale...).Err(); err != nil {
			slog.WarnContext(ctx, "Failed to prune player index", "index_key", indexKey, "error", err)
		}
	}

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

func validateCharacter(c *entities.Character) error {
	if c == nil {
		return errors.InvalidArgument(errCharacterNil)
	}
	if c.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	return nil
}
