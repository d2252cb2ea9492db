package battles

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-clash/internal/redis"
)

// SweepInput configures a scan of stored battles
type SweepInput struct {
	// Delete removes the corrupted keys instead of only reporting them
	Delete bool
}

// SweepOutput reports what a sweep found
type SweepOutput struct {
	Checked   int
	Corrupted []CorruptBattle
	Deleted   int
}

// CorruptBattle is a stored battle that cannot be resumed
type CorruptBattle struct {
	Key    string
	Reason string
}

// Sweep scans every battle key and flags sessions that no longer decode or
// whose shape cannot be resumed.
func Sweep(ctx context.Context, client redisclient.Client, input SweepInput) (*SweepOutput, error) {
	if client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}

	out := &SweepOutput{}
	iter := client.Scan(ctx, 0, KeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		out.Checked++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			if err == redisclient.Nil {
				// expired between scan and read
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		if reason := inspect(key, data); reason != "" {
			slog.Warn("Corrupted battle", "key", key, "reason", reason)
			out.Corrupted = append(out.Corrupted, CorruptBattle{Key: key, Reason: reason})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan battles")
	}

	if !input.Delete {
		return out, nil
	}

	for _, c := range out.Corrupted {
		n, err := client.Del(ctx, c.Key).Result()
		if err != nil {
			return out, errors.Wrapf(err, "failed to delete %s", c.Key)
		}
		out.Deleted += int(n)
	}
	return out, nil
}

func inspect(key, data string) string {
	var b entities.Battle
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return "invalid json"
	}
	if b.ID != strings.TrimPrefix(key, battleKeyPrefix) {
		return "id does not match key"
	}
	switch b.Topology {
	case entities.TopologyDuel, entities.TopologyHunt, entities.TopologyRaid:
	default:
		return "unknown topology " + string(b.Topology)
	}
	if len(b.SideA) == 0 || len(b.SideB) == 0 {
		return "missing a side"
	}
	return ""
}
