package battle

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-clash/internal/engine/clash"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
)

// Event types published on the bus, one per clash event kind
const (
	EventTypeClash   = "clash.clash"
	EventTypeTrigger = "clash.trigger"
	EventTypeStatus  = "clash.status"
	EventTypeDrain   = "clash.drain"
	EventTypeDefeat  = "clash.defeat"
	EventTypeSummary = "clash.summary"
)

// EventTypes lists every type the orchestrator publishes
var EventTypes = []string{
	EventTypeClash,
	EventTypeTrigger,
	EventTypeStatus,
	EventTypeDrain,
	EventTypeDefeat,
	EventTypeSummary,
}

// EventType maps a clash event kind to its bus type
func EventType(kind clash.EventKind) string {
	return "clash." + string(kind)
}

// TurnEvent is what subscribers receive. Handlers type-assert the bus event
// to *TurnEvent to read the log entry.
type TurnEvent struct {
	*events.GameEvent
	BattleID string
	Entry    clash.Event
}

func (o *orchestrator) publish(ctx context.Context, b *entities.Battle, entries []clash.Event) {
	for _, e := range entries {
		ev := &TurnEvent{
			GameEvent: events.NewGameEvent(EventType(e.Kind), entity(b, e.ActorID), entity(b, e.TargetID)),
			BattleID:  b.ID,
			Entry:     e,
		}

		if err := o.eventBus.Publish(ctx, ev); err != nil {
			slog.Warn("Failed to publish battle event",
				"battle_id", b.ID,
				"kind", e.Kind,
				"error", err,
			)
		}
	}
}

// entity keeps a missing combatant a true nil interface
func entity(b *entities.Battle, id string) core.Entity {
	if id == "" {
		return nil
	}
	if c := b.Combatant(id); c != nil {
		return c
	}
	return nil
}
