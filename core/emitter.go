package core

import (
	"log/slog"

	"threadloop/core/events"
)

// slogEmitter forwards ledger events to the node's structured logger so every
// committed state change leaves an audit line.
type slogEmitter struct {
	logger *slog.Logger
}

func (e slogEmitter) Emit(evt events.Event) {
	if e.logger == nil || evt == nil {
		return
	}
	e.logger.Info("ledger event", slog.String("type", evt.EventType()), slog.Any("event", evt))
}
