package audit

import (
	"context"
	"log/slog"
)

// ChanPublisher hands events to a background worker over a buffered channel.
// Publish never blocks the mutation path: if the buffer is full the event is
// dropped and logged, which is preferable to stalling seat operations on a
// slow audit sink.
type ChanPublisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewChanPublisher(inbox chan<- Event, logger *slog.Logger) *ChanPublisher {
	return &ChanPublisher{inbox: inbox, logger: logger}
}

func (p *ChanPublisher) Publish(ctx context.Context, event Event) {
	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit inbox full, event dropped",
				"action", event.Action,
				"seat_id", event.SeatID,
			)
		}
	}
}

// NopPublisher discards events. Used where audit wiring is optional.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
