package audit

import "context"

// Store persists audit events. Implementations must be safe for concurrent
// use; services emit events inline with mutations.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher is the narrow emission interface services depend on. A Publisher
// may write synchronously (memory store) or hand off to a background worker.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}
