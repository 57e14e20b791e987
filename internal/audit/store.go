package audit

import "context"

// Store is an append-only audit event sink.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByVisitor(ctx context.Context, visitorID string) ([]Event, error)
}
