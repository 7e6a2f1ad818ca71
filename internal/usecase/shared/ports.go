package shared

import "context"

// StateRepository is the persistence port: read once at start, write after
// every mutation.
type StateRepository interface {
	Load(ctx context.Context) (*PromotionsSnapshot, error)
	Save(ctx context.Context, change StateChange) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
