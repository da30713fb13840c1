package shared

import "context"

// UnitOfWork manages the transaction boundary and collects domain events
// from registered aggregates into the outbox within the same transaction.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory produces a fresh UnitOfWork per request. Units of work
// accumulate registered aggregates and must not be shared across requests.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events for asynchronous publishing.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
