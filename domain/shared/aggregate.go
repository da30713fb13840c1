package shared

// AggregateRoot is the entry point of an aggregate. All modifications go
// through its methods, it maintains the aggregate's invariants and records
// domain events for the unit of work to collect.
type AggregateRoot interface {
	// ID returns the globally unique identity.
	ID() string

	// Version returns the optimistic-lock version.
	Version() int

	// PullEvents returns and clears the recorded domain events.
	PullEvents() []DomainEvent
}

// Entity has identity; equality is by ID, not by attribute values.
type Entity interface {
	ID() string
}

// ValueObject has no identity and compares by attribute values. Go cannot
// enforce immutability, so value objects keep fields private by convention.
type ValueObject interface {
	Equals(other interface{}) bool
}
