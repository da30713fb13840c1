package shared

import (
	"context"
)

// Specification encapsulates a query-side business rule. IsSatisfiedBy is
// the in-memory form, used by test repositories; the persistence layer
// translates known specification types to SQL instead of loading and
// filtering.
type Specification interface {
	IsSatisfiedBy(ctx context.Context, entity interface{}) bool
}

// AndSpecification is the conjunction of two specifications. Composition
// is conjunctive only; every translated specification narrows the result.
type AndSpecification struct {
	Left  Specification
	Right Specification
}

func (spec AndSpecification) IsSatisfiedBy(ctx context.Context, entity interface{}) bool {
	return spec.Left.IsSatisfiedBy(ctx, entity) && spec.Right.IsSatisfiedBy(ctx, entity)
}

// And combines two specifications.
func And(left, right Specification) Specification {
	return AndSpecification{
		Left:  left,
		Right: right,
	}
}
