package provider

import (
	"errors"
	"fmt"

	op "github.com/XJIeI5/calculator/internal/operation"
)

// Chain asks its providers in order; the first one that knows a name or
// parses a token wins. Inserts go to the first provider.
type Chain[T any] []Provider[T]

// NewComplexChain puts the complex registry in front of the real one seen
// through NewRealAsComplex.
func NewComplexChain(cx *Registry[complex128], reals *Registry[float64]) Chain[complex128] {
	return Chain[complex128]{cx, NewRealAsComplex(reals)}
}

// Lookup never returns an operation for a token some member parses as a
// literal, even when another member registered that name.
func (c Chain[T]) Lookup(name string) (op.Operation[T], bool) {
	for _, p := range c {
		if operation, ok := p.Lookup(name); ok {
			if c.isLiteral(name) {
				break
			}
			return operation, true
		}
	}
	return op.Operation[T]{}, false
}

func (c Chain[T]) isLiteral(token string) bool {
	for _, p := range c {
		if _, err := p.ParseOperand(token); err == nil {
			return true
		}
	}
	return false
}

func (c Chain[T]) ParseOperand(token string) (T, error) {
	var (
		zero T
		errs []error
	)
	for _, p := range c {
		v, err := p.ParseOperand(token)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return zero, fmt.Errorf("%w: %q: no providers", ErrNumberFormat, token)
	}
	return zero, errors.Join(errs...)
}

// Insert applies the registry rules across the whole chain: a name known to
// or parsed by any provider is rejected.
func (c Chain[T]) Insert(name string, operation op.Operation[T]) error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty chain", ErrIllegalArgument)
	}
	first, ok := c[0].(Inserter[T])
	if !ok {
		return fmt.Errorf("%w: first provider is read-only", ErrIllegalArgument)
	}
	if _, ok := c.Lookup(name); ok {
		return fmt.Errorf("%w: %q", ErrOperationExists, name)
	}
	if c.isLiteral(name) {
		return fmt.Errorf("%w: %q is a literal operand", ErrIllegalArgument, name)
	}
	return first.Insert(name, operation)
}
