// Package provider holds the operation registries the calculator evaluates
// against: a name to operation table plus a literal parser per scalar type.
package provider

import (
	"errors"
	"fmt"
	"sort"

	op "github.com/XJIeI5/calculator/internal/operation"
)

var (
	ErrNumberFormat    = errors.New("number format")
	ErrIllegalArgument = errors.New("illegal argument")
	ErrOperationExists = errors.New("operation already exists")
	ErrDomain          = errors.New("arithmetic domain error")
)

type Provider[T any] interface {
	// Lookup returns the operation registered under name, if any.
	Lookup(name string) (op.Operation[T], bool)
	// ParseOperand reads token as a literal of T. The error wraps
	// ErrNumberFormat when token is not a literal.
	ParseOperand(token string) (T, error)
}

type Inserter[T any] interface {
	Insert(name string, operation op.Operation[T]) error
}

// Registry is a mutable Provider. It is not safe for inserts concurrent with
// lookups; callers sharing one across goroutines must lock around Insert.
type Registry[T any] struct {
	operations map[string]op.Operation[T]
	parse      func(string) (T, error)
}

func NewRegistry[T any](parse func(string) (T, error), builtin map[string]op.Operation[T]) *Registry[T] {
	ops := make(map[string]op.Operation[T], len(builtin))
	for name, operation := range builtin {
		ops[name] = operation
	}
	return &Registry[T]{operations: ops, parse: parse}
}

func (r *Registry[T]) Lookup(name string) (op.Operation[T], bool) {
	operation, ok := r.operations[name]
	return operation, ok
}

func (r *Registry[T]) ParseOperand(token string) (T, error) {
	return r.parse(token)
}

// Insert registers operation under name. It fails with ErrOperationExists
// when name is taken and with ErrIllegalArgument when name is empty, is a
// literal of T or operation is empty. The registry is unchanged on failure.
func (r *Registry[T]) Insert(name string, operation op.Operation[T]) error {
	if name == "" || operation.IsZero() {
		return fmt.Errorf("%w: empty name or operation", ErrIllegalArgument)
	}
	if _, ok := r.operations[name]; ok {
		return fmt.Errorf("%w: %q", ErrOperationExists, name)
	}
	if _, err := r.parse(name); err == nil {
		return fmt.Errorf("%w: %q is a literal operand", ErrIllegalArgument, name)
	}
	r.operations[name] = operation
	return nil
}

func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.operations))
	for name := range r.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
