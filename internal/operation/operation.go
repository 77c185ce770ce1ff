package op

import (
	"errors"
	"fmt"
)

var ErrArityMismatch = errors.New("arity mismatch")

type Arity int

const (
	Nullary Arity = iota
	Unary
	Binary
)

func (a Arity) String() string {
	switch a {
	case Nullary:
		return "nullary"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("arity(%d)", int(a))
	}
}

// Operation is one of three function shapes over T. Exactly one of the
// function fields is set, the one matching arity.
type Operation[T any] struct {
	arity   Arity
	nullary func() (T, error)
	unary   func(T) (T, error)
	binary  func(T, T) (T, error)
}

func NewNullary[T any](f func() T) Operation[T] {
	return NewNullaryErr(func() (T, error) { return f(), nil })
}

func NewUnary[T any](f func(a T) T) Operation[T] {
	return NewUnaryErr(func(a T) (T, error) { return f(a), nil })
}

func NewBinary[T any](f func(a, b T) T) Operation[T] {
	return NewBinaryErr(func(a, b T) (T, error) { return f(a, b), nil })
}

func NewNullaryErr[T any](f func() (T, error)) Operation[T] {
	return Operation[T]{arity: Nullary, nullary: f}
}

func NewUnaryErr[T any](f func(a T) (T, error)) Operation[T] {
	return Operation[T]{arity: Unary, unary: f}
}

func NewBinaryErr[T any](f func(a, b T) (T, error)) Operation[T] {
	return Operation[T]{arity: Binary, binary: f}
}

func (o Operation[T]) Arity() Arity { return o.arity }

// IsZero reports whether o was built without a constructor.
func (o Operation[T]) IsZero() bool {
	return o.nullary == nil && o.unary == nil && o.binary == nil
}

func (o Operation[T]) Apply(args ...T) (T, error) {
	var res T
	if o.IsZero() {
		return res, errors.New("apply of empty operation")
	}
	if len(args) != int(o.arity) {
		return res, fmt.Errorf("%w: %s operation got %d arguments", ErrArityMismatch, o.arity, len(args))
	}

	switch o.arity {
	case Nullary:
		return o.nullary()
	case Unary:
		return o.unary(args[0])
	default:
		return o.binary(args[0], args[1])
	}
}
