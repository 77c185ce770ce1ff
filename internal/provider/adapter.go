package provider

import (
	op "github.com/XJIeI5/calculator/internal/operation"
)

// Adapter serves a Provider[U] as a Provider[T]. Arguments go through to
// before the underlying operation runs and results come back through from.
// It keeps a reference to base and does not own it.
type Adapter[T, U any] struct {
	base Provider[U]
	to   func(T) (U, error)
	from func(U) T
}

func NewAdapter[T, U any](base Provider[U], to func(T) (U, error), from func(U) T) *Adapter[T, U] {
	return &Adapter[T, U]{base: base, to: to, from: from}
}

// NewRealAsComplex exposes a real provider as a complex one. Complex
// arguments with an imaginary part fail with ErrDomain.
func NewRealAsComplex(base Provider[float64]) *Adapter[complex128, float64] {
	return NewAdapter(base, ComplexToReal, RealToComplex)
}

func (a *Adapter[T, U]) Lookup(name string) (op.Operation[T], bool) {
	operation, ok := a.base.Lookup(name)
	if !ok {
		return op.Operation[T]{}, false
	}

	switch operation.Arity() {
	case op.Nullary:
		return op.NewNullaryErr(func() (T, error) {
			return a.apply(operation)
		}), true
	case op.Unary:
		return op.NewUnaryErr(func(x T) (T, error) {
			return a.apply(operation, x)
		}), true
	default:
		return op.NewBinaryErr(func(x, y T) (T, error) {
			return a.apply(operation, x, y)
		}), true
	}
}

func (a *Adapter[T, U]) apply(operation op.Operation[U], args ...T) (T, error) {
	var res T
	converted := make([]U, len(args))
	for i, arg := range args {
		u, err := a.to(arg)
		if err != nil {
			return res, err
		}
		converted[i] = u
	}

	u, err := operation.Apply(converted...)
	if err != nil {
		return res, err
	}
	return a.from(u), nil
}

func (a *Adapter[T, U]) ParseOperand(token string) (T, error) {
	u, err := a.base.ParseOperand(token)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.from(u), nil
}
