// Package calculator evaluates prefix (Polish notation) expressions such as
// "+ 2+3i 3+2i" against a provider.Provider.
package calculator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/XJIeI5/calculator/internal/datastructs"
	"github.com/XJIeI5/calculator/internal/provider"
)

var (
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrMalformedExpression = errors.New("malformed expression")
)

type Calculator[T any] struct {
	provider provider.Provider[T]
}

func New[T any](p provider.Provider[T]) (*Calculator[T], error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", provider.ErrIllegalArgument)
	}
	return &Calculator[T]{provider: p}, nil
}

// NewReal returns a calculator over reg, or over a fresh real registry
// when reg is nil.
func NewReal(reg *provider.Registry[float64]) *Calculator[float64] {
	if reg == nil {
		reg = provider.NewReal()
	}
	return &Calculator[float64]{provider: reg}
}

// NewComplex returns a calculator that understands complex literals and
// operations first and falls back to the real ones through
// provider.NewRealAsComplex, so "cos PI" and "^ 2+0i 3" both work.
// Nil registries are replaced with fresh ones.
func NewComplex(cx *provider.Registry[complex128], reals *provider.Registry[float64]) *Calculator[complex128] {
	if cx == nil {
		cx = provider.NewComplex()
	}
	if reals == nil {
		reals = provider.NewReal()
	}
	return &Calculator[complex128]{provider: provider.NewComplexChain(cx, reals)}
}

func (c *Calculator[T]) Provider() provider.Provider[T] { return c.provider }

// Compute reads whitespace separated tokens from r and evaluates them.
// ok is false when r holds no tokens.
func (c *Calculator[T]) Compute(r io.Reader) (res T, ok bool, err error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var tokens []string
	for sc.Scan() {
		tokens = append(tokens, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return res, false, err
	}
	return c.ComputeTokens(tokens)
}

func (c *Calculator[T]) ComputeString(expr string) (T, bool, error) {
	return c.ComputeTokens(strings.Fields(expr))
}

// ComputeTokens walks tokens from the last to the first. Operands are
// pushed; an operation of arity n pops n values, the first popped being its
// first argument, and pushes its result.
func (c *Calculator[T]) ComputeTokens(tokens []string) (res T, ok bool, err error) {
	if len(tokens) == 0 {
		return res, false, nil
	}

	values := datastructs.NewStack[T]()
	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		if operation, found := c.provider.Lookup(token); found {
			arity := int(operation.Arity())
			if values.Size() < arity {
				return res, false, fmt.Errorf("%w: %q needs %d operands, %d available",
					ErrMalformedExpression, token, arity, values.Size())
			}
			args := make([]T, arity)
			for j := range args {
				args[j], _ = values.Pop()
			}
			v, err := operation.Apply(args...)
			if err != nil {
				return res, false, fmt.Errorf("%s: %w", token, err)
			}
			values.Push(v)
			continue
		}

		v, err := c.provider.ParseOperand(token)
		if err != nil {
			return res, false, fmt.Errorf("%w %q: %w", ErrUnknownOperation, token, err)
		}
		values.Push(v)
	}

	if values.Size() != 1 {
		return res, false, fmt.Errorf("%w: %d values left", ErrMalformedExpression, values.Size())
	}
	res, _ = values.Pop()
	return res, true, nil
}
