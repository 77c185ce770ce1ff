package datastructs

import (
	"errors"
	"fmt"
)

const (
	initialCapacity = 8
	resizeFactor    = 2
)

var ErrIllegalArgument = errors.New("illegal argument")

// Stack is a LIFO backed by an array that doubles when full.
// Pop and Peek report absence with a false second value.
type Stack[T any] struct {
	arr  []T
	size int
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{arr: make([]T, initialCapacity)}
}

func NewStackWithCapacity[T any](capacity int) (*Stack[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrIllegalArgument, capacity)
	}
	return &Stack[T]{arr: make([]T, capacity)}, nil
}

// FromSlice builds a stack whose top is the last element of elems.
func FromSlice[T any](elems []T) *Stack[T] {
	arr := make([]T, max(len(elems)*resizeFactor, initialCapacity))
	copy(arr, elems)
	return &Stack[T]{arr: arr, size: len(elems)}
}

func (s *Stack[T]) EnsureCapacity(capacity int) {
	if len(s.arr) < capacity {
		arr := make([]T, capacity)
		copy(arr, s.arr[:s.size])
		s.arr = arr
	}
}

func (s *Stack[T]) Size() int { return s.size }

func (s *Stack[T]) IsEmpty() bool { return s.size == 0 }

func (s *Stack[T]) Push(elem T) {
	if s.size >= len(s.arr) {
		s.EnsureCapacity(max(len(s.arr)*resizeFactor, initialCapacity))
	}
	s.arr[s.size] = elem
	s.size++
}

// PushStack puts every element of other on top of s, bottom first.
// other is left untouched.
func (s *Stack[T]) PushStack(other *Stack[T]) error {
	if other == nil {
		return fmt.Errorf("%w: nil stack", ErrIllegalArgument)
	}
	s.EnsureCapacity(s.size + other.size)
	copy(s.arr[s.size:], other.arr[:other.size])
	s.size += other.size
	return nil
}

func (s *Stack[T]) Peek() (T, bool) {
	if s.size == 0 {
		var zero T
		return zero, false
	}
	return s.arr[s.size-1], true
}

func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if s.size == 0 {
		return zero, false
	}
	s.size--
	elem := s.arr[s.size]
	s.arr[s.size] = zero
	return elem, true
}

// PopStack removes the n top elements and returns them as a new stack,
// keeping their order. n larger than Size takes everything; n == 0 returns
// a clone and leaves s as is.
func (s *Stack[T]) PopStack(n int) (*Stack[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: can't take %d elements", ErrIllegalArgument, n)
	}
	if n == 0 {
		return s.Clone(), nil
	}

	n = min(n, s.size)
	taken := FromSlice(s.arr[s.size-n : s.size])
	clear(s.arr[s.size-n : s.size])
	s.size -= n
	return taken, nil
}

func (s *Stack[T]) Clone() *Stack[T] {
	arr := make([]T, max(s.size, initialCapacity))
	copy(arr, s.arr[:s.size])
	return &Stack[T]{arr: arr, size: s.size}
}

// Slice returns the elements bottom first.
func (s *Stack[T]) Slice() []T {
	res := make([]T, s.size)
	copy(res, s.arr[:s.size])
	return res
}

func Equal[T comparable](a, b *Stack[T]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.size != b.size {
		return false
	}
	for i := 0; i < a.size; i++ {
		if a.arr[i] != b.arr[i] {
			return false
		}
	}
	return true
}
