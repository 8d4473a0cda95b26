// Package history provides the bounded stacks behind undo and redo.
package history

// DefaultLimit is how many snapshots a stack keeps.
const DefaultLimit = 50

// Stack is a LIFO with a fixed capacity. Pushing onto a full stack silently
// drops the oldest entry.
type Stack[T any] struct {
	items []T
	limit int
}

// NewStack creates a stack holding at most limit entries. A non-positive
// limit falls back to DefaultLimit.
func NewStack[T any](limit int) *Stack[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack[T]{
		items: make([]T, 0, limit),
		limit: limit,
	}
}

// Push adds an entry on top.
func (s *Stack[T]) Push(v T) {
	if len(s.items) == s.limit {
		var zero T
		s.items[0] = zero
		s.items = append(s.items[:0], s.items[1:]...)
	}
	s.items = append(s.items, v)
}

// Pop removes and returns the top entry.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return v, true
}

// Peek returns the top entry without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len is the number of entries held.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Limit is the capacity of the stack.
func (s *Stack[T]) Limit() int {
	return s.limit
}

// Clear drops every entry.
func (s *Stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
