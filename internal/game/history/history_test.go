package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_PushPop(t *testing.T) {
	t.Parallel()

	s := NewStack[int](3)
	_, ok := s.Pop()
	assert.False(t, ok, "empty stack")

	s.Push(1)
	s.Push(2)
	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, top)

	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, s.Len())
}

func TestStack_DropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	s := NewStack[int](3)
	for i := 1; i <= 5; i++ {
		s.Push(i)
	}
	assert.Equal(t, 3, s.Len())

	var popped []int
	for {
		v, ok := s.Pop()
		if !ok {
			break
		}
		popped = append(popped, v)
	}
	assert.Equal(t, []int{5, 4, 3}, popped)
}

func TestStack_DefaultLimit(t *testing.T) {
	t.Parallel()

	s := NewStack[string](0)
	assert.Equal(t, DefaultLimit, s.Limit())

	for range DefaultLimit + 10 {
		s.Push("x")
	}
	assert.Equal(t, DefaultLimit, s.Len())
}

func TestStack_Clear(t *testing.T) {
	t.Parallel()

	s := NewStack[*int](2)
	v := 7
	s.Push(&v)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Peek()
	assert.False(t, ok)
}
