package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

func TestEventQueueOrdersByTime(t *testing.T) {
	q := NewEventQueue()
	q.Push(hssmodel.Event{Time: 5})
	q.Push(hssmodel.Event{Time: 1})
	q.Push(hssmodel.Event{Time: 3})

	e, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1.0, e.Time)

	e, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 3.0, e.Time)

	e, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 5.0, e.Time)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestEventQueueTiesAreFIFO(t *testing.T) {
	q := NewEventQueue()
	q.Push(hssmodel.Event{Time: 1, TaskID: 1})
	q.Push(hssmodel.Event{Time: 1, TaskID: 2})
	q.Push(hssmodel.Event{Time: 1, TaskID: 3})

	e1, _ := q.Pop()
	e2, _ := q.Pop()
	e3, _ := q.Pop()
	assert.Equal(t, hssmodel.TaskID(1), e1.TaskID)
	assert.Equal(t, hssmodel.TaskID(2), e2.TaskID)
	assert.Equal(t, hssmodel.TaskID(3), e3.TaskID)
}

func TestEventQueuePeekDoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	q.Push(hssmodel.Event{Time: 2})

	_, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 1, q.Len())
}
