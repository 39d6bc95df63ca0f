// Package queue implements the two priority-queue primitives the simulator
// needs: a global event queue ordered by time, and a per-component ready
// queue ordered by the two-level scheduler's priority key, supporting
// arbitrary-element removal for the task-arrival abort policy.
package queue

import (
	"container/heap"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// EventQueue is a min-heap of events ordered by (Time, Seq); Seq is assigned
// at Push time so that events inserted earlier at a later-sorted time still
// lose to anything already due, and ties at identical Time resolve FIFO.
type EventQueue struct {
	items  eventHeap
	nextSeq uint64
}

// NewEventQueue returns an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.items)
	return q
}

// Push enqueues e, stamping it with the next sequence number.
func (q *EventQueue) Push(e hssmodel.Event) {
	e.Seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.items, e)
}

// PushBefore enqueues e exactly as Push does, with the next sequence
// number, so it does not jump ahead of events already queued at the same
// Time. Because Seq only tie-breaks equal Time, and a completion generated
// mid-slice always has Time <= every later event's Time, that is enough for
// it to sort ahead of every event with a strictly greater Time; PushBefore
// exists to make that invariant explicit at call sites inside idle time
// processing.
func (q *EventQueue) PushBefore(e hssmodel.Event) {
	q.Push(e)
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (hssmodel.Event, bool) {
	if len(q.items) == 0 {
		return hssmodel.Event{}, false
	}
	return q.items[0], true
}

// Pop removes and returns the earliest event.
func (q *EventQueue) Pop() (hssmodel.Event, bool) {
	if len(q.items) == 0 {
		return hssmodel.Event{}, false
	}
	e := heap.Pop(&q.items).(hssmodel.Event)
	return e, true
}

// Len reports how many events remain queued.
func (q *EventQueue) Len() int { return len(q.items) }

type eventHeap []hssmodel.Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Seq < h[j].Seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(hssmodel.Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
