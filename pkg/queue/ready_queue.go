package queue

import (
	"container/heap"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// readyItem wraps a TaskID with its current priority key and heap index: a
// float priority plus a tracked index so arbitrary entries can be removed
// or re-prioritised in O(log n) instead of requiring a full heap rebuild.
type readyItem struct {
	taskID    hssmodel.TaskID
	priority  float64
	heapIndex int
}

type readyHeap []*readyItem

func (h readyHeap) Len() int { return len(h) }

func (h readyHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].taskID < h[j].taskID
}

func (h readyHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *readyHeap) Push(x any) {
	item := x.(*readyItem)
	item.heapIndex = len(*h)
	*h = append(*h, item)
}

func (h *readyHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	item.heapIndex = -1
	*h = old[:n-1]
	return item
}

// ReadyQueue is a terminal component's min-heap of ready TaskExecutions,
// keyed by the scheduler-appropriate priority (period for RM, absolute
// deadline for EDF), ties broken by TaskID for a deterministic order.
// readyIndex implements heap.Interface over the shared items slice so that
// Swap can keep the taskID->index map authoritative for O(log n) arbitrary
// removal.
type ReadyQueue struct {
	items readyHeap
	index map[hssmodel.TaskID]int
	idx   *readyIndex
}

// readyIndex is the heap.Interface adapter: it owns no state of its own, it
// delegates to the ReadyQueue it points at so Swap can update q.index.
type readyIndex struct{ q *ReadyQueue }

func (ix *readyIndex) Len() int { return len(ix.q.items) }

func (ix *readyIndex) Less(i, j int) bool { return ix.q.items.Less(i, j) }

func (ix *readyIndex) Swap(i, j int) {
	ix.q.items.Swap(i, j)
	ix.q.index[ix.q.items[i].taskID] = i
	ix.q.index[ix.q.items[j].taskID] = j
}

func (ix *readyIndex) Push(x any) {
	item := x.(*readyItem)
	ix.q.items.Push(item)
	ix.q.index[item.taskID] = item.heapIndex
}

func (ix *readyIndex) Pop() any {
	item := ix.q.items.Pop().(*readyItem)
	delete(ix.q.index, item.taskID)
	return item
}

// NewReadyQueue returns an empty ready queue.
func NewReadyQueue() *ReadyQueue {
	q := &ReadyQueue{index: make(map[hssmodel.TaskID]int)}
	q.idx = &readyIndex{q: q}
	heap.Init(q.idx)
	return q
}

// Insert adds taskID with the given priority key. If taskID is already
// present its priority is updated instead (arrival of a new job on a task
// whose previous job is being aborted calls Remove first, so this path is
// only hit for genuinely new entries).
func (q *ReadyQueue) Insert(taskID hssmodel.TaskID, priority float64) {
	if i, ok := q.index[taskID]; ok {
		q.items[i].priority = priority
		heap.Fix(q.idx, i)
		return
	}
	heap.Push(q.idx, &readyItem{taskID: taskID, priority: priority})
}

// Remove deletes taskID from the queue if present, reporting whether it was
// found, in O(log n), for the task-arrival abort policy.
func (q *ReadyQueue) Remove(taskID hssmodel.TaskID) bool {
	i, ok := q.index[taskID]
	if !ok {
		return false
	}
	heap.Remove(q.idx, i)
	return true
}

// Peek returns the highest-priority (smallest key) task without removing it.
func (q *ReadyQueue) Peek() (hssmodel.TaskID, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return q.items[0].taskID, true
}

// PopTask removes and returns the highest-priority task.
func (q *ReadyQueue) PopTask() (hssmodel.TaskID, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	item := heap.Pop(q.idx).(*readyItem)
	return item.taskID, true
}

// Empty reports whether the queue has no ready tasks.
func (q *ReadyQueue) Empty() bool { return len(q.items) == 0 }

// Len reports how many tasks are ready.
func (q *ReadyQueue) Len() int { return len(q.items) }

// Contains reports whether taskID is currently queued.
func (q *ReadyQueue) Contains(taskID hssmodel.TaskID) bool {
	_, ok := q.index[taskID]
	return ok
}
