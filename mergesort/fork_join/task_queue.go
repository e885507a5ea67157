package fork_join

import "sync/atomic"

// queueDepth is the number of pending tasks each worker queue buffers.
const queueDepth = 64

// TaskQueue holds one bounded queue per worker. Tasks are placed
// round-robin.
type TaskQueue struct {
	queues []chan *ForkJoinTask
	next   atomic.Uint32
}

func NewTaskQueue(workers int32) *TaskQueue {
	q := &TaskQueue{queues: make([]chan *ForkJoinTask, workers)}
	for i := range q.queues {
		q.queues[i] = make(chan *ForkJoinTask, queueDepth)
	}
	return q
}

// enqueue reports false when the selected queue is full.
func (q *TaskQueue) enqueue(f *ForkJoinTask) bool {
	i := (q.next.Add(1) - 1) % uint32(len(q.queues))
	select {
	case q.queues[i] <- f:
		return true
	default:
		return false
	}
}

// dequeueByTail returns the receive side of worker wID's queue.
func (q *TaskQueue) dequeueByTail(wID int32) <-chan *ForkJoinTask {
	return q.queues[wID]
}
