// Package fork_join provides a small fork/join pool: tasks are forked onto
// per-worker queues and joined by the goroutine that forked them.
package fork_join

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

type ForkJoinPool struct {
	cap       int32
	taskQueue *TaskQueue
	wp        *Pool // worker pool
	lock      sync.Mutex
	closed    atomic.Bool
	cancel    context.CancelFunc
}

// NewForkJoinPool starts workerCap workers. A non-positive workerCap uses
// GOMAXPROCS.
func NewForkJoinPool(workerCap int32) *ForkJoinPool {
	if workerCap <= 0 {
		workerCap = int32(runtime.GOMAXPROCS(0))
	}
	ctx, cancel := context.WithCancel(context.Background())
	fp := &ForkJoinPool{
		cap:       workerCap,
		taskQueue: NewTaskQueue(workerCap),
		wp:        newPool(),
		cancel:    cancel,
	}
	fp.run(ctx)
	return fp
}

// SetPanicHandler installs a callback invoked with the value of every panic
// recovered from a task.
func (fp *ForkJoinPool) SetPanicHandler(panicHandler func(interface{})) {
	fp.wp.setPanicHandler(panicHandler)
}

// Workers returns the number of worker goroutines.
func (fp *ForkJoinPool) Workers() int {
	return int(fp.cap)
}

// Close stops the workers once they have run every task still queued, so
// forked work completes even if nobody joins it. Tasks forked after Close
// run inline. Close is idempotent.
func (fp *ForkJoinPool) Close() {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	if fp.closed.Swap(true) {
		return
	}
	fp.cancel()
	fp.wp.wait()
}

// pushTask places f on a worker queue, or runs it on the calling goroutine
// when the pool is closed or the chosen queue is full.
func (fp *ForkJoinPool) pushTask(f *ForkJoinTask) {
	if fp.closed.Load() || !fp.taskQueue.enqueue(f) {
		f.tryExec(fp.wp)
	}
}

// 每个 worker 轮询自己对应的 Task 队列进行获取任务
func (fp *ForkJoinPool) run(ctx context.Context) {
	for wID := int32(0); wID < fp.cap; wID++ {
		fp.wp.Submit(ctx, fp.taskQueue.dequeueByTail(wID))
	}
}
