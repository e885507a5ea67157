package fork_join

import (
	"fmt"
	"sync/atomic"
)

// Task is a unit of work that can be forked onto a ForkJoinPool.
type Task interface {
	Compute() interface{}
}

const (
	statePending int32 = iota
	stateRunning
)

// ForkJoinTask tracks one forked Task. It is meant to be embedded:
//
//	t := &myTask{...}
//	t.Build(pool).Run(t)
//	ok, result := t.Join()
type ForkJoinTask struct {
	pool   *ForkJoinPool
	task   Task
	state  atomic.Int32
	done   chan struct{}
	result interface{}
	err    error
}

// PanicError wraps a value recovered from a panicking Task.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("fork_join: task panicked: %v", e.Value)
}

// Build binds the task to fp and resets it for a new run.
func (f *ForkJoinTask) Build(fp *ForkJoinPool) *ForkJoinTask {
	f.pool = fp
	f.task = nil
	f.state.Store(statePending)
	f.done = make(chan struct{})
	f.result = nil
	f.err = nil
	return f
}

// Run forks t. Without a pool t runs immediately on the calling goroutine.
func (f *ForkJoinTask) Run(t Task) {
	if f.done == nil {
		f.Build(f.pool)
	}
	f.task = t
	if f.pool == nil {
		f.tryExec(nil)
		return
	}
	f.pool.pushTask(f)
}

// Join waits for the task and returns its result. ok is false when the task
// panicked. A task no worker has picked up yet is run by the caller.
func (f *ForkJoinTask) Join() (bool, interface{}) {
	if f.done == nil {
		return false, nil
	}
	var wp *Pool
	if f.pool != nil {
		wp = f.pool.wp
	}
	f.tryExec(wp)
	<-f.done
	return f.err == nil, f.result
}

// Err returns the recovered panic of a joined task, if any.
func (f *ForkJoinTask) Err() error {
	return f.err
}

// tryExec runs the task unless another goroutine already claimed it.
func (f *ForkJoinTask) tryExec(wp *Pool) {
	if !f.state.CompareAndSwap(statePending, stateRunning) {
		return
	}
	defer close(f.done)
	defer func() {
		if p := recover(); p != nil {
			f.err = &PanicError{Value: p}
			if wp != nil {
				wp.handlePanic(p)
			}
		}
	}()
	f.result = f.task.Compute()
}
