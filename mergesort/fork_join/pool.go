package fork_join

import (
	"context"
	"sync"
)

// Pool runs the worker goroutines of a ForkJoinPool.
type Pool struct {
	wg           sync.WaitGroup
	mu           sync.RWMutex
	panicHandler func(interface{})
}

func newPool() *Pool {
	return &Pool{}
}

func (p *Pool) setPanicHandler(h func(interface{})) {
	p.mu.Lock()
	p.panicHandler = h
	p.mu.Unlock()
}

func (p *Pool) handlePanic(v interface{}) {
	p.mu.RLock()
	h := p.panicHandler
	p.mu.RUnlock()
	if h != nil {
		h(v)
	}
}

// Submit starts a worker that executes tasks from queue until ctx is done,
// then runs whatever is still buffered in queue before exiting.
func (p *Pool) Submit(ctx context.Context, queue <-chan *ForkJoinTask) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-ctx.Done():
				p.drain(queue)
				return
			case f := <-queue:
				f.tryExec(p)
			}
		}
	}()
}

func (p *Pool) drain(queue <-chan *ForkJoinTask) {
	for {
		select {
		case f := <-queue:
			f.tryExec(p)
		default:
			return
		}
	}
}

func (p *Pool) wait() {
	p.wg.Wait()
}
