// Package workers provides a fixed pool of background task workers
// with one queue per worker. Tasks submitted to the same worker index
// run in submission order on the same goroutine, which lets callers
// serialize the tasks of one object by pinning them to a worker.
package workers

import "sync"

// Task is one unit of background work.
type Task func()

// Pool is a fixed-size worker pool. The zero value is not usable, use
// NewPool.
type Pool struct {
	queues []chan Task
	wg     sync.WaitGroup
}

// NewPool starts count workers. Counts below one are clamped to one.
func NewPool(count int) *Pool {
	if count < 1 {
		count = 1
	}
	p := &Pool{queues: make([]chan Task, count)}
	for i := range p.queues {
		queue := make(chan Task, 64)
		p.queues[i] = queue
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range queue {
				task()
			}
		}()
	}
	return p
}

// Workers returns the worker count.
func (p *Pool) Workers() int { return len(p.queues) }

// Submit queues a task on one worker. Indexes wrap around the worker
// count. Submit must not be called after Close.
func (p *Pool) Submit(worker int, task Task) {
	p.queues[worker%len(p.queues)] <- task
}

// Close stops accepting tasks and waits for the queued ones to finish.
func (p *Pool) Close() {
	for _, queue := range p.queues {
		close(queue)
	}
	p.wg.Wait()
}
