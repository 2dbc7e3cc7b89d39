package preview

import "sync"

// Pool runs extraction jobs on a fixed set of worker goroutines.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

// NewPool starts workers goroutines consuming submitted jobs.
// A non-positive worker count falls back to 1.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	pool := &Pool{jobs: make(chan func())}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()

			for job := range pool.jobs {
				job()
			}
		}()
	}

	return pool
}

// Submit blocks until a worker picks the job up.
func (p *Pool) Submit(job func()) {
	p.jobs <- job
}

// Shutdown stops accepting jobs and waits for the running ones to finish.
func (p *Pool) Shutdown() {
	close(p.jobs)
	p.wg.Wait()
}
