package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
)

// Task is one unit of work run by the pool
type Task func(ctx context.Context) error

// Pool runs batches of tasks on a fixed number of workers
type Pool struct {
	logger     arbor.ILogger
	numWorkers int
}

func NewPool(logger arbor.ILogger, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Pool{
		logger:     logger,
		numWorkers: numWorkers,
	}
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return p.numWorkers
}

// Run executes tasks with at most Size() running at once and returns one error per task, in task order.
// Tasks not started before ctx is cancelled report ctx.Err(). A panicking task reports an error.
func (p *Pool) Run(ctx context.Context, tasks []Task) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}

	workers := p.numWorkers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range indexes {
				errs[idx] = p.execute(ctx, workerID, idx, tasks[idx])
			}
		}(i)
	}

dispatch:
	for idx := range tasks {
		select {
		case <-ctx.Done():
			for rest := idx; rest < len(tasks); rest++ {
				errs[rest] = ctx.Err()
			}
			break dispatch
		case indexes <- idx:
		}
	}
	close(indexes)
	wg.Wait()

	p.logger.Debug().
		Int("tasks", len(tasks)).
		Int("workers", workers).
		Msg("Batch completed")

	return errs
}

// execute runs a single task, converting a panic into an error
func (p *Pool) execute(ctx context.Context, workerID, idx int, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Int("worker_id", workerID).
				Int("task", idx).
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("Task panicked")
			err = fmt.Errorf("task %d panicked: %v", idx, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return task(ctx)
}
