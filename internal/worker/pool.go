package worker

import (
	"context"
	"sync"
	"time"

	"github.com/senya/senya/internal/logger"
)

// Job is one unit of background maintenance work.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs maintenance jobs on a fixed set of workers. Jobs are either
// submitted directly or scheduled on a recurring interval; a full queue drops
// the submission, since every maintenance job is safe to skip until its next
// tick.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	log     *logger.Logger
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 32
	}
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     logger.Default().WithPrefix("worker-pool"),
	}
}

// Start launches the workers. Schedule and Submit may be called once Start
// has returned.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 1; i <= p.workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	log := p.log.WithField("worker_id", id)

	for {
		select {
		case <-p.ctx.Done():
			log.Debug("worker shutting down")
			return
		case job := <-p.jobs:
			p.run(log, job)
		}
	}
}

func (p *Pool) run(log *logger.Logger, job Job) {
	jobLog := log.WithField("job", job.Name())
	start := time.Now()

	if err := job.Run(logger.NewContext(p.ctx, jobLog)); err != nil {
		jobLog.Error("job failed after %v: %v", time.Since(start), err)
		return
	}
	jobLog.Debug("job completed in %v", time.Since(start))
}

// Schedule submits the job on every tick of the interval until the pool
// stops. The first run happens one full interval after scheduling.
func (p *Pool) Schedule(interval time.Duration, job Job) {
	p.log.Info("scheduling job %q every %s", job.Name(), interval)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.ctx.Done():
				return
			case <-ticker.C:
				p.Submit(job)
			}
		}
	}()
}

// Submit enqueues a job, dropping it when the queue is full or the pool is
// stopping.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	default:
		p.log.Warn("queue full, dropping job %q", job.Name())
	}
}

// Stop cancels all workers and schedulers and waits for in-flight jobs.
func (p *Pool) Stop() {
	p.log.Info("stopping worker pool")
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.log.Info("worker pool stopped")
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
