package backend

import (
	"runtime"
	"sync"

	"github.com/bwesterb/go-ristretto"
)

// cpuEngine fans jobs out across a bounded worker pool, joined with a
// sync.WaitGroup before CommitBatch returns — the same goroutine/channel
// pool pattern the wider example pack uses for parallel proving work.
type cpuEngine struct {
	workers int
}

// NewCPU builds the CPU backend. workers <= 0 defaults to runtime.NumCPU().
func NewCPU(workers int) Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &cpuEngine{workers: workers}
}

func (e *cpuEngine) Name() string { return "cpu" }

func (e *cpuEngine) MSMSingle(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	return msmSingle(scalars, points)
}

func (e *cpuEngine) CommitBatch(jobs []Job) [][32]byte {
	out := make([][32]byte, len(jobs))
	if len(jobs) == 0 {
		return out
	}

	workers := e.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	type work struct {
		idx int
		job Job
	}
	jobCh := make(chan work)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for item := range jobCh {
				out[item.idx] = commitJob(item.job)
			}
		}()
	}
	for i, j := range jobs {
		jobCh <- work{idx: i, job: j}
	}
	close(jobCh)
	wg.Wait()

	return out
}
