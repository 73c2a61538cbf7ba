package benchmark

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tuannh982/hashsets/hashset"
	"github.com/tuannh982/hashsets/utils/math"
	"github.com/tuannh982/hashsets/utils/service"

	log "github.com/sirupsen/logrus"
)

const removePasses = 20

// Result of one benchmark run. MaxObservedSizes holds, per worker, the
// largest Size() that worker witnessed during its churn.
type Result struct {
	Elapsed          time.Duration
	MaxObservedSizes []int
	FinalSize        int
}

// Runner drives one hash set with a fixed worker/chunk workload. Each
// worker id churns the range [id*chunk, id*chunk+2*chunk): an add pass,
// several contains/remove passes that drop multiples of removePasses, and
// a re-add pass. Adjacent worker ranges overlap by one chunk, so the
// workload also exercises same-element contention; the settled size is
// chunk*(workers+1).
type Runner struct {
	service.SimpleService
	set     hashset.Set[int]
	workers int
	chunk   int
	begin   time.Time
	wg      sync.WaitGroup
	result  Result
	log     *log.Entry
}

func NewRunner(name string, set hashset.Set[int], workers, chunk int) *Runner {
	r := &Runner{
		set:     set,
		workers: workers,
		chunk:   chunk,
		log:     log.WithFields(log.Fields{"benchmark": name}),
	}
	r.SimpleService = *service.NewSimpleService(r)
	return r
}

// ChunkFor sizes the per-worker chunk so the workload settles at roughly
// total elements.
func ChunkFor(total, workers int) int {
	return math.DivCeil(total, workers+1)
}

func (r *Runner) OnStart(ctx context.Context) error {
	r.log.Info("workload started", " workers=", r.workers, " chunkSize=", r.chunk)
	r.begin = time.Now()
	r.result.MaxObservedSizes = make([]int, r.workers)
	r.wg.Add(r.workers)
	for i := 0; i < r.workers; i++ {
		go func(id int) {
			defer r.wg.Done()
			r.result.MaxObservedSizes[id] = r.workerBody(ctx, id)
		}(i)
	}
	go func() {
		r.wg.Wait()
		r.result.Elapsed = time.Since(r.begin)
		r.result.FinalSize = r.set.Size()
		r.log.Info("workload settled", " elapsed=", r.result.Elapsed, " finalSize=", r.result.FinalSize)
		r.Stop()
	}()
	return nil
}

func (r *Runner) OnStop() {}

// Result is valid once Serve has returned.
func (r *Runner) Result() Result {
	return r.result
}

func (r *Runner) ExpectedSize() int {
	return r.chunk * (r.workers + 1)
}

// Verify checks the settled set against the workload: the final size and
// the presence of every element the workers left behind.
func (r *Runner) Verify() error {
	if r.result.FinalSize != r.ExpectedSize() {
		return fmt.Errorf("size %d does not match expected size %d", r.result.FinalSize, r.ExpectedSize())
	}
	for i := 0; i < r.ExpectedSize(); i++ {
		if !r.set.Contains(i) {
			return fmt.Errorf("expected value %d not found", i)
		}
	}
	return nil
}

func (r *Runner) workerBody(ctx context.Context, id int) int {
	maxObserved := 0
	for k := 0; k < r.chunk*2; k++ {
		elem := id*r.chunk + k
		r.set.Add(elem)
		maxObserved = math.Max(maxObserved, r.set.Size())
	}
	for j := 0; j < removePasses; j++ {
		if ctx.Err() != nil {
			return maxObserved
		}
		for k := 0; k < r.chunk*2; k++ {
			elem := id*r.chunk + k
			if r.set.Contains(elem) && elem%removePasses == 0 {
				r.set.Remove(elem)
				maxObserved = math.Max(maxObserved, r.set.Size())
			}
		}
	}
	for k := 0; k < r.chunk*2; k++ {
		elem := id*r.chunk + k
		r.set.Add(elem)
		maxObserved = math.Max(maxObserved, r.set.Size())
	}
	return maxObserved
}
