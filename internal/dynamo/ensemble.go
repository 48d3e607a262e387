package dynamo

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/gravbox/internal/metrics"
	"github.com/san-kum/gravbox/internal/physics"
)

// Job is one independent headless run.
type Job struct {
	Name  string
	World *physics.World
	// Metrics builds a fresh metric set, since metrics are stateful.
	Metrics func() []metrics.Metric
}

type Ensemble struct {
	jobs  []Job
	base  RunConfig
	limit int
}

// NewEnsemble runs each job with base's timestep and sampling. limit caps
// concurrent runs; zero or less means one goroutine per job.
func NewEnsemble(jobs []Job, base RunConfig, limit int) *Ensemble {
	return &Ensemble{jobs: jobs, base: base, limit: limit}
}

// Run executes every job. The first failure cancels the remaining runs;
// results stay index-aligned with the jobs.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, job := range e.jobs {
		i, job := i, job
		g.Go(func() error {
			cfg := e.base
			cfg.Metrics = nil
			if job.Metrics != nil {
				cfg.Metrics = job.Metrics()
			}
			if cfg.Log.GetSink() != nil {
				cfg.Log = cfg.Log.WithValues("job", job.Name)
			}

			res, err := Run(ctx, job.World, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
