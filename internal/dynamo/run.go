package dynamo

import (
	"context"
	"fmt"
	"math"

	"github.com/go-logr/logr"
	"github.com/san-kum/gravbox/internal/metrics"
	"github.com/san-kum/gravbox/internal/physics"
)

type RunConfig struct {
	Dt       float64
	Duration float64
	// SampleEvery records a trace row every n steps. Zero disables the trace.
	SampleEvery int
	Metrics     []metrics.Metric
	Log         logr.Logger
}

type Result struct {
	Steps   int
	Time    float64
	Merges  int
	Bodies  int
	Metrics map[string]float64
	Trace   *metrics.Trace
}

func (c RunConfig) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, c.Duration)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Run steps w for cfg.Duration at a fixed cfg.Dt. The partial result is
// returned alongside any error.
func Run(ctx context.Context, w *physics.World, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	res := &Result{Metrics: make(map[string]float64)}
	if cfg.SampleEvery > 0 {
		res.Trace = metrics.NewTrace(steps/cfg.SampleEvery + 1)
	}

	for _, m := range cfg.Metrics {
		m.Reset()
	}

	observe := func(i int) {
		for _, m := range cfg.Metrics {
			m.Observe(w, res.Time)
		}
		if res.Trace != nil && i%cfg.SampleEvery == 0 {
			res.Trace.Observe(w, res.Time)
		}
	}

	finish := func() {
		res.Bodies = w.ActiveCount()
		for _, m := range cfg.Metrics {
			res.Metrics[m.Name()] = m.Value()
		}
	}

	w.UpdateGravity()
	observe(0)

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			finish()
			return res, &SimulationError{Step: i, Time: res.Time, Wrapped: fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())}
		default:
		}

		w.UpdateVelAndPos(cfg.Dt)
		res.Time += cfg.Dt
		res.Steps++

		if err := checkFinite(w, i, res.Time); err != nil {
			finish()
			return res, err
		}

		merges := w.UpdateGravity()
		res.Merges += len(merges)
		for _, m := range merges {
			log.V(1).Info("bodies merged", "step", i, "survivor", m.Survivor, "absorbed", m.Absorbed)
		}

		observe(i)
	}

	finish()
	return res, nil
}
