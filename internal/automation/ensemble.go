package automation

import (
	"context"
	"sync"

	"github.com/san-kum/mosaic/internal/config"
	"github.com/san-kum/mosaic/internal/mosaic"
)

// Ensemble runs the same configuration once per seed, each on its own
// session and goroutine.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart int64
}

// EnsembleResult is one member of an ensemble run.
type EnsembleResult struct {
	Seed    int64
	Result  *mosaic.Result
	Metrics map[string]float64
}

func NewEnsemble(base *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, frames int) ([]EnsembleResult, error) {
	results := make([]EnsembleResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := *e.base
			cfg.Tracking.Seed = e.seedStart + int64(idx)

			session, err := NewSession(&cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			result, err := session.Run(ctx, frames)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = EnsembleResult{
				Seed:    cfg.Tracking.Seed,
				Result:  result,
				Metrics: session.Metrics.Values(),
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MeanMetrics averages every metric across the ensemble.
func MeanMetrics(results []EnsembleResult) map[string]float64 {
	mean := make(map[string]float64)
	if len(results) == 0 {
		return mean
	}
	for _, r := range results {
		for name, v := range r.Metrics {
			mean[name] += v
		}
	}
	for name := range mean {
		mean[name] /= float64(len(results))
	}
	return mean
}
