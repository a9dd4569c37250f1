package automation

import (
	"context"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/san-kum/mosaic/internal/config"
)

// SweepParams names the engine settings a sweep can vary.
var SweepParams = []string{"min_tile_size", "reset_threshold"}

// ParameterSweep runs the base configuration once per value of one engine
// setting.
type ParameterSweep struct {
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
	Frames   int
}

// SweepResult holds the summary of one sweep run.
type SweepResult struct {
	ParamValue float64
	Splits     int
	Resets     int
	FinalTiles int
	Metrics    map[string]float64
}

// Values returns the evenly spaced parameter values of the sweep.
func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.ParamMin}
	}
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	values := make([]float64, s.NumSteps)
	for i := range values {
		values[i] = s.ParamMin + float64(i)*step
	}
	return values
}

func (s *ParameterSweep) apply(cfg *config.Config, v float64) error {
	switch s.Param {
	case "min_tile_size":
		cfg.Engine.MinTileSize = v
	case "reset_threshold":
		cfg.Engine.ResetThreshold = int(v)
	default:
		return errors.New("unknown sweep parameter").WithTag("param", s.Param)
	}
	return nil
}

// RunSweep executes the sweep. Every run starts from a fresh session so the
// tracking path replays identically.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config) ([]SweepResult, error) {
	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))

	frames := sweep.Frames
	if frames <= 0 {
		frames = base.Frames
	}

	for i, v := range values {
		cfg := *base
		if err := sweep.apply(&cfg, v); err != nil {
			return nil, err
		}
		session, err := NewSession(&cfg)
		if err != nil {
			return nil, err
		}
		result, err := session.Run(ctx, frames)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: v,
			Splits:     result.Splits,
			Resets:     result.Resets,
			FinalTiles: len(result.Final),
			Metrics:    session.Metrics.Values(),
		})

		logs.WithTag("step", i+1).
			WithTag("of", len(values)).
			WithTag(sweep.Param, v).
			Info("sweep step complete")
	}

	return results, nil
}
