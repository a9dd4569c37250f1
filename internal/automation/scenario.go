package automation

import (
	"context"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/san-kum/mosaic/internal/config"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/san-kum/mosaic/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides the base configuration for one run. Zero values
// keep the base setting.
type ScenarioStep struct {
	Name    string   `yaml:"name"`
	Preset  string   `yaml:"preset"`
	Images  []string `yaml:"images"`
	Source  string   `yaml:"source"`
	Seed    int64    `yaml:"seed"`
	Period  int      `yaml:"period"`
	Replay  string   `yaml:"replay"`
	Sampler string   `yaml:"sampler"`
	Frames  int      `yaml:"frames"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Step    string
	RunID   string
	Result  *mosaic.Result
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading scenario failed").
			WithTag("path", path).
			Wrap(err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, errors.New("parsing scenario failed").
			WithTag("path", path).
			Wrap(err)
	}
	if len(scenario.Steps) == 0 {
		return nil, errors.New("scenario has no steps").WithTag("path", path)
	}
	return &scenario, nil
}

// Configure returns a copy of base with the step's overrides applied.
func (s ScenarioStep) Configure(base *config.Config) (*config.Config, error) {
	cfg := *base
	cfg.Images = append([]string(nil), base.Images...)

	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, errors.New("unknown preset").WithTag("preset", s.Preset)
		}
		cfg.Apply(p)
	}
	if len(s.Images) > 0 {
		cfg.Images = s.Images
	}
	if s.Source != "" {
		cfg.Tracking.Source = s.Source
	}
	if s.Seed != 0 {
		cfg.Tracking.Seed = s.Seed
	}
	if s.Period > 0 {
		cfg.Tracking.Period = s.Period
	}
	if s.Replay != "" {
		cfg.Tracking.Replay = s.Replay
	}
	if s.Sampler != "" {
		cfg.Engine.Sampler = s.Sampler
	}
	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	return &cfg, nil
}

// RunScenario executes every step in order on a fresh session. Results of
// completed steps are returned alongside the first error.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = step.Source
		}
		logs.WithTag("scenario", scenario.Name).
			WithTag("step", i+1).
			WithTag("of", len(scenario.Steps)).
			WithTag("name", name).
			Info("running scenario step")

		cfg, err := step.Configure(base)
		if err != nil {
			return results, errors.New("configuring step failed").
				WithTag("step", i+1).
				Wrap(err)
		}
		session, err := NewSession(cfg)
		if err != nil {
			return results, errors.New("building step failed").
				WithTag("step", i+1).
				Wrap(err)
		}
		id, result, err := session.RunAndStore(ctx, cfg.Frames, store, scenario.Name)
		if err != nil {
			return results, errors.New("running step failed").
				WithTag("step", i+1).
				Wrap(err)
		}

		results = append(results, StepResult{
			Step:    name,
			RunID:   id,
			Result:  result,
			Metrics: session.Metrics.Values(),
		})
	}

	return results, nil
}
