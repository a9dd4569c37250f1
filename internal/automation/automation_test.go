package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mosaic/internal/config"
	"github.com/san-kum/mosaic/internal/storage"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Images = []string{"solid:ff0000:16x12", "solid:0000ff:16x12"}
	cfg.Tracking.Source = "center"
	cfg.Frames = 50
	return cfg
}

func TestSessionRun(t *testing.T) {
	s, err := NewSession(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	result, err := s.Run(context.Background(), 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Frames) != 50 {
		t.Errorf("expected 50 frames, got %d", len(result.Frames))
	}
	// a stationary pointer on 800x600 at min size 4 converges
	if len(result.Final) != 16 {
		t.Errorf("expected 16 tiles, got %d", len(result.Final))
	}
	if s.Metrics.Values()["peak_tiles"] != 16 {
		t.Errorf("unexpected metrics %v", s.Metrics.Values())
	}
}

func TestSessionInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Tracking.Source = "nope"
	if _, err := NewSession(cfg); err == nil {
		t.Error("expected error for unknown source")
	}

	cfg = testConfig()
	cfg.Tracking.Source = "replay"
	if _, err := NewSession(cfg); err == nil {
		t.Error("expected error for replay without a recording")
	}

	cfg = testConfig()
	cfg.Images = []string{"solid:zz0000:4x4"}
	if _, err := NewSession(cfg); err == nil {
		t.Error("expected error for bad image spec")
	}
}

func TestSessionRunAndStore(t *testing.T) {
	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	id, _, err := s.RunAndStore(context.Background(), 20, store, "smoke")
	if err != nil {
		t.Fatal(err)
	}
	meta, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Scenario != "smoke" || meta.Source != "center" || meta.Frames != 20 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if _, ok := meta.Metrics["coverage"]; !ok {
		t.Error("expected stored metrics")
	}

	id, result, err := s.RunAndStore(context.Background(), 5, nil, "")
	if err != nil || id != "" || result == nil {
		t.Errorf("run without store: id=%q err=%v", id, err)
	}
}

func TestStepConfigure(t *testing.T) {
	base := testConfig()
	step := ScenarioStep{
		Preset: "quick",
		Images: []string{"gradient:32x32"},
		Source: "walk",
		Seed:   7,
		Frames: 10,
	}

	cfg, err := step.Configure(base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != 320 || cfg.Engine.ResetThreshold != 200 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if cfg.Tracking.Source != "walk" || cfg.Tracking.Seed != 7 || cfg.Frames != 10 {
		t.Errorf("overrides not applied: %+v", cfg.Tracking)
	}
	if base.Images[0] != "solid:ff0000:16x12" || base.Tracking.Source != "center" {
		t.Error("base config was modified")
	}

	if _, err := (ScenarioStep{Preset: "missing"}).Configure(base); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.yaml")
	data := `name: demo
description: two quick passes
steps:
  - name: still
    preset: quick
    source: center
    frames: 30
  - name: raster
    preset: quick
    source: sweep
    frames: 40
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 2 || sc.Steps[1].Source != "sweep" {
		t.Errorf("unexpected scenario %+v", sc)
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("name: empty\n"), 0644)
	if _, err := LoadScenario(empty); err == nil {
		t.Error("expected error for scenario without steps")
	}
	if _, err := LoadScenario(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunScenario(t *testing.T) {
	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	sc := &Scenario{
		Name: "demo",
		Steps: []ScenarioStep{
			{Name: "still", Preset: "quick", Source: "center", Frames: 30},
			{Preset: "quick", Source: "sweep", Frames: 40},
		},
	}

	results, err := RunScenario(context.Background(), sc, testConfig(), store)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Step != "still" || results[1].Step != "sweep" {
		t.Errorf("unexpected step names %q, %q", results[0].Step, results[1].Step)
	}
	if len(results[1].Result.Frames) != 40 {
		t.Errorf("expected 40 frames, got %d", len(results[1].Result.Frames))
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 stored runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Scenario != "demo" {
			t.Errorf("run %s missing scenario name", r.ID)
		}
	}
}

func TestRunScenarioStopsOnError(t *testing.T) {
	sc := &Scenario{
		Name: "broken",
		Steps: []ScenarioStep{
			{Preset: "quick", Source: "center", Frames: 5},
			{Preset: "quick", Source: "unknown", Frames: 5},
			{Preset: "quick", Source: "center", Frames: 5},
		},
	}
	results, err := RunScenario(context.Background(), sc, testConfig(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(results) != 1 {
		t.Errorf("expected 1 completed step, got %d", len(results))
	}
}

func TestSweepValues(t *testing.T) {
	tests := []struct {
		sweep ParameterSweep
		want  []float64
	}{
		{ParameterSweep{ParamMin: 4, ParamMax: 16, NumSteps: 3}, []float64{4, 10, 16}},
		{ParameterSweep{ParamMin: 2, ParamMax: 9, NumSteps: 1}, []float64{2}},
	}
	for _, tt := range tests {
		got := tt.sweep.Values()
		if len(got) != len(tt.want) {
			t.Fatalf("expected %v, got %v", tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		}
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Param:    "min_tile_size",
		ParamMin: 4,
		ParamMax: 64,
		NumSteps: 3,
		Frames:   60,
	}
	results, err := RunSweep(context.Background(), sweep, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].FinalTiles != 16 {
		t.Errorf("expected 16 tiles at min size 4, got %d", results[0].FinalTiles)
	}
	for i := 1; i < len(results); i++ {
		if results[i].FinalTiles > results[i-1].FinalTiles {
			t.Errorf("larger min size should not give more tiles: %+v", results)
		}
	}

	sweep.Param = "speed"
	if _, err := RunSweep(context.Background(), sweep, testConfig()); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestEnsemble(t *testing.T) {
	cfg := testConfig()
	cfg.Tracking.Source = "walk"

	results, err := NewEnsemble(cfg, 3, 10).Run(context.Background(), 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(10+i) {
			t.Errorf("result %d: expected seed %d, got %d", i, 10+i, r.Seed)
		}
		if len(r.Result.Frames) != 40 {
			t.Errorf("result %d: expected 40 frames, got %d", i, len(r.Result.Frames))
		}
	}

	// same seed, same run
	again, err := NewEnsemble(cfg, 1, 10).Run(context.Background(), 40)
	if err != nil {
		t.Fatal(err)
	}
	if again[0].Result.Splits != results[0].Result.Splits {
		t.Errorf("expected deterministic run, got %d and %d splits", again[0].Result.Splits, results[0].Result.Splits)
	}

	mean := MeanMetrics(results)
	if mean["detection_rate"] != 1 {
		t.Errorf("walk always detects, got detection rate %v", mean["detection_rate"])
	}
	if len(MeanMetrics(nil)) != 0 {
		t.Error("expected empty mean for no results")
	}
}

func TestEnsembleError(t *testing.T) {
	cfg := testConfig()
	cfg.Tracking.Source = "unknown"
	if _, err := NewEnsemble(cfg, 2, 1).Run(context.Background(), 10); err == nil {
		t.Error("expected error")
	}
}
