package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Engine: EngineConfig{MinTileSize: 4, ResetThreshold: 3000, Sampler: "integral", CacheSize: 4},
		Frames: 600,
	},
	"fine": {
		Canvas: CanvasConfig{Width: 1280, Height: 720},
		Engine: EngineConfig{MinTileSize: 2, ResetThreshold: 8000, Sampler: "integral", CacheSize: 8},
		Frames: 2000,
	},
	"coarse": {
		Canvas: CanvasConfig{Width: 640, Height: 480},
		Engine: EngineConfig{MinTileSize: 12, ResetThreshold: 600, Sampler: "scan", CacheSize: 4},
		Frames: 400,
	},
	"quick": {
		Canvas: CanvasConfig{Width: 320, Height: 240},
		Engine: EngineConfig{MinTileSize: 8, ResetThreshold: 200, Sampler: "scan", CacheSize: 2},
		Frames: 120,
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
