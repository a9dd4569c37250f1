package tracking

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Options selects and parameterizes a path.
type Options struct {
	Source   string  `yaml:"source"`
	FPS      float64 `yaml:"fps"`
	Mirror   bool    `yaml:"mirror"`
	FeedW    float64 `yaml:"feed_width"`
	FeedH    float64 `yaml:"feed_height"`
	Seed     int64   `yaml:"seed"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Period   int     `yaml:"period"`
	Replay   string  `yaml:"replay"`
	Landmark int     `yaml:"landmark"`
}

func DefaultOptions() Options {
	return Options{
		Source:   "center",
		FPS:      30,
		Mirror:   true,
		FeedW:    640,
		FeedH:    480,
		Seed:     1,
		X:        0.5,
		Y:        0.5,
		Period:   240,
		Landmark: NoseTip,
	}
}

type factory func(Options) (Path, error)

var registry = map[string]factory{
	"center": func(Options) (Path, error) {
		return Center{}, nil
	},
	"fixed": func(o Options) (Path, error) {
		return Fixed{X: o.X, Y: o.Y}, nil
	},
	"circle": func(o Options) (Path, error) {
		return Circle{Period: o.Period, Radius: 0.35}, nil
	},
	"lissajous": func(o Options) (Path, error) {
		return Lissajous{Period: o.Period}, nil
	},
	"sweep": func(Options) (Path, error) {
		return Sweep{Cols: 32, Rows: 24}, nil
	},
	"walk": func(o Options) (Path, error) {
		return NewWalk(o.Seed, 0.04), nil
	},
	"replay": func(o Options) (Path, error) {
		if o.Replay == "" {
			return nil, errors.New("replay source needs a recording path")
		}
		return LoadReplayFile(o.Replay, o.Landmark)
	},
}

// New builds the path named by opts.Source.
func New(opts Options) (Path, error) {
	f, ok := registry[opts.Source]
	if !ok {
		return nil, errors.New("unknown tracking source").
			WithTag("source", opts.Source)
	}
	return f(opts)
}

// Names lists the registered sources in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Has(name string) bool {
	_, ok := registry[name]
	return ok
}
