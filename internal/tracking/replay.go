package tracking

import (
	"bufio"
	"io"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/segmentio/encoding/json"
)

const (
	// NoseTip is the face mesh landmark used by the face tracker.
	NoseTip = 1

	// IndexFingerTip is the hand landmark used by the hand tracker.
	IndexFingerTip = 8
)

// Landmark is one normalized tracker landmark.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Sample is one recorded tracker frame. An empty landmark list means no
// detection on that frame.
type Sample struct {
	Frame     int        `json:"frame"`
	Landmarks []Landmark `json:"landmarks"`
}

// Replay plays back a recorded landmark stream, looping at the end.
type Replay struct {
	samples  []Sample
	landmark int
}

// LoadReplay reads a JSON-lines recording, one Sample per line. Blank lines
// are skipped.
func LoadReplay(r io.Reader, landmark int) (*Replay, error) {
	if landmark < 0 {
		return nil, errors.New("landmark index must not be negative").
			WithTag("landmark", landmark)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var samples []Sample
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var s Sample
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, errors.New("decoding replay sample failed").
				WithTag("line", line).
				Wrap(err)
		}
		samples = append(samples, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New("reading replay failed").Wrap(err)
	}
	if len(samples) == 0 {
		return nil, errors.New("replay has no samples")
	}

	return &Replay{samples: samples, landmark: landmark}, nil
}

func LoadReplayFile(path string, landmark int) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening replay failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	r, err := LoadReplay(f, landmark)
	if err != nil {
		return nil, errors.New("loading replay failed").
			WithTag("path", path).
			Wrap(err)
	}
	return r, nil
}

func (r *Replay) Len() int { return len(r.samples) }

func (r *Replay) Position(frame int) (mosaic.Point, bool) {
	i := frame % len(r.samples)
	if i < 0 {
		i += len(r.samples)
	}
	lm := r.samples[i].Landmarks
	if r.landmark >= len(lm) {
		return mosaic.Point{}, false
	}
	return mosaic.Point{X: clampUnit(lm[r.landmark].X), Y: clampUnit(lm[r.landmark].Y)}, true
}

// WriteSample appends one sample as a JSON line.
func WriteSample(w io.Writer, s Sample) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
