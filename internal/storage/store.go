package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/google/uuid"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/segmentio/encoding/json"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	tilesFile    = "tiles.csv"
)

var (
	framesHeader = []string{"frame", "tiles", "splits", "reset", "image_index", "x", "y", "detected"}
	tilesHeader  = []string{"x", "y", "w", "h", "r", "g", "b"}
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Width          float64            `json:"width"`
	Height         float64            `json:"height"`
	Images         []string           `json:"images"`
	Source         string             `json:"source"`
	Sampler        string             `json:"sampler"`
	Seed           int64              `json:"seed"`
	MinTileSize    float64            `json:"min_tile_size"`
	ResetThreshold int                `json:"reset_threshold"`
	Frames         int                `json:"frames"`
	Splits         int                `json:"splits"`
	Resets         int                `json:"resets"`
	FinalTiles     int                `json:"final_tiles"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	Metrics        map[string]float64 `json:"metrics,omitempty"`
	Scenario       string             `json:"scenario,omitempty"`
}

// Save writes a run under a fresh id. The metadata counters are filled from
// result; the caller supplies the settings.
func (s *Store) Save(meta RunMetadata, result *mosaic.Result) (string, error) {
	meta.ID = uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Width = result.Canvas.W
	meta.Height = result.Canvas.H
	meta.Frames = len(result.Frames)
	meta.Splits = result.Splits
	meta.Resets = result.Resets
	meta.FinalTiles = len(result.Final)

	runDir := s.Dir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.New("creating run directory failed").
			WithTag("path", runDir).
			Wrap(err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), data, 0644); err != nil {
		return "", errors.New("writing metadata failed").
			WithTag("run_id", meta.ID).
			Wrap(err)
	}

	frames := make([][]string, 0, len(result.Frames))
	for _, f := range result.Frames {
		frames = append(frames, []string{
			strconv.Itoa(f.Number),
			strconv.Itoa(f.Tiles),
			strconv.Itoa(f.Splits),
			strconv.FormatBool(f.Reset),
			strconv.Itoa(f.ImageIndex),
			formatFloat(f.Pointer.X),
			formatFloat(f.Pointer.Y),
			strconv.FormatBool(f.Detected),
		})
	}
	if err := writeCSV(filepath.Join(runDir, framesFile), framesHeader, frames); err != nil {
		return "", err
	}

	tiles := make([][]string, 0, len(result.Final))
	for _, t := range result.Final {
		tiles = append(tiles, []string{
			formatFloat(t.X),
			formatFloat(t.Y),
			formatFloat(t.W),
			formatFloat(t.H),
			strconv.Itoa(int(t.Color.R)),
			strconv.Itoa(int(t.Color.G)),
			strconv.Itoa(int(t.Color.B)),
		})
	}
	if err := writeCSV(filepath.Join(runDir, tilesFile), tilesHeader, tiles); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, errors.New("reading metadata failed").
			WithTag("run_id", runID).
			Wrap(err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.New("decoding metadata failed").
			WithTag("run_id", runID).
			Wrap(err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]mosaic.Stat, error) {
	records, err := readCSV(filepath.Join(s.Dir(runID), framesFile), len(framesHeader))
	if err != nil {
		return nil, err
	}

	frames := make([]mosaic.Stat, 0, len(records))
	for _, r := range records {
		var f mosaic.Stat
		var perr error
		parseInt(&perr, r[0], &f.Number)
		parseInt(&perr, r[1], &f.Tiles)
		parseInt(&perr, r[2], &f.Splits)
		parseBool(&perr, r[3], &f.Reset)
		parseInt(&perr, r[4], &f.ImageIndex)
		parseFloat(&perr, r[5], &f.Pointer.X)
		parseFloat(&perr, r[6], &f.Pointer.Y)
		parseBool(&perr, r[7], &f.Detected)
		if perr != nil {
			return nil, errors.New("parsing frame failed").
				WithTag("run_id", runID).
				Wrap(perr)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func (s *Store) LoadTiles(runID string) ([]mosaic.Tile, error) {
	records, err := readCSV(filepath.Join(s.Dir(runID), tilesFile), len(tilesHeader))
	if err != nil {
		return nil, err
	}

	tiles := make([]mosaic.Tile, 0, len(records))
	for _, r := range records {
		var t mosaic.Tile
		var perr error
		parseFloat(&perr, r[0], &t.X)
		parseFloat(&perr, r[1], &t.Y)
		parseFloat(&perr, r[2], &t.W)
		parseFloat(&perr, r[3], &t.H)
		parseUint8(&perr, r[4], &t.Color.R)
		parseUint8(&perr, r[5], &t.Color.G)
		parseUint8(&perr, r[6], &t.Color.B)
		if perr != nil {
			return nil, errors.New("parsing tile failed").
				WithTag("run_id", runID).
				Wrap(perr)
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating csv failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.New("writing csv failed").
			WithTag("path", path).
			Wrap(err)
	}
	return f.Close()
}

// readCSV returns the data rows, header dropped.
func readCSV(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening csv failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.New("reading csv failed").
			WithTag("path", path).
			Wrap(err)
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseInt(errp *error, s string, dst *int) {
	if *errp != nil {
		return
	}
	*dst, *errp = strconv.Atoi(s)
}

func parseFloat(errp *error, s string, dst *float64) {
	if *errp != nil {
		return
	}
	*dst, *errp = strconv.ParseFloat(s, 64)
}

func parseBool(errp *error, s string, dst *bool) {
	if *errp != nil {
		return
	}
	*dst, *errp = strconv.ParseBool(s)
}

func parseUint8(errp *error, s string, dst *uint8) {
	if *errp != nil {
		return
	}
	v, err := strconv.ParseUint(s, 10, 8)
	*dst, *errp = uint8(v), err
}
