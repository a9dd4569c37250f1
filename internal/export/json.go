package export

import (
	"io"
	"os"

	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/san-kum/mosaic/internal/storage"
	"github.com/segmentio/encoding/json"
)

// RunData is a whole stored run in one document.
type RunData struct {
	Meta   storage.RunMetadata `json:"meta"`
	Frames []FrameData         `json:"frames"`
	Tiles  []TileData          `json:"tiles"`
}

type FrameData struct {
	Number     int     `json:"frame"`
	Tiles      int     `json:"tiles"`
	Splits     int     `json:"splits"`
	Reset      bool    `json:"reset,omitempty"`
	ImageIndex int     `json:"image_index"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Detected   bool    `json:"detected"`
}

type TileData struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Color string  `json:"color"`
}

func NewRunData(meta storage.RunMetadata, frames []mosaic.Stat, tiles []mosaic.Tile) RunData {
	data := RunData{
		Meta:   meta,
		Frames: make([]FrameData, len(frames)),
		Tiles:  make([]TileData, len(tiles)),
	}
	for i, f := range frames {
		data.Frames[i] = FrameData{
			Number:     f.Number,
			Tiles:      f.Tiles,
			Splits:     f.Splits,
			Reset:      f.Reset,
			ImageIndex: f.ImageIndex,
			X:          f.Pointer.X,
			Y:          f.Pointer.Y,
			Detected:   f.Detected,
		}
	}
	for i, t := range tiles {
		data.Tiles[i] = TileData{X: t.X, Y: t.Y, W: t.W, H: t.H, Color: t.Color.Hex()}
	}
	return data
}

func WriteJSON(w io.Writer, data RunData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data RunData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
