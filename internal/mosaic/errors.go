package mosaic

import "errors"

// Configuration errors reported before an engine starts.
var (
	// ErrNoImages indicates an image source was built from an empty sequence.
	ErrNoImages = errors.New("mosaic: image sequence is empty")

	// ErrInvalidConfig indicates a canvas, threshold or strategy outside its valid range.
	ErrInvalidConfig = errors.New("mosaic: invalid configuration")

	// ErrEmptyImage indicates an image with zero width or height.
	ErrEmptyImage = errors.New("mosaic: image has no pixels")
)
