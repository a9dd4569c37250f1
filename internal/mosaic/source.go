package mosaic

import "fmt"

// ImageSource is the fixed, ordered sequence of source images together with
// the index of the image currently being sampled.
type ImageSource struct {
	images []Image
	index  int
}

// NewImageSource validates the sequence. An empty sequence or an image
// without pixels is a configuration error.
func NewImageSource(images ...Image) (*ImageSource, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	for i, img := range images {
		if img == nil || img.Width() <= 0 || img.Height() <= 0 {
			return nil, fmt.Errorf("%w: image %d", ErrEmptyImage, i)
		}
	}
	src := &ImageSource{images: make([]Image, len(images))}
	copy(src.images, images)
	return src, nil
}

func (s *ImageSource) Current() Image { return s.images[s.index] }

func (s *ImageSource) Index() int { return s.index }

func (s *ImageSource) Len() int { return len(s.images) }

// At returns the i-th image.
func (s *ImageSource) At(i int) Image { return s.images[i] }

// Advance moves to the next image, wrapping to the first, and returns the new index.
func (s *ImageSource) Advance() int {
	s.index = (s.index + 1) % len(s.images)
	return s.index
}
