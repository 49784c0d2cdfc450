package source

import "image"

// Source yields the ordered frame sequence the pipeline animates.
type Source interface {
	FrameCount() int
	Frame(index int) (image.Image, error)
	Close() error
}
