package pipeline

import (
	"context"
	"image"
)

// Decoder turns encoded bytes into an image. The loader tries its decoders
// in order and keeps the first success.
type Decoder interface {
	Name() string
	Decode(data []byte) (image.Image, string, error)
}

type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context)
}

type noopTimer struct{}

func (noopTimer) StartTiming(string) context.Context { return context.Background() }
func (noopTimer) EndTiming(context.Context)          {}

// ImageData is a decoded image together with where it came from.
type ImageData struct {
	Image  image.Image
	Width  int
	Height int
	Format string
	Source string
}
