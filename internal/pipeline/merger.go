package pipeline

import (
	"image"
	"image/color"

	"idcard-merger/internal/processing/transform"

	"golang.org/x/image/draw"
)

// Background is what transparent pixels are flattened against.
var Background color.Color = color.White

// Layout describes where each side landed on the merged canvas. A side
// that was absent has an empty rectangle.
type Layout struct {
	Canvas image.Rectangle
	Front  image.Rectangle
	Back   image.Rectangle
}

// ComputeLayout places front above back, with back resized to front's width.
func ComputeLayout(front, back image.Rectangle) Layout {
	switch {
	case front.Empty() && back.Empty():
		return Layout{}
	case back.Empty():
		r := image.Rect(0, 0, front.Dx(), front.Dy())
		return Layout{Canvas: r, Front: r}
	case front.Empty():
		r := image.Rect(0, 0, back.Dx(), back.Dy())
		return Layout{Canvas: r, Back: r}
	}

	fw, fh := front.Dx(), front.Dy()
	bh := transform.ScaledHeight(back.Dx(), back.Dy(), fw)

	return Layout{
		Canvas: image.Rect(0, 0, fw, fh+bh),
		Front:  image.Rect(0, 0, fw, fh),
		Back:   image.Rect(0, fh, fw, fh+bh),
	}
}

// Merge stacks front above back on an opaque canvas. Either side may be nil:
// a single image is flattened but not resized, and two nils give ErrNothingToSave.
func Merge(front, back image.Image) (image.Image, Layout, error) {
	layout := ComputeLayout(boundsOf(front), boundsOf(back))
	if layout.Canvas.Empty() {
		return nil, layout, ErrNothingToSave
	}

	if front == nil || back == nil {
		single := front
		if single == nil {
			single = back
		}
		return transform.Flatten(single, Background), layout, nil
	}

	canvas := image.NewRGBA(layout.Canvas)
	transform.Fill(canvas, Background)
	draw.Draw(canvas, layout.Front, front, front.Bounds().Min, draw.Over)
	draw.CatmullRom.Scale(canvas, layout.Back, back, back.Bounds(), draw.Over, nil)

	return canvas, layout, nil
}

func boundsOf(img image.Image) image.Rectangle {
	if img == nil {
		return image.Rectangle{}
	}
	return img.Bounds()
}
