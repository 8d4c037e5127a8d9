// Package transform holds the pixel operations used by image slots and the
// merger: rotation, aspect-preserving fit and alpha flattening.
package transform

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Rotate returns img turned clockwise by degrees. Right angles are exact
// pixel permutations; any other angle is resampled with bilinear
// interpolation onto a transparent background large enough to hold it.
// The input is never modified.
func Rotate(img image.Image, degrees int) *image.NRGBA {
	// imaging rotates counter-clockwise
	return imaging.Rotate(img, float64(-degrees), color.Transparent)
}

// RotatedSize reports the bounds a right-angle rotation produces.
func RotatedSize(width, height, degrees int) (int, int) {
	switch ((degrees % 360) + 360) % 360 {
	case 90, 270:
		return height, width
	default:
		return width, height
	}
}

// FitSize scales a srcW×srcH rectangle to the largest size that fits inside
// boxW×boxH without changing its aspect ratio. Either returned side is at
// least 1. A degenerate source or box yields 0, 0.
func FitSize(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}

	scale := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > boxW {
		w = boxW
	}
	if h > boxH {
		h = boxH
	}
	return w, h
}

// ScaleToFit resamples img to FitSize inside the box using a Lanczos
// filter. Returns nil when the box is degenerate.
func ScaleToFit(img image.Image, boxW, boxH int) image.Image {
	if img == nil {
		return nil
	}

	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), boxW, boxH)
	if w == 0 || h == 0 {
		return nil
	}
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// ScaledHeight is the height a width×height image takes when resized to
// targetWidth with its aspect ratio kept, rounded and never below 1.
func ScaledHeight(width, height, targetWidth int) int {
	if width <= 0 {
		return 0
	}
	h := int(math.Round(float64(targetWidth) * float64(height) / float64(width)))
	if h < 1 {
		h = 1
	}
	return h
}

// Flatten composites img over an opaque background and returns an RGBA
// image whose alpha is 255 everywhere, anchored at the origin.
func Flatten(img image.Image, background color.Color) *image.RGBA {
	b := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	Fill(canvas, background)
	draw.Draw(canvas, canvas.Bounds(), img, b.Min, draw.Over)
	return canvas
}

// Fill paints the whole of dst with c.
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}
