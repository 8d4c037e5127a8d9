package transform

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// twoPixel is 2×1: red on the left, blue on the right.
func twoPixel() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, blue)
	return img
}

func TestRotateClockwise(t *testing.T) {
	out := Rotate(twoPixel(), 90)

	require.Equal(t, image.Rect(0, 0, 1, 2), out.Bounds())
	assert.Equal(t, red, out.NRGBAAt(0, 0), "left edge moves to the top")
	assert.Equal(t, blue, out.NRGBAAt(0, 1))
}

func TestRotateRightAngles(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 10))

	for _, tc := range []struct {
		degrees int
		w, h    int
	}{
		{0, 40, 10},
		{90, 10, 40},
		{180, 40, 10},
		{270, 10, 40},
		{360, 40, 10},
		{-90, 10, 40},
	} {
		out := Rotate(src, tc.degrees)
		assert.Equal(t, tc.w, out.Bounds().Dx(), "degrees=%d", tc.degrees)
		assert.Equal(t, tc.h, out.Bounds().Dy(), "degrees=%d", tc.degrees)

		w, h := RotatedSize(40, 10, tc.degrees)
		assert.Equal(t, tc.w, w)
		assert.Equal(t, tc.h, h)
	}
}

func TestRotate180(t *testing.T) {
	out := Rotate(twoPixel(), 180)
	assert.Equal(t, blue, out.NRGBAAt(0, 0))
	assert.Equal(t, red, out.NRGBAAt(1, 0))
}

func TestRotateLeavesInputUntouched(t *testing.T) {
	src := twoPixel()
	_ = Rotate(src, 90)
	assert.Equal(t, image.Rect(0, 0, 2, 1), src.Bounds())
	assert.Equal(t, red, src.NRGBAAt(0, 0))
}

func TestRotateArbitraryAngleGrowsBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	out := Rotate(src, 45)
	assert.Greater(t, out.Bounds().Dx(), 100)
	assert.Greater(t, out.Bounds().Dy(), 100)
}

func TestFitSize(t *testing.T) {
	for _, tc := range []struct {
		name                   string
		srcW, srcH, boxW, boxH int
		w, h                   int
	}{
		{"wide into square", 800, 400, 200, 200, 200, 100},
		{"tall into square", 400, 800, 200, 200, 100, 200},
		{"upscales to fit", 50, 25, 200, 200, 200, 100},
		{"exact", 300, 200, 300, 200, 300, 200},
		{"thin line keeps one pixel", 1000, 1, 10, 10, 10, 1},
		{"degenerate box", 100, 100, 0, 50, 0, 0},
		{"degenerate source", 0, 100, 50, 50, 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w, h := FitSize(tc.srcW, tc.srcH, tc.boxW, tc.boxH)
			assert.Equal(t, tc.w, w)
			assert.Equal(t, tc.h, h)
		})
	}
}

func TestScaleToFit(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 600, 300))

	out := ScaleToFit(src, 300, 300)
	require.NotNil(t, out)
	assert.Equal(t, 300, out.Bounds().Dx())
	assert.Equal(t, 150, out.Bounds().Dy())

	assert.Same(t, src, ScaleToFit(src, 600, 300), "already fitting image is returned as is")
	assert.Nil(t, ScaleToFit(src, 0, 0))
	assert.Nil(t, ScaleToFit(nil, 10, 10))
}

func TestScaledHeight(t *testing.T) {
	assert.Equal(t, 150, ScaledHeight(800, 300, 400))
	assert.Equal(t, 1, ScaledHeight(1000, 1, 10))
	assert.Equal(t, 67, ScaledHeight(3, 2, 100))
	assert.Zero(t, ScaledHeight(0, 10, 10))
}

func TestFlattenRemovesAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{}) // fully transparent
	src.SetNRGBA(6, 5, red)

	out := Flatten(src, color.White)

	require.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(1, 0))
	assert.True(t, out.Opaque())
}
