package models

import (
	"errors"
	"fmt"
	"image"

	"idcard-merger/internal/processing/transform"
)

// ErrInvalidRotation is returned for rotation deltas that are not a multiple of 90°.
var ErrInvalidRotation = errors.New("rotation must be a multiple of 90 degrees")

// Side identifies one of the two card slots.
type Side int

const (
	SideFront Side = iota
	SideBack
)

// Sides lists the slots in merge order.
var Sides = []Side{SideFront, SideBack}

func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Valid reports whether s names an existing slot.
func (s Side) Valid() bool {
	return s == SideFront || s == SideBack
}

// Rotation is a clockwise angle in degrees, always 0, 90, 180 or 270.
type Rotation int

// Add returns (r + delta) mod 360.
func (r Rotation) Add(delta int) (Rotation, error) {
	if delta%90 != 0 {
		return r, fmt.Errorf("%w: got %d", ErrInvalidRotation, delta)
	}
	return Rotation(((int(r)+delta)%360 + 360) % 360), nil
}

// SwapsAxes reports whether the rotation exchanges width and height.
func (r Rotation) SwapsAxes() bool {
	return r == 90 || r == 270
}

// ImageSlot holds one side of the card: the decoded original and the
// rotation applied on top of it. Rendered images are always derived from
// the original, so repeated rotation never degrades quality.
type ImageSlot struct {
	side     Side
	original image.Image
	rotation Rotation
	source   string
	format   string
}

// NewImageSlot creates an empty slot for side.
func NewImageSlot(side Side) *ImageSlot {
	return &ImageSlot{side: side}
}

func (s *ImageSlot) Side() Side {
	return s.side
}

// Loaded reports whether the slot holds an image.
func (s *ImageSlot) Loaded() bool {
	return s.original != nil
}

// Replace installs a freshly decoded image and resets the rotation.
func (s *ImageSlot) Replace(img image.Image, source, format string) {
	s.original = img
	s.source = source
	s.format = format
	s.rotation = 0
}

// Clear empties the slot.
func (s *ImageSlot) Clear() {
	s.Replace(nil, "", "")
}

func (s *ImageSlot) Rotation() Rotation {
	return s.rotation
}

func (s *ImageSlot) Source() string {
	return s.source
}

func (s *ImageSlot) Format() string {
	return s.format
}

// Original returns the image as loaded, without rotation.
func (s *ImageSlot) Original() image.Image {
	return s.original
}

// Rotate adds delta degrees clockwise. It is a no-op on an empty slot.
func (s *ImageSlot) Rotate(delta int) error {
	if !s.Loaded() {
		return nil
	}
	next, err := s.rotation.Add(delta)
	if err != nil {
		return err
	}
	s.rotation = next
	return nil
}

// Bounds is the size of RenderedFull without rendering it.
func (s *ImageSlot) Bounds() image.Rectangle {
	if !s.Loaded() {
		return image.Rectangle{}
	}
	b := s.original.Bounds()
	w, h := transform.RotatedSize(b.Dx(), b.Dy(), int(s.rotation))
	return image.Rect(0, 0, w, h)
}

// RenderedFull applies the rotation at full resolution. Nil when empty.
func (s *ImageSlot) RenderedFull() image.Image {
	if !s.Loaded() {
		return nil
	}
	return transform.Rotate(s.original, int(s.rotation))
}

// RenderedForDisplay applies the rotation and scales the result to fit
// inside a width×height box. Nil when empty or when the box is degenerate.
func (s *ImageSlot) RenderedForDisplay(width, height int) image.Image {
	if !s.Loaded() || width <= 0 || height <= 0 {
		return nil
	}
	return transform.ScaleToFit(s.RenderedFull(), width, height)
}
