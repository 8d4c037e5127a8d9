package gui

import (
	"idcard-merger/internal/models"

	"fyne.io/fyne/v2"
)

// Region is an absolute rectangle on the window canvas.
type Region struct {
	Pos  fyne.Position
	Size fyne.Size
}

// Contains is inclusive of the top-left edge and exclusive of the bottom-right.
func (r Region) Contains(pos fyne.Position) bool {
	if r.Size.Width <= 0 || r.Size.Height <= 0 {
		return false
	}
	return pos.X >= r.Pos.X && pos.X < r.Pos.X+r.Size.Width &&
		pos.Y >= r.Pos.Y && pos.Y < r.Pos.Y+r.Size.Height
}

// SlotAt returns the side whose region contains pos. Sides are tested in
// models.Sides order so overlapping regions resolve to the front.
func SlotAt(pos fyne.Position, regions map[models.Side]Region) (models.Side, bool) {
	for _, side := range models.Sides {
		region, ok := regions[side]
		if ok && region.Contains(pos) {
			return side, true
		}
	}
	return 0, false
}
