package components

import (
	"fmt"

	"idcard-merger/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	frontLabel  *widget.Label
	backLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	frontLabel := widget.NewLabel(SlotSummary(models.SideFront, nil))
	backLabel := widget.NewLabel(SlotSummary(models.SideBack, nil))

	slotsContainer := container.NewHBox(
		frontLabel,
		widget.NewSeparator(),
		backLabel,
	)

	mainContainer := container.NewBorder(
		nil, nil,
		statusLabel,
		slotsContainer,
	)

	return &StatusBar{
		container:   mainContainer,
		statusLabel: statusLabel,
		frontLabel:  frontLabel,
		backLabel:   backLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetSlot(slot *models.ImageSlot) {
	label := sb.frontLabel
	if slot.Side() == models.SideBack {
		label = sb.backLabel
	}
	label.SetText(SlotSummary(slot.Side(), slot))
}

func (sb *StatusBar) SlotText(side models.Side) string {
	if side == models.SideBack {
		return sb.backLabel.Text
	}
	return sb.frontLabel.Text
}

// SlotSummary renders e.g. "Front: 400×600, 90°" or "Back: empty".
func SlotSummary(side models.Side, slot *models.ImageSlot) string {
	name := "Front"
	if side == models.SideBack {
		name = "Back"
	}
	if slot == nil || !slot.Loaded() {
		return name + ": empty"
	}
	b := slot.Bounds()
	return fmt.Sprintf("%s: %d×%d, %d°", name, b.Dx(), b.Dy(), int(slot.Rotation()))
}
