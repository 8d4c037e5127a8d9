package components

import (
	"idcard-merger/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type Toolbar struct {
	container *fyne.Container

	LoadFrontButton   *widget.Button
	RotateFrontButton *widget.Button
	LoadBackButton    *widget.Button
	RotateBackButton  *widget.Button
	MergeSaveButton   *widget.Button

	loadHandler      func(models.Side)
	rotateHandler    func(models.Side)
	mergeSaveHandler func()
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.setupToolbar()
	return toolbar
}

func (t *Toolbar) setupToolbar() {
	t.LoadFrontButton = widget.NewButtonWithIcon("Load front", theme.FolderOpenIcon(), func() { t.onLoad(models.SideFront) })
	t.RotateFrontButton = widget.NewButtonWithIcon("Rotate front", theme.ViewRefreshIcon(), func() { t.onRotate(models.SideFront) })
	t.LoadBackButton = widget.NewButtonWithIcon("Load back", theme.FolderOpenIcon(), func() { t.onLoad(models.SideBack) })
	t.RotateBackButton = widget.NewButtonWithIcon("Rotate back", theme.ViewRefreshIcon(), func() { t.onRotate(models.SideBack) })

	t.MergeSaveButton = widget.NewButtonWithIcon("Merge and save", theme.DocumentSaveIcon(), t.onMergeSave)
	t.MergeSaveButton.Importance = widget.HighImportance

	buttons := []fyne.CanvasObject{
		t.LoadFrontButton,
		t.RotateFrontButton,
		t.LoadBackButton,
		t.RotateBackButton,
		t.MergeSaveButton,
	}
	t.container = container.NewPadded(container.NewGridWithColumns(len(buttons), buttons...))
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetLoadHandler(handler func(models.Side)) {
	t.loadHandler = handler
}

func (t *Toolbar) SetRotateHandler(handler func(models.Side)) {
	t.rotateHandler = handler
}

func (t *Toolbar) SetMergeSaveHandler(handler func()) {
	t.mergeSaveHandler = handler
}

// SetRotateEnabled greys out the rotate button of an empty slot.
func (t *Toolbar) SetRotateEnabled(side models.Side, enabled bool) {
	button := t.RotateFrontButton
	if side == models.SideBack {
		button = t.RotateBackButton
	}
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}

func (t *Toolbar) onLoad(side models.Side) {
	if t.loadHandler != nil {
		t.loadHandler(side)
	}
}

func (t *Toolbar) onRotate(side models.Side) {
	if t.rotateHandler != nil {
		t.rotateHandler(side)
	}
}

func (t *Toolbar) onMergeSave() {
	if t.mergeSaveHandler != nil {
		t.mergeSaveHandler()
	}
}
