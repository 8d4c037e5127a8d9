package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"idcard-merger/internal/gui"
	"idcard-merger/internal/logger"
	"idcard-merger/internal/models"
	"idcard-merger/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const DefaultOutputName = "idcard.jpg"

var (
	errUnsupportedDrop = errors.New("not a supported image type")
	errInvalidName     = errors.New("enter a file name without folders")
)

// Handlers turns user intents from the window into coordinator calls.
// Every method runs on the UI thread and finishes before returning.
type Handlers struct {
	coordinator *pipeline.Coordinator
	guiManager  *gui.Manager
	logger      logger.Logger
}

func NewHandlers(coord *pipeline.Coordinator, gm *gui.Manager, log logger.Logger) *Handlers {
	return &Handlers{
		coordinator: coord,
		guiManager:  gm,
		logger:      log,
	}
}

func (h *Handlers) HandleLoad(side models.Side) {
	open := dialog.NewFileOpen(h.onOpened(side), h.guiManager.GetWindow())
	open.SetFilter(storage.NewExtensionFileFilter(pipeline.SupportedExtensions()))
	open.Show()
}

func (h *Handlers) onOpened(side models.Side) func(fyne.URIReadCloser, error) {
	return func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.guiManager.ShowError("File Open Error", err)
			return
		}
		if reader == nil {
			return
		}
		h.loadFromReader(side, reader)
	}
}

func (h *Handlers) loadFromReader(side models.Side, reader fyne.URIReadCloser) {
	defer reader.Close()

	if err := h.coordinator.LoadSlotFromReader(side, reader); err != nil {
		h.guiManager.ShowError("Image Load Error", err)
		return
	}

	h.guiManager.RefreshSlot(side)
	h.guiManager.UpdateStatus(fmt.Sprintf("Loaded %s image %s", side, reader.URI().Name()))
}

func (h *Handlers) HandleRotate(side models.Side) {
	if err := h.coordinator.RotateSlot(side, RotationDelta); err != nil {
		h.guiManager.ShowError("Rotate Error", err)
		return
	}

	h.guiManager.RefreshSlot(side)
	h.guiManager.UpdateStatus(fmt.Sprintf("Rotated %s to %d°", side, int(h.coordinator.Slot(side).Rotation())))
}

// HandleMergeSave asks for a folder, then a file name. The name is checked
// before anything is opened, so an existing file is only replaced by a
// finished image.
func (h *Handlers) HandleMergeSave() {
	if !h.coordinator.CanSave() {
		h.guiManager.ShowError("Nothing to Save", pipeline.ErrNothingToSave)
		return
	}

	folder := dialog.NewFolderOpen(h.onFolderChosen, h.guiManager.GetWindow())
	folder.Show()
}

func (h *Handlers) onFolderChosen(dir fyne.ListableURI, err error) {
	if err != nil {
		h.guiManager.ShowError("File Save Error", err)
		return
	}
	if dir == nil {
		return
	}

	name := widget.NewEntry()
	name.SetText(DefaultOutputName)
	name.Validator = ValidateOutputName

	form := dialog.NewForm("Save merged image", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("File name", name)},
		func(confirmed bool) {
			if confirmed {
				h.saveInto(dir, name.Text)
			}
		},
		h.guiManager.GetWindow())
	form.Show()
}

// ValidateOutputName accepts a bare file name ending in .png, .jpg or
// .jpeg, or with no extension at all.
func ValidateOutputName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errInvalidName
	}
	_, err := pipeline.FormatForExtension(filepath.Ext(name))
	return err
}

func (h *Handlers) saveInto(dir fyne.URI, name string) {
	name = strings.TrimSpace(name)
	if err := ValidateOutputName(name); err != nil {
		h.guiManager.ShowError("Image Save Error", &pipeline.SaveError{Path: name, Err: err})
		return
	}
	name = pipeline.OutputPath(name)

	if dir.Scheme() != "file" {
		h.saveToChild(dir, name)
		return
	}

	path := filepath.Join(dir.Path(), name)
	if _, err := os.Stat(path); err == nil {
		dialog.ShowConfirm("Replace file?",
			fmt.Sprintf("%s already exists. Replace it?", name),
			func(replace bool) {
				if replace {
					h.saveToPath(path)
				}
			},
			h.guiManager.GetWindow())
		return
	}
	h.saveToPath(path)
}

func (h *Handlers) saveToPath(path string) {
	written, layout, err := h.coordinator.MergeAndSave(path)
	if err != nil {
		h.guiManager.ShowError("Image Save Error", err)
		h.guiManager.UpdateStatus("Save failed")
		return
	}

	h.guiManager.ShowSaved(filepath.Base(written), layout.Canvas.Size())
}

// saveToChild covers folders outside the local file system, where only
// Fyne storage can write.
func (h *Handlers) saveToChild(dir fyne.URI, name string) {
	target, err := storage.Child(dir, name)
	if err != nil {
		h.guiManager.ShowError("Image Save Error", &pipeline.SaveError{Path: name, Err: err})
		return
	}
	writer, err := storage.Writer(target)
	if err != nil {
		h.guiManager.ShowError("Image Save Error", &pipeline.SaveError{Path: name, Err: err})
		return
	}

	written, layout, err := h.coordinator.MergeAndSaveToWriter(writer)
	if err != nil {
		h.guiManager.ShowError("Image Save Error", err)
		h.guiManager.UpdateStatus("Save failed")
		return
	}
	h.guiManager.ShowSaved(written.Name(), layout.Canvas.Size())
}

// HandleDrop loads the first supported file dropped on a preview pane.
// Drops that miss both panes are ignored.
func (h *Handlers) HandleDrop(pos fyne.Position, uris []fyne.URI) {
	side, ok := h.guiManager.TargetAt(pos)
	if !ok {
		h.logger.Debug("Handlers", "drop outside preview panes ignored", map[string]interface{}{
			"x": pos.X,
			"y": pos.Y,
		})
		return
	}

	uri := firstSupported(uris)
	if uri == nil {
		source := ""
		if len(uris) > 0 {
			source = uris[0].Name()
		}
		h.guiManager.ShowError("Image Load Error", &pipeline.DecodeError{Source: source, Err: errUnsupportedDrop})
		return
	}

	reader, err := storage.Reader(uri)
	if err != nil {
		h.guiManager.ShowError("Image Load Error", &pipeline.DecodeError{Source: uri.Name(), Err: err})
		return
	}
	h.loadFromReader(side, reader)
}

func firstSupported(uris []fyne.URI) fyne.URI {
	for _, uri := range uris {
		if pipeline.IsSupportedExtension(uri.Name()) {
			return uri
		}
	}
	return nil
}
