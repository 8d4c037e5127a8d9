package pipeline

import (
	"fmt"
	"image"

	"idcard-merger/internal/logger"
	"idcard-merger/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

// Coordinator owns the front and back slots and carries out the user
// intents dispatched by the UI: load, rotate and merge-and-save. Every call
// runs to completion on the caller's goroutine.
type Coordinator struct {
	front         *models.ImageSlot
	back          *models.ImageSlot
	loader        *Loader
	saver         *Saver
	logger        logger.Logger
	timingTracker TimingTracker
}

func NewCoordinator(loader *Loader, saver *Saver, log logger.Logger, tt TimingTracker) *Coordinator {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if tt == nil {
		tt = noopTimer{}
	}
	if loader == nil {
		loader = NewLoader(log, tt)
	}
	if saver == nil {
		saver = NewSaver(log, tt)
	}

	return &Coordinator{
		front:         models.NewImageSlot(models.SideFront),
		back:          models.NewImageSlot(models.SideBack),
		loader:        loader,
		saver:         saver,
		logger:        log,
		timingTracker: tt,
	}
}

// Slot returns the slot for side, or nil for an unknown side.
func (c *Coordinator) Slot(side models.Side) *models.ImageSlot {
	switch side {
	case models.SideFront:
		return c.front
	case models.SideBack:
		return c.back
	default:
		return nil
	}
}

func (c *Coordinator) slot(side models.Side) (*models.ImageSlot, error) {
	slot := c.Slot(side)
	if slot == nil {
		return nil, fmt.Errorf("unknown slot %s", side)
	}
	return slot, nil
}

// LoadSlot decodes path into side. On failure the slot keeps its previous image.
func (c *Coordinator) LoadSlot(side models.Side, path string) error {
	slot, err := c.slot(side)
	if err != nil {
		return err
	}

	data, err := c.loader.LoadFromPath(path)
	if err != nil {
		return err
	}

	c.install(slot, data)
	return nil
}

// LoadSlotFromReader is LoadSlot for a URI picked through a Fyne dialog
// or dropped on the window. The reader is not closed.
func (c *Coordinator) LoadSlotFromReader(side models.Side, reader fyne.URIReadCloser) error {
	slot, err := c.slot(side)
	if err != nil {
		return err
	}

	data, err := c.loader.LoadFromReader(reader)
	if err != nil {
		return err
	}

	c.install(slot, data)
	return nil
}

func (c *Coordinator) install(slot *models.ImageSlot, data *ImageData) {
	slot.Replace(data.Image, data.Source, data.Format)
	c.logger.Info("Coordinator", "slot loaded", map[string]interface{}{
		"side":   slot.Side().String(),
		"source": data.Source,
		"width":  data.Width,
		"height": data.Height,
	})
}

// RotateSlot turns side by delta degrees clockwise. No-op on an empty slot.
func (c *Coordinator) RotateSlot(side models.Side, delta int) error {
	slot, err := c.slot(side)
	if err != nil {
		return err
	}

	if err := slot.Rotate(delta); err != nil {
		c.logger.Warning("Coordinator", "rotation rejected", map[string]interface{}{
			"side":  side.String(),
			"delta": delta,
		})
		return err
	}

	c.logger.Debug("Coordinator", "slot rotated", map[string]interface{}{
		"side":     side.String(),
		"rotation": int(slot.Rotation()),
		"loaded":   slot.Loaded(),
	})
	return nil
}

// CanSave reports whether at least one slot holds an image.
func (c *Coordinator) CanSave() bool {
	return c.front.Loaded() || c.back.Loaded()
}

// Merge renders both slots at full resolution and stacks them.
func (c *Coordinator) Merge() (image.Image, Layout, error) {
	if !c.CanSave() {
		c.logger.Warning("Coordinator", "merge requested with no images", nil)
		return nil, Layout{}, ErrNothingToSave
	}

	ctx := c.timingTracker.StartTiming("merge_images")
	defer c.timingTracker.EndTiming(ctx)

	merged, layout, err := Merge(c.front.RenderedFull(), c.back.RenderedFull())
	if err != nil {
		return nil, layout, err
	}

	c.logger.Info("Coordinator", "images merged", map[string]interface{}{
		"canvas": fmt.Sprintf("%dx%d", layout.Canvas.Dx(), layout.Canvas.Dy()),
		"front":  layout.Front.String(),
		"back":   layout.Back.String(),
	})
	return merged, layout, nil
}

// MergeAndSave merges and writes the result to path, returning the path written.
func (c *Coordinator) MergeAndSave(path string) (string, Layout, error) {
	merged, layout, err := c.Merge()
	if err != nil {
		return "", layout, err
	}

	written, err := c.saver.SaveToPath(path, merged)
	if err != nil {
		return "", layout, err
	}
	return written, layout, nil
}

// MergeAndSaveToWriter merges and writes through a Fyne writer. The writer
// is closed in every case; on failure the target is removed. It returns the
// URI written, which differs from the writer's when ".png" was appended.
func (c *Coordinator) MergeAndSaveToWriter(writer fyne.URIWriteCloser) (fyne.URI, Layout, error) {
	merged, layout, err := c.Merge()
	if err != nil {
		writer.Close()
		storage.Delete(writer.URI())
		return writer.URI(), layout, err
	}

	written, err := c.saver.SaveToWriter(writer, merged)
	return written, layout, err
}
