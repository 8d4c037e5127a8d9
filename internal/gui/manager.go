package gui

import (
	"errors"
	"fmt"
	"image"

	"idcard-merger/internal/gui/components"
	"idcard-merger/internal/gui/widgets"
	"idcard-merger/internal/logger"
	"idcard-merger/internal/models"
	"idcard-merger/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// SlotSource gives the manager read access to the slots it displays.
type SlotSource interface {
	Slot(side models.Side) *models.ImageSlot
}

// Manager owns the window content. All methods are called on the UI thread.
type Manager struct {
	window     fyne.Window
	slots      SlotSource
	logger     logger.Logger
	isShutdown bool

	panes     map[models.Side]*widgets.PreviewPane
	toolbar   *components.Toolbar
	statusBar *components.StatusBar
}

func NewManager(window fyne.Window, slots SlotSource, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	m := &Manager{
		window:    window,
		slots:     slots,
		logger:    log,
		panes:     make(map[models.Side]*widgets.PreviewPane, len(models.Sides)),
		toolbar:   components.NewToolbar(),
		statusBar: components.NewStatusBar(),
	}

	for _, side := range models.Sides {
		slot := slots.Slot(side)
		m.panes[side] = widgets.NewPreviewPane(paneTitle(side), slot)
		m.toolbar.SetRotateEnabled(side, slot.Loaded())
	}

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"preview_min_width":  widgets.PreviewMinWidth,
		"preview_min_height": widgets.PreviewMinHeight,
	})
	return m
}

func paneTitle(side models.Side) string {
	if side == models.SideBack {
		return "Back"
	}
	return "Front"
}

func (m *Manager) GetMainContainer() *fyne.Container {
	previews := container.NewGridWithRows(len(models.Sides))
	for _, side := range models.Sides {
		previews.Add(m.panes[side])
	}

	bottom := container.NewVBox(
		m.toolbar.GetContainer(),
		m.statusBar.GetContainer(),
	)

	return container.NewBorder(nil, bottom, nil, nil, previews)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) Pane(side models.Side) *widgets.PreviewPane {
	return m.panes[side]
}

func (m *Manager) Toolbar() *components.Toolbar {
	return m.toolbar
}

func (m *Manager) StatusBar() *components.StatusBar {
	return m.statusBar
}

func (m *Manager) SetLoadHandler(handler func(models.Side)) {
	m.toolbar.SetLoadHandler(func(side models.Side) {
		m.logger.Debug("GUIManager", "load requested", map[string]interface{}{"side": side.String()})
		handler(side)
	})
}

func (m *Manager) SetRotateHandler(handler func(models.Side)) {
	m.toolbar.SetRotateHandler(func(side models.Side) {
		m.logger.Debug("GUIManager", "rotate requested", map[string]interface{}{"side": side.String()})
		handler(side)
	})
}

func (m *Manager) SetMergeSaveHandler(handler func()) {
	m.toolbar.SetMergeSaveHandler(func() {
		m.logger.Debug("GUIManager", "merge and save requested", nil)
		handler()
	})
}

// RefreshSlot redraws one pane and its status after a load or rotate.
func (m *Manager) RefreshSlot(side models.Side) {
	pane, ok := m.panes[side]
	if !ok {
		return
	}
	slot := m.slots.Slot(side)

	pane.Update()
	m.toolbar.SetRotateEnabled(side, slot.Loaded())
	m.statusBar.SetSlot(slot)
}

// Regions reports where each pane currently sits on the window canvas.
func (m *Manager) Regions() map[models.Side]Region {
	regions := make(map[models.Side]Region, len(m.panes))
	app := fyne.CurrentApp()
	if app == nil {
		return regions
	}
	driver := app.Driver()
	for side, pane := range m.panes {
		regions[side] = Region{
			Pos:  driver.AbsolutePositionForObject(pane),
			Size: pane.Size(),
		}
	}
	return regions
}

// TargetAt maps a drop position to the pane under it.
func (m *Manager) TargetAt(pos fyne.Position) (models.Side, bool) {
	return SlotAt(pos, m.Regions())
}

func (m *Manager) UpdateStatus(status string) {
	m.statusBar.SetStatus(status)
	m.logger.Debug("GUIManager", "status updated", map[string]interface{}{
		"status": status,
	})
}

// ShowError logs err and shows its user-facing message in a modal dialog.
func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})
	dialog.ShowError(errors.New(pipeline.UserMessage(err)), m.window)
}

func (m *Manager) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, m.window)
}

// ShowSaved reports a finished merge with the output dimensions.
func (m *Manager) ShowSaved(name string, size image.Point) {
	message := fmt.Sprintf("Saved %s (%d×%d)", name, size.X, size.Y)
	m.UpdateStatus(message)
	m.ShowInfo("Merge complete", message)
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}
