package app

import (
	"errors"
	"fmt"
	"os"

	"idcard-merger/internal/debug"
	"idcard-merger/internal/gui"
	"idcard-merger/internal/opencv"
	"idcard-merger/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName       = "ID Card Merger"
	AppID         = "com.idcardmerger.app"
	AppVersion    = "1.0.0"
	WindowWidth   = 1000
	WindowHeight  = 800
	RotationDelta = 90
)

type Application struct {
	fyneApp     fyne.App
	window      fyne.Window
	guiManager  *gui.Manager
	coordinator *pipeline.Coordinator
	debugCoord  *debug.Coordinator
	handlers    *Handlers
	lifecycle   *Lifecycle
}

var errNoApp = errors.New("no Fyne application")

// NewApplication builds the desktop application, reading diagnostics
// settings from the environment. A driver that cannot start is reported
// as an error rather than a panic.
func NewApplication() (application *Application, err error) {
	defer recoverStartup(&application, &err)
	return New(app.NewWithID(AppID), debug.ConfigFromEnv(os.Getenv))
}

func recoverStartup(application **Application, err *error) {
	if r := recover(); r != nil {
		*application = nil
		*err = fmt.Errorf("GUI startup failed: %v", r)
	}
}

// New wires an application onto an existing Fyne app.
func New(fyneApp fyne.App, config debug.Config) (application *Application, err error) {
	if fyneApp == nil {
		return nil, errNoApp
	}
	defer recoverStartup(&application, &err)

	debugCoord := debug.NewCoordinator(config)
	logger := debugCoord.Logger()
	timing := debugCoord.TimingTracker()

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	logger.Info("Application", "starting application", map[string]interface{}{
		"version":       AppVersion,
		"window_width":  WindowWidth,
		"window_height": WindowHeight,
		"json_logs":     config.UseJSONLogging,
		"log_level":     config.LogLevel.String(),
	})

	loader := pipeline.NewLoader(logger, timing, opencv.NewDecoder())
	saver := pipeline.NewSaver(logger, timing)
	coordinator := pipeline.NewCoordinator(loader, saver, logger, timing)

	guiManager := gui.NewManager(window, coordinator, logger)

	application = &Application{
		fyneApp:     fyneApp,
		window:      window,
		guiManager:  guiManager,
		coordinator: coordinator,
		debugCoord:  debugCoord,
		lifecycle:   NewLifecycle(debugCoord, guiManager),
	}
	application.setupHandlers()

	window.SetContent(guiManager.GetMainContainer())

	logger.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	a.handlers = NewHandlers(a.coordinator, a.guiManager, a.debugCoord.Logger())

	a.guiManager.SetLoadHandler(a.handlers.HandleLoad)
	a.guiManager.SetRotateHandler(a.handlers.HandleRotate)
	a.guiManager.SetMergeSaveHandler(a.handlers.HandleMergeSave)
	a.window.SetOnDropped(a.handlers.HandleDrop)
}

func (a *Application) Window() fyne.Window {
	return a.window
}

func (a *Application) Handlers() *Handlers {
	return a.handlers
}

func (a *Application) Coordinator() *pipeline.Coordinator {
	return a.coordinator
}

func (a *Application) Run() error {
	logger := a.debugCoord.Logger()

	a.window.SetCloseIntercept(func() {
		logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.window.Show()
	logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	return nil
}

// Quit stops the event loop; safe to call from any goroutine via fyne.Do.
func (a *Application) Quit() {
	a.lifecycle.Shutdown()
	a.fyneApp.Quit()
}
