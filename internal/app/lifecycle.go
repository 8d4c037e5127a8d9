package app

import (
	"idcard-merger/internal/debug"
	"idcard-merger/internal/gui"
	"idcard-merger/internal/logger"
)

type Lifecycle struct {
	debugCoord *debug.Coordinator
	guiManager *gui.Manager
	logger     logger.Logger
	isShutdown bool
}

func NewLifecycle(dc *debug.Coordinator, gm *gui.Manager) *Lifecycle {
	return &Lifecycle{
		debugCoord: dc,
		guiManager: gm,
		logger:     dc.Logger(),
	}
}

// Shutdown runs once; later calls do nothing.
func (l *Lifecycle) Shutdown() {
	if l.isShutdown {
		return
	}

	l.isShutdown = true
	l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)

	if l.guiManager != nil {
		l.guiManager.Shutdown()
		l.logger.Debug("Lifecycle", "GUI manager shutdown completed", nil)
	}

	// Last, so the steps above are still logged.
	l.logger.Info("Lifecycle", "shutdown sequence completed", nil)
	l.debugCoord.Shutdown()
}

func (l *Lifecycle) IsShutdown() bool {
	return l.isShutdown
}
