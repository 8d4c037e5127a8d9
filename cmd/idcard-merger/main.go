package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"idcard-merger/internal/app"
	"idcard-merger/internal/logger"

	"fyne.io/fyne/v2"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		startupLogger := logger.NewConsoleLogger(logger.ErrorLevel)
		startupLogger.Error("Main", err, map[string]interface{}{
			"stage": "startup",
		})
		fmt.Fprintf(os.Stderr, "%s failed to start: %v\n", app.AppName, err)
		os.Exit(1)
	}

	setupGracefulShutdown(application)

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s exited with error: %v\n", app.AppName, err)
		os.Exit(1)
	}
}

// setupGracefulShutdown quits the event loop on SIGINT or SIGTERM.
func setupGracefulShutdown(application *app.Application) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fyne.Do(application.Quit)
	}()
}
