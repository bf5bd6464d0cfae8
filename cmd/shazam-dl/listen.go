package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yourusername/shazam-dl-go/internal/app"
	"github.com/yourusername/shazam-dl-go/internal/infrastructure"
)

// runListen polls for detections until interrupted
func runListen(ctx context.Context, env *environment) error {
	executable, err := os.Executable()
	if err != nil {
		executable = os.Args[0]
	}

	source := infrastructure.NewTermuxNotificationSource(env.config.Detection.ListBinary, nil)
	listener := app.NewListener(source, env.sink, &env.config.Detection, app.DownloadAction(executable), env.log)

	if err := listener.Start(ctx); err != nil {
		return err
	}

	var exitErr error
	select {
	case <-ctx.Done():
		env.log.Info("Received shutdown signal")
	case <-listener.Done():
		if ctx.Err() == nil {
			exitErr = fmt.Errorf("listener stopped: notification tool unavailable")
		}
	}

	if err := listener.Stop(); err != nil {
		env.log.Error("Error stopping listener", zap.Error(err))
	}
	return exitErr
}
