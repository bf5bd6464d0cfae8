package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/yourusername/shazam-dl-go/internal/app"
	"github.com/yourusername/shazam-dl-go/internal/infrastructure"
)

// runDownload fetches one song and reports the result through notifications
func runDownload(ctx context.Context, env *environment, label string) error {
	cfg := env.config

	monitor := infrastructure.NewYTDLPMonitor(&cfg.Download, env.log)
	if cfg.Download.ConsoleProgress && infrastructure.StdoutIsTerminal() {
		monitor.SetConsole(infrastructure.NewConsoleProgress(os.Stdout, "DOWNLOADING"))
	}

	manager := app.NewDownloadManager(
		infrastructure.NewSaveDirResolver(cfg.Download.SaveDirs, env.log),
		monitor,
		infrastructure.NewOutputFileResolver(cfg.Download.RecentWindow, env.log),
		env.sink,
		&cfg.Download,
		env.log,
	).WithMediaScanner(
		infrastructure.NewAndroidMediaScanner(cfg.Download.MediaScan, cfg.Download.MediaScanBinary, nil, env.log),
	).WithShareTargets(cfg.Notification.ShareBinary, cfg.Logging.OutputPath)

	if env.history != nil {
		manager.WithHistory(env.history)
	}

	download, err := manager.Process(ctx, label)
	if err != nil {
		return err
	}

	env.log.Info("Done", zap.String("file", download.FilePath))
	return nil
}
