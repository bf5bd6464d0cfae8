package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/shazam-dl-go/internal/app"
	"github.com/yourusername/shazam-dl-go/internal/domain"
	"github.com/yourusername/shazam-dl-go/internal/infrastructure"
	"github.com/yourusername/shazam-dl-go/pkg/logger"
)

// environment holds what every command mode shares
type environment struct {
	config  *domain.Config
	log     *zap.Logger
	sink    *infrastructure.NotificationService
	history *infrastructure.SQLiteDownloadRepository
}

// setupEnvironment loads configuration, opens the log and the history
// database. A fresh session truncates the session log and writes its header;
// otherwise the session log is left alone and logs go to stdout.
func setupEnvironment(freshSession bool) (*environment, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logConfig := logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: "stdout",
	}
	if freshSession {
		saveDir := infrastructure.NewSaveDirResolver(config.Download.SaveDirs, nil).Resolve()
		logConfig.OutputPath = config.Logging.OutputPath
		logConfig.Console = config.Logging.Console
		logConfig.Truncate = true
		logConfig.Header = logger.SessionHeader(saveDir)
	}

	log, err := logger.New(logConfig)
	if err != nil {
		log = logger.NewDefault()
		log.Warn("Error initializing log file, logging to console only",
			zap.String("path", config.Logging.OutputPath),
			zap.Error(err))
	}
	appLog = log

	env := &environment{
		config: config,
		log:    log,
		sink:   infrastructure.NewNotificationService(&config.Notification, nil, log),
	}

	if config.History.Enabled {
		repo, err := infrastructure.NewSQLiteDownloadRepository(config.History.DatabasePath)
		if err != nil {
			log.Warn("Download history unavailable", zap.Error(err))
		} else {
			env.history = repo
		}
	}

	return env, nil
}

// Close releases the history database and flushes the log
func (e *environment) Close() {
	if e.history != nil {
		if err := e.history.Close(); err != nil {
			e.log.Warn("Failed to close history database", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}
