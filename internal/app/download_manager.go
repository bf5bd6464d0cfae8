package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yourusername/shazam-dl-go/internal/domain"
	"github.com/yourusername/shazam-dl-go/pkg/logger"
	"go.uber.org/zap"
)

// DownloadManager runs one confirmed download from request to result
// notification. History and media scanning are optional.
type DownloadManager struct {
	saveDirs       domain.SaveLocationResolver
	monitor        domain.ProcessMonitor
	resolver       domain.FileResolver
	sink           domain.NotificationSink
	config         *domain.DownloadConfig
	logger         *zap.Logger
	repo           domain.DownloadRepository
	scanner        domain.MediaScanner
	shareBinary    string
	sessionLogPath string
}

// NewDownloadManager creates a new download manager
func NewDownloadManager(
	saveDirs domain.SaveLocationResolver,
	monitor domain.ProcessMonitor,
	resolver domain.FileResolver,
	sink domain.NotificationSink,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *DownloadManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadManager{
		saveDirs:    saveDirs,
		monitor:     monitor,
		resolver:    resolver,
		sink:        sink,
		config:      config,
		logger:      logger,
		shareBinary: "termux-share",
	}
}

// WithHistory records every attempt in repo
func (dm *DownloadManager) WithHistory(repo domain.DownloadRepository) *DownloadManager {
	dm.repo = repo
	return dm
}

// WithMediaScanner announces completed files to the media library
func (dm *DownloadManager) WithMediaScanner(scanner domain.MediaScanner) *DownloadManager {
	dm.scanner = scanner
	return dm
}

// WithShareTargets sets the tool used by Open and View Log buttons and the
// log file the View Log button shares
func (dm *DownloadManager) WithShareTargets(shareBinary, sessionLogPath string) *DownloadManager {
	dm.shareBinary = shareBinary
	dm.sessionLogPath = sessionLogPath
	return dm
}

// Process downloads the song with the given label. The returned download is
// always in a terminal state; the error wraps domain.ErrDownloadFailed and
// the underlying cause when the download did not complete.
func (dm *DownloadManager) Process(ctx context.Context, label string) (*domain.Download, error) {
	req := domain.NewDownloadRequest(label)
	download := domain.NewDownload(req)
	dm.record(download, true)

	dm.logger.Info("Starting download", zap.String("id", download.ID), zap.String("song", label))

	if err := download.MarkInitializing(); err != nil {
		return download, err
	}
	saveDir := dm.saveDirs.Resolve()

	dm.removeNotification(domain.NotificationDetected)
	dm.createNotification(initializingNotification(label))
	dm.record(download, false)

	version, err := dm.monitor.CheckInstalled(ctx)
	if err != nil {
		dm.logger.Error("yt-dlp not installed or not working", zap.Error(err))
		dm.removeNotification(domain.NotificationProgress)
		dm.createNotification(toolMissingNotification())
		return dm.fail(download, err)
	}
	dm.logger.Info("yt-dlp version", zap.String("version", version))

	template := filepath.Join(saveDir, req.SafeLabel()+".%(ext)s")
	dm.logger.Info("Output path template", zap.String("template", template))

	if err := download.MarkDownloading(saveDir); err != nil {
		return download, err
	}
	dm.record(download, false)

	result, runErr := dm.monitor.Run(ctx, req.SearchQuery, template, func(percent float64) {
		if err := dm.sink.Update(progressNotification(percent)); err != nil {
			dm.logger.Debug("Failed to update progress notification", zap.Error(err))
		}
	})
	dm.removeNotification(domain.NotificationProgress)

	exitCode, candidate := domain.ExitCodeKilled, ""
	if result != nil {
		exitCode, candidate = result.ExitCode, result.Destination
	}
	if runErr != nil {
		dm.logger.Error("yt-dlp did not finish", zap.Int("exit_code", exitCode), zap.Error(runErr))
	} else if !result.Succeeded() {
		dm.logger.Warn("yt-dlp exited with an error", zap.Int("exit_code", exitCode))
	}

	if err := download.MarkFinalizing(exitCode); err != nil {
		return download, err
	}

	file, err := dm.resolver.Resolve(exitCode, candidate, saveDir, req.SafeLabel())
	if err == nil && file.SizeBytes == 0 {
		dm.logger.Warn("File has zero size", zap.String("path", file.Path))
		err = fmt.Errorf("%w: %s", domain.ErrEmptyFile, file.Path)
	}
	if err != nil {
		if runErr != nil {
			err = fmt.Errorf("%w: %w", runErr, err)
		}
		dm.logger.Error("Download failed or file not found", zap.String("song", label), zap.Error(err))
		download.ProcessLog = dm.outputExcerpt()
		dm.createNotification(failedNotification(label, shareAction(dm.shareBinary, dm.sessionLogPath)))
		return dm.fail(download, err)
	}

	if err := download.MarkCompleted(file); err != nil {
		return download, err
	}
	dm.record(download, false)

	dm.logger.Info("Download complete",
		zap.String("id", download.ID),
		zap.String("file", file.Path),
		zap.Int64("size_bytes", file.SizeBytes))

	dm.createNotification(completedNotification(label, shareAction(dm.shareBinary, file.Path)))

	if dm.scanner != nil {
		if err := dm.scanner.Scan(file.Path); err != nil {
			dm.logger.Warn("Media scanner error", zap.Error(err))
		}
	}

	return download, nil
}

// fail moves the download to Failed and returns the wrapped cause
func (dm *DownloadManager) fail(download *domain.Download, cause error) (*domain.Download, error) {
	if err := download.MarkFailed(cause); err != nil {
		return download, errors.Join(cause, err)
	}
	dm.record(download, false)
	return download, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, cause)
}

// outputExcerpt logs and returns the tail of the raw downloader output
func (dm *DownloadManager) outputExcerpt() string {
	if dm.config.OutputLogPath == "" || dm.config.FailureExcerptLen <= 0 {
		return ""
	}
	tail, err := logger.TailFile(dm.config.OutputLogPath, dm.config.FailureExcerptLen)
	if err != nil {
		dm.logger.Warn("Error reading yt-dlp output file", zap.Error(err))
		return ""
	}
	tail = strings.TrimSpace(tail)
	dm.logger.Info("yt-dlp output excerpt", zap.String("excerpt", tail))
	return tail
}

// record saves the download to history; history errors never fail a download
func (dm *DownloadManager) record(download *domain.Download, create bool) {
	if dm.repo == nil {
		return
	}
	var err error
	if create {
		err = dm.repo.Create(download)
	} else {
		err = dm.repo.Update(download)
	}
	if err != nil {
		dm.logger.Warn("Failed to record download history",
			zap.String("id", download.ID),
			zap.Error(err))
	}
}

func (dm *DownloadManager) createNotification(n domain.Notification) {
	if err := dm.sink.Create(n); err != nil {
		dm.logger.Warn("Failed to create notification", zap.Int("id", n.ID), zap.Error(err))
	}
}

func (dm *DownloadManager) removeNotification(id int) {
	if err := dm.sink.Remove(id); err != nil {
		dm.logger.Debug("Failed to remove notification", zap.Int("id", id), zap.Error(err))
	}
}
