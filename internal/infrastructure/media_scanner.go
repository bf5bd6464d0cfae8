package infrastructure

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const mediaScanIntent = "android.intent.action.MEDIA_SCANNER_SCAN_FILE"

// AndroidMediaScanner asks the Android media scanner to index a new file
// so it shows up in music players. It implements domain.MediaScanner.
type AndroidMediaScanner struct {
	enabled bool
	binary  string
	runner  CommandRunner
	logger  *zap.Logger
}

// NewAndroidMediaScanner creates a media scanner using the am binary
func NewAndroidMediaScanner(enabled bool, binary string, runner CommandRunner, logger *zap.Logger) *AndroidMediaScanner {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AndroidMediaScanner{
		enabled: enabled,
		binary:  binary,
		runner:  runner,
		logger:  logger,
	}
}

// Scan broadcasts a media scan request for path
func (s *AndroidMediaScanner) Scan(path string) error {
	if !s.enabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.runner.Run(ctx, s.binary, mediaScanArgs(path)...); err != nil {
		s.logger.Warn("Media scan failed", zap.String("path", path), zap.Error(err))
		return err
	}
	s.logger.Info("Triggered media scan", zap.String("path", path))
	return nil
}

func mediaScanArgs(path string) []string {
	return []string{"broadcast", "-a", mediaScanIntent, "-d", "file://" + path}
}
