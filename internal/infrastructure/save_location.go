package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const probeFileName = ".test_write"

// SaveDirResolver picks the first writable directory from an ordered list
type SaveDirResolver struct {
	candidates []string
	logger     *zap.Logger
	getwd      func() (string, error)
}

// NewSaveDirResolver creates a resolver over the given candidates, in preference order
func NewSaveDirResolver(candidates []string, logger *zap.Logger) *SaveDirResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveDirResolver{
		candidates: candidates,
		logger:     logger,
		getwd:      os.Getwd,
	}
}

// Resolve returns the first candidate that can be created and written to.
// When every candidate fails it falls back to the working directory.
func (r *SaveDirResolver) Resolve() string {
	for _, dir := range r.candidates {
		if dir == "" {
			continue
		}
		if err := r.probe(dir); err != nil {
			r.logger.Warn("Cannot use save folder", zap.String("dir", dir), zap.Error(err))
			continue
		}
		r.logger.Info("Using save folder", zap.String("dir", dir))
		return dir
	}

	cwd, err := r.getwd()
	if err != nil {
		r.logger.Error("All save folders failed and working directory is unknown", zap.Error(err))
		return "."
	}
	r.logger.Warn("All save folders failed, using current directory", zap.String("dir", cwd))
	return cwd
}

// probe creates dir if needed and checks write access with a throwaway file
func (r *SaveDirResolver) probe(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		r.logger.Info("Created directory", zap.String("dir", dir))
	}

	probe := filepath.Join(dir, probeFileName)
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("failed to remove probe file: %w", err)
	}
	return nil
}
