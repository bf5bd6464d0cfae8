package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/shazam-dl-go/internal/domain"
	"go.uber.org/zap"
)

// OutputFileResolver locates the file a finished yt-dlp run produced.
// It implements domain.FileResolver.
type OutputFileResolver struct {
	recentWindow time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewOutputFileResolver creates a resolver; files modified within
// recentWindow are considered when nothing better matches
func NewOutputFileResolver(recentWindow time.Duration, logger *zap.Logger) *OutputFileResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutputFileResolver{
		recentWindow: recentWindow,
		now:          time.Now,
		logger:       logger,
	}
}

// Resolve finds the downloaded file, renames it to .mp3 if needed and
// returns it with its size. Only clean exits are resolved.
func (r *OutputFileResolver) Resolve(exitCode int, candidatePath, saveFolder, safeLabel string) (*domain.ResolvedFile, error) {
	if exitCode != 0 {
		return nil, fmt.Errorf("%w: downloader exited with code %d", domain.ErrFileNotFound, exitCode)
	}

	path, ok := r.locate(candidatePath, saveFolder, safeLabel)
	if !ok {
		return nil, fmt.Errorf("%w: in %s", domain.ErrFileNotFound, saveFolder)
	}

	path = r.normalize(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileNotFound, err)
	}

	return &domain.ResolvedFile{
		Path:      path,
		SizeBytes: info.Size(),
		Extension: filepath.Ext(path),
	}, nil
}

// locate runs the lookup cascade: the announced path, the announced path
// with an .mp3 extension, a label match in the save folder, then the most
// recently modified .mp3 in the save folder
func (r *OutputFileResolver) locate(candidatePath, saveFolder, safeLabel string) (string, bool) {
	if candidatePath != "" {
		if fileExists(candidatePath) {
			return candidatePath, true
		}
		if mp3 := domain.WithAudioExtension(candidatePath); fileExists(mp3) {
			r.logger.Info("Found MP3 version of announced file", zap.String("path", mp3))
			return mp3, true
		}
	}

	entries, err := os.ReadDir(saveFolder)
	if err != nil {
		r.logger.Warn("Failed to scan save folder", zap.String("dir", saveFolder), zap.Error(err))
		return "", false
	}

	if safeLabel != "" {
		needle := strings.ToLower(safeLabel)
		// ReadDir returns entries sorted by name
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !domain.HasAudioExtension(name) {
				continue
			}
			if strings.Contains(strings.ToLower(name), needle) {
				path := filepath.Join(saveFolder, name)
				r.logger.Info("Found matching file by name", zap.String("path", path))
				return path, true
			}
		}
	}

	cutoff := r.now().Add(-r.recentWindow)
	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !domain.HasAudioExtension(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if mod.Before(cutoff) {
			continue
		}
		if newest == "" || mod.After(newestMod) {
			newest = filepath.Join(saveFolder, e.Name())
			newestMod = mod
		}
	}
	if newest != "" {
		r.logger.Info("Found recently modified file", zap.String("path", newest))
		return newest, true
	}

	return "", false
}

// normalize renames path to .mp3; on failure the original path is kept
func (r *OutputFileResolver) normalize(path string) string {
	if domain.HasAudioExtension(path) {
		return path
	}
	target := domain.WithAudioExtension(path)
	if err := os.Rename(path, target); err != nil {
		r.logger.Warn("Failed to rename file to .mp3",
			zap.String("from", path),
			zap.String("to", target),
			zap.Error(err))
		return path
	}
	r.logger.Info("Renamed file", zap.String("from", path), zap.String("to", target))
	return target
}
