package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// AudioExtension is the extension every finished download is normalized to
const AudioExtension = ".mp3"

// ResolvedFile is the file produced by a download, confirmed on disk
type ResolvedFile struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Extension string `json:"extension"`
}

// HasAudioExtension reports whether path ends in .mp3, ignoring case
func HasAudioExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), AudioExtension)
}

// WithAudioExtension replaces the extension of path with .mp3
func WithAudioExtension(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + AudioExtension
}

// ProgressState is the last progress value delivered to the notification bridge
type ProgressState struct {
	PercentComplete float64
	LastUpdate      time.Time
}

// ProgressFunc receives throttled progress updates, in percent
type ProgressFunc func(percent float64)
