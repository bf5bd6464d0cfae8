package domain

import "context"

// ExitCodeKilled is reported when the downloader was terminated by the monitor
// (timeout, stall or cancellation). yt-dlp never exits with a negative code.
const ExitCodeKilled = -1

// MonitorResult is what the process monitor observed for one run
type MonitorResult struct {
	ExitCode    int
	Destination string // last candidate path announced by the downloader, may be empty
	Lines       int
}

// Succeeded reports whether the downloader exited cleanly
func (r *MonitorResult) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}

// ProcessMonitor runs the downloader for a query and reports what it saw
type ProcessMonitor interface {
	Run(ctx context.Context, searchQuery, outputTemplate string, onProgress ProgressFunc) (*MonitorResult, error)
	CheckInstalled(ctx context.Context) (string, error)
}

// FileResolver finds the file a finished download produced
type FileResolver interface {
	Resolve(exitCode int, candidatePath, saveFolder, safeLabel string) (*ResolvedFile, error)
}

// SaveLocationResolver picks the directory downloads are written to
type SaveLocationResolver interface {
	Resolve() string
}

// MediaScanner makes a new file visible to the device media library
type MediaScanner interface {
	Scan(path string) error
}
