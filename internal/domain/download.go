package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DownloadStatus represents the current state of a download request
type DownloadStatus string

const (
	StatusIdle         DownloadStatus = "idle"
	StatusInitializing DownloadStatus = "initializing"
	StatusDownloading  DownloadStatus = "downloading"
	StatusFinalizing   DownloadStatus = "finalizing"
	StatusCompleted    DownloadStatus = "completed"
	StatusFailed       DownloadStatus = "failed"
)

// SearchPrefix is prepended to a song label to build the downloader query
const SearchPrefix = "ytsearch:"

// DownloadRequest is built once per detected song and never modified
type DownloadRequest struct {
	SongLabel   string
	SearchQuery string
}

// NewDownloadRequest creates a request for the given song label
func NewDownloadRequest(songLabel string) DownloadRequest {
	return DownloadRequest{
		SongLabel:   songLabel,
		SearchQuery: SearchPrefix + songLabel,
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// SafeLabel returns the label with characters that are invalid in filenames replaced by "_"
func (r DownloadRequest) SafeLabel() string {
	return SafeFilename(r.SongLabel)
}

// SafeFilename replaces characters that are not allowed in filenames with "_"
func SafeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// Download records one attempt to fetch a song, from request to terminal state
type Download struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	SongLabel    string         `json:"song_label" gorm:"not null;index"`
	SearchQuery  string         `json:"search_query" gorm:"not null"`
	Status       DownloadStatus `json:"status" gorm:"not null;index"`
	SaveDir      string         `json:"save_dir,omitempty"`
	FilePath     string         `json:"file_path,omitempty"`
	SizeBytes    int64          `json:"size_bytes"`
	ExitCode     int            `json:"exit_code"`
	ErrorMessage string         `json:"error_message,omitempty"`
	ProcessLog   string         `json:"process_log,omitempty" gorm:"type:text"` // tail of yt-dlp output on failure
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

// NewDownload creates a new download for a request, in the idle state
func NewDownload(req DownloadRequest) *Download {
	now := time.Now()
	return &Download{
		ID:          uuid.New().String(),
		SongLabel:   req.SongLabel,
		SearchQuery: req.SearchQuery,
		Status:      StatusIdle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// allowedTransitions lists the states reachable from each state.
// Failed is reachable from every non-terminal state.
var allowedTransitions = map[DownloadStatus][]DownloadStatus{
	StatusIdle:         {StatusInitializing, StatusFailed},
	StatusInitializing: {StatusDownloading, StatusFailed},
	StatusDownloading:  {StatusFinalizing, StatusFailed},
	StatusFinalizing:   {StatusCompleted, StatusFailed},
}

// CanTransition reports whether the download may move to the given status
func (d *Download) CanTransition(to DownloadStatus) bool {
	for _, s := range allowedTransitions[d.Status] {
		if s == to {
			return true
		}
	}
	return false
}

func (d *Download) transition(to DownloadStatus) error {
	if !d.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, to)
	}
	d.Status = to
	d.UpdatedAt = time.Now()
	return nil
}

// MarkInitializing moves the download out of idle once the request is confirmed
func (d *Download) MarkInitializing() error {
	return d.transition(StatusInitializing)
}

// MarkDownloading records the save directory and the start of the downloader process
func (d *Download) MarkDownloading(saveDir string) error {
	if err := d.transition(StatusDownloading); err != nil {
		return err
	}
	d.SaveDir = saveDir
	now := time.Now()
	d.StartedAt = &now
	return nil
}

// MarkFinalizing records the downloader exit code
func (d *Download) MarkFinalizing(exitCode int) error {
	if err := d.transition(StatusFinalizing); err != nil {
		return err
	}
	d.ExitCode = exitCode
	return nil
}

// MarkCompleted marks the download as completed with its resolved file
func (d *Download) MarkCompleted(file *ResolvedFile) error {
	if err := d.transition(StatusCompleted); err != nil {
		return err
	}
	d.FilePath = file.Path
	d.SizeBytes = file.SizeBytes
	now := time.Now()
	d.CompletedAt = &now
	return nil
}

// MarkFailed marks the download as failed
func (d *Download) MarkFailed(err error) error {
	if terr := d.transition(StatusFailed); terr != nil {
		return terr
	}
	if err != nil {
		d.ErrorMessage = err.Error()
	}
	now := time.Now()
	d.CompletedAt = &now
	return nil
}

// IsTerminal checks if the download is in a terminal state
func (d *Download) IsTerminal() bool {
	return d.Status == StatusCompleted || d.Status == StatusFailed
}

// ValidateStatus checks if a status string names a known state
func ValidateStatus(status DownloadStatus) bool {
	switch status {
	case StatusIdle, StatusInitializing, StatusDownloading, StatusFinalizing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
