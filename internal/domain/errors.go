package domain

import "errors"

var (
	// ErrToolMissing is returned when a required platform binary is not installed
	ErrToolMissing = errors.New("platform tool missing")

	// ErrProcessTimeout is returned when the downloader exceeds its wall-clock budget
	ErrProcessTimeout = errors.New("downloader timed out")

	// ErrProcessStall is returned when the downloader stops producing output
	ErrProcessStall = errors.New("downloader stalled")

	// ErrParse is returned when the detection source output cannot be decoded
	ErrParse = errors.New("malformed notification list")

	// ErrFileNotFound is returned when no output file could be located
	ErrFileNotFound = errors.New("downloaded file not found")

	// ErrEmptyFile is returned when the resolved file has zero size
	ErrEmptyFile = errors.New("downloaded file is empty")

	// ErrDownloadFailed is returned when the downloader exits with a nonzero code
	ErrDownloadFailed = errors.New("downloader failed")

	// ErrInvalidTransition is returned for a state change the download lifecycle does not allow
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound is returned by repositories when a record does not exist
	ErrNotFound = errors.New("record not found")
)
