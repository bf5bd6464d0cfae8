package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/yourusername/shazam-dl-go/internal/domain"
	"github.com/yourusername/shazam-dl-go/internal/infrastructure"
)

const progressBarCells = 20

// ActionBuilder turns a song label into the shell command run by the
// detection prompt's Download button
type ActionBuilder func(label string) string

// DownloadAction returns an ActionBuilder that re-invokes executable in download mode
func DownloadAction(executable string) ActionBuilder {
	return func(label string) string {
		return infrastructure.ShellEscapeCommand(executable, "--download", label)
	}
}

// shareAction builds a button action that opens path with the share tool
func shareAction(shareBinary, path string) string {
	return infrastructure.ShellEscapeCommand(shareBinary, path)
}

func startupNotification() domain.Notification {
	return domain.Notification{
		ID:      domain.NotificationStartup,
		Title:   "Shazam Downloader Started",
		Content: "Listening for Shazam detections...",
		Ongoing: true,
	}
}

func detectedNotification(label, action string) domain.Notification {
	return domain.Notification{
		ID:       domain.NotificationDetected,
		Title:    "Song Detected",
		Content:  fmt.Sprintf("'%s'?", label),
		Priority: domain.PriorityHigh,
		Buttons:  []domain.NotificationButton{{Label: "Download", Action: action}},
	}
}

func initializingNotification(label string) domain.Notification {
	return domain.Notification{
		ID:       domain.NotificationProgress,
		Title:    "INITIALIZING",
		Content:  "://>  " + label,
		Ongoing:  true,
		Priority: domain.PriorityHigh,
	}
}

// progressNotification renders percent as a 20-cell bar; the indicator
// alternates every five points
func progressNotification(percent float64) domain.Notification {
	filled := int(progressBarCells * percent / 100)
	filled = max(0, min(progressBarCells, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("·", progressBarCells-filled)

	indicator := "://>"
	if math.Mod(percent, 10) >= 5 {
		indicator = ":\\>"
	}

	return domain.Notification{
		ID:       domain.NotificationProgress,
		Title:    fmt.Sprintf("DOWNLOADING %.1f%%", percent),
		Content:  fmt.Sprintf("%s [%s]", indicator, bar),
		Ongoing:  true,
		Priority: domain.PriorityHigh,
	}
}

func toolMissingNotification() domain.Notification {
	return domain.Notification{
		ID:       domain.NotificationResult,
		Title:    "Download Error",
		Content:  "yt-dlp not installed or not working. Run 'pip install -U yt-dlp' first.",
		Priority: domain.PriorityHigh,
	}
}

func completedNotification(label, openAction string) domain.Notification {
	return domain.Notification{
		ID:       domain.NotificationResult,
		Title:    "Download Complete ✓",
		Content:  fmt.Sprintf("'%s' saved to Music folder", label),
		Priority: domain.PriorityHigh,
		Buttons:  []domain.NotificationButton{{Label: "Open", Action: openAction}},
	}
}

func failedNotification(label, logAction string) domain.Notification {
	return domain.Notification{
		ID:       domain.NotificationResult,
		Title:    "Download Failed",
		Content:  fmt.Sprintf("Could not download '%s'. Check logs.", label),
		Priority: domain.PriorityHigh,
		Buttons:  []domain.NotificationButton{{Label: "View Log", Action: logAction}},
	}
}
