package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yourusername/shazam-dl-go/internal/domain"
)

const rawExcerptLen = 100

// TermuxNotificationSource reads the active notification list with termux-notification-list
type TermuxNotificationSource struct {
	binary string
	runner CommandRunner
}

// NewTermuxNotificationSource creates a detection source backed by the given binary
func NewTermuxNotificationSource(binary string, runner CommandRunner) *TermuxNotificationSource {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &TermuxNotificationSource{binary: binary, runner: runner}
}

// Active returns the notifications currently shown on the device
func (s *TermuxNotificationSource) Active(ctx context.Context) ([]domain.ActiveNotification, error) {
	out, err := s.runner.Run(ctx, s.binary)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	var notifications []domain.ActiveNotification
	if err := json.Unmarshal(out, &notifications); err != nil {
		return nil, fmt.Errorf("%w: %v (raw output: %q)", domain.ErrParse, err, excerpt(string(out), rawExcerptLen))
	}
	return notifications, nil
}

// excerpt returns the first maxRunes characters of s, marked with "..." when cut
func excerpt(s string, maxRunes int) string {
	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i] + "..."
		}
		count++
	}
	return s
}
