package infrastructure

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/yourusername/shazam-dl-go/internal/domain"
	"go.uber.org/zap"
)

const (
	notificationTimeout = 10 * time.Second
	maxButtons          = 3
)

// NotificationService posts notifications through a platform tool.
// It implements domain.NotificationSink.
type NotificationService struct {
	config *domain.NotificationConfig
	runner CommandRunner
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, runner CommandRunner, logger *zap.Logger) *NotificationService {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Create posts a new notification
func (n *NotificationService) Create(notif domain.Notification) error {
	return n.send(notif)
}

// Update replaces the notification with the same ID
func (n *NotificationService) Update(notif domain.Notification) error {
	return n.send(notif)
}

// Remove dismisses the notification with the given ID
func (n *NotificationService) Remove(id int) error {
	if !n.config.Enabled || n.config.Method != "termux" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	if _, err := n.runner.Run(ctx, n.config.RemoveBinary, strconv.Itoa(id)); err != nil {
		n.logger.Warn("Failed to remove notification", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (n *NotificationService) send(notif domain.Notification) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.Int("id", notif.ID),
			zap.String("title", notif.Title))
		return nil
	}

	var name string
	var args []string
	switch n.config.Method {
	case "termux":
		name, args = n.config.Binary, termuxArgs(notif)
	case "notify-send":
		name, args = "notify-send", []string{notif.Title, notif.Content}
	case "osascript":
		script := fmt.Sprintf(`display notification %q with title %q`, notif.Content, notif.Title)
		name, args = "osascript", []string{"-e", script}
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	if _, err := n.runner.Run(ctx, name, args...); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Int("id", notif.ID),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent",
		zap.Int("id", notif.ID),
		zap.String("title", notif.Title),
		zap.String("content", notif.Content))
	return nil
}

// termuxArgs builds the termux-notification argument list
func termuxArgs(notif domain.Notification) []string {
	args := []string{
		"--id", strconv.Itoa(notif.ID),
		"--title", notif.Title,
		"--content", notif.Content,
	}
	if notif.Ongoing {
		args = append(args, "--ongoing")
	}
	if notif.Priority != "" {
		args = append(args, "--priority", notif.Priority)
	}
	for i, b := range notif.Buttons {
		if i == maxButtons {
			break
		}
		flag := fmt.Sprintf("--button%d", i+1)
		args = append(args, flag, b.Label, flag+"-action", b.Action)
	}
	return args
}
