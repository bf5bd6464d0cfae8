package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/shazam-dl-go/internal/domain"
)

// Listener polls the device notification list for recognized songs and
// prompts the user to download each new one
type Listener struct {
	source   domain.DetectionSource
	sink     domain.NotificationSink
	config   *domain.DetectionConfig
	action   ActionBuilder
	store    *SessionStore
	logger   *zap.Logger
	mu       sync.RWMutex
	running  bool
	stopChan chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewListener creates a new listener
func NewListener(
	source domain.DetectionSource,
	sink domain.NotificationSink,
	config *domain.DetectionConfig,
	action ActionBuilder,
	logger *zap.Logger,
) *Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener{
		source: source,
		sink:   sink,
		config: config,
		action: action,
		store:  NewSessionStore(),
		logger: logger,
	}
}

// Start begins a new session: the dedup store is cleared, the startup
// notification is posted and polling runs in the background
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return fmt.Errorf("listener already running")
	}
	l.running = true
	l.stopChan = make(chan struct{})
	l.done = make(chan struct{})
	l.mu.Unlock()

	l.store.Reset()

	if err := l.sink.Create(startupNotification()); err != nil {
		l.logger.Warn("Failed to create startup notification", zap.Error(err))
	}

	l.logger.Info("Listening for Shazam song detection",
		zap.String("package", l.config.PackageName),
		zap.Duration("poll_interval", l.config.PollInterval))

	l.wg.Add(1)
	go l.run(ctx)

	return nil
}

// Stop stops polling and waits for the loop to exit
func (l *Listener) Stop() error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return fmt.Errorf("listener not running")
	}
	l.running = false
	l.mu.Unlock()

	close(l.stopChan)
	l.wg.Wait()

	l.logger.Info("Listener stopped", zap.Int("songs_detected", l.store.Len()))
	return nil
}

// IsRunning returns whether the listener is running
func (l *Listener) IsRunning() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.running
}

// Done is closed when the poll loop exits, either after Stop, on context
// cancellation, or because the notification tool is missing
func (l *Listener) Done() <-chan struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.done
}

// Store returns the session's dedup store
func (l *Listener) Store() *SessionStore {
	return l.store
}

func (l *Listener) run(ctx context.Context) {
	defer l.wg.Done()
	defer close(l.done)

	for {
		delay := l.config.PollInterval
		if _, err := l.Poll(ctx); err != nil {
			if errors.Is(err, domain.ErrToolMissing) {
				l.logger.Error("Cannot proceed without Termux API, install it with: pkg install termux-api", zap.Error(err))
				return
			}
			l.logger.Error("Failed to poll notifications", zap.Error(err))
			delay = l.config.ErrorBackoff
		}

		select {
		case <-ctx.Done():
			return
		case <-l.stopChan:
			return
		case <-time.After(delay):
		}
	}
}

// Poll reads the notification list once and prompts for every song not
// seen before in this session. It returns the number of new songs.
func (l *Listener) Poll(ctx context.Context) (int, error) {
	notifications, err := l.source.Active(ctx)
	if err != nil {
		return 0, err
	}

	detected := 0
	for _, n := range notifications {
		detection, ok := domain.DetectionFromNotification(n, l.config.PackageName)
		if !ok {
			continue
		}

		label := detection.Label()
		if !l.store.Add(label) {
			continue
		}
		detected++

		l.logger.Info("Detected song", zap.String("song", label))

		// Previous session notifications are cleared before prompting
		for _, id := range []int{domain.NotificationStartup, domain.NotificationProgress, domain.NotificationResult} {
			if err := l.sink.Remove(id); err != nil {
				l.logger.Debug("Failed to remove notification", zap.Int("id", id), zap.Error(err))
			}
		}

		if err := l.sink.Create(detectedNotification(label, l.action(label))); err != nil {
			l.logger.Error("Failed to create detection notification",
				zap.String("song", label),
				zap.Error(err))
		}
	}

	return detected, nil
}
