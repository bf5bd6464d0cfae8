package app

import (
	"context"
	"sync"

	"github.com/yourusername/shazam-dl-go/internal/domain"
)

type sinkCall struct {
	op           string // create, update, remove
	notification domain.Notification
	id           int
}

// fakeSink implements domain.NotificationSink and records every request
type fakeSink struct {
	mu    sync.Mutex
	calls []sinkCall
}

func (s *fakeSink) Create(n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sinkCall{op: "create", notification: n, id: n.ID})
	return nil
}

func (s *fakeSink) Update(n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sinkCall{op: "update", notification: n, id: n.ID})
	return nil
}

func (s *fakeSink) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sinkCall{op: "remove", id: id})
	return nil
}

func (s *fakeSink) snapshot() []sinkCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sinkCall(nil), s.calls...)
}

// created returns the notifications created with the given id
func (s *fakeSink) created(id int) []domain.Notification {
	var out []domain.Notification
	for _, c := range s.snapshot() {
		if c.op == "create" && c.id == id {
			out = append(out, c.notification)
		}
	}
	return out
}

func (s *fakeSink) removed() []int {
	var out []int
	for _, c := range s.snapshot() {
		if c.op == "remove" {
			out = append(out, c.id)
		}
	}
	return out
}

// fakeSource implements domain.DetectionSource with a scripted sequence of replies
type fakeSource struct {
	mu      sync.Mutex
	replies []sourceReply
	calls   int
}

type sourceReply struct {
	notifications []domain.ActiveNotification
	err           error
}

func (s *fakeSource) Active(context.Context) ([]domain.ActiveNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.replies) == 0 {
		return nil, nil
	}
	r := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return r.notifications, r.err
}

// fakeMonitor implements domain.ProcessMonitor
type fakeMonitor struct {
	version    string
	installErr error
	run        func(searchQuery, outputTemplate string, onProgress domain.ProgressFunc) (*domain.MonitorResult, error)
	runs       int
	query      string
	template   string
}

func (m *fakeMonitor) CheckInstalled(context.Context) (string, error) {
	return m.version, m.installErr
}

func (m *fakeMonitor) Run(_ context.Context, searchQuery, outputTemplate string, onProgress domain.ProgressFunc) (*domain.MonitorResult, error) {
	m.runs++
	m.query = searchQuery
	m.template = outputTemplate
	return m.run(searchQuery, outputTemplate, onProgress)
}

type fixedSaveDir string

func (d fixedSaveDir) Resolve() string { return string(d) }

type fakeScanner struct {
	paths []string
}

func (s *fakeScanner) Scan(path string) error {
	s.paths = append(s.paths, path)
	return nil
}

// mockRepo implements domain.DownloadRepository for testing
type mockRepo struct {
	downloads map[string]domain.Download
	creates   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{downloads: make(map[string]domain.Download)}
}

func (m *mockRepo) Create(download *domain.Download) error {
	m.creates++
	m.downloads[download.ID] = *download
	return nil
}

func (m *mockRepo) Update(download *domain.Download) error {
	m.downloads[download.ID] = *download
	return nil
}

func (m *mockRepo) FindByID(id string) (*domain.Download, error) {
	if d, ok := m.downloads[id]; ok {
		return &d, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) FindAll(domain.DownloadStatus, int) ([]*domain.Download, error) {
	return nil, nil
}

func (m *mockRepo) FindLatestByLabel(string) (*domain.Download, error) {
	return nil, nil
}

func (m *mockRepo) GetStats() (*domain.DownloadStats, error) {
	return &domain.DownloadStats{}, nil
}
