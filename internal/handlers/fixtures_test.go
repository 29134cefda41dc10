package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
	"github.com/wedevbytes/nyaya/internal/services/flow"
)

// mockBotService implements interfaces.BotService for testing
type mockBotService struct {
	listFunc        func(ctx context.Context) []models.BotInfo
	queryFunc       func(ctx context.Context, botName, question string) (*models.Answer, error)
	queryDomainFunc func(ctx context.Context, domain, question string) (*models.Answer, error)
}

func (m *mockBotService) List(ctx context.Context) []models.BotInfo {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil
}

func (m *mockBotService) Query(ctx context.Context, botName, question string) (*models.Answer, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, botName, question)
	}
	return nil, nil
}

func (m *mockBotService) QueryDomain(ctx context.Context, domain, question string) (*models.Answer, error) {
	if m.queryDomainFunc != nil {
		return m.queryDomainFunc(ctx, domain, question)
	}
	return nil, nil
}

// mockIngestService implements interfaces.IngestService for testing
type mockIngestService struct {
	triggerFunc func(domain string) error
	runningFunc func(domain string) bool
	uploadFunc  func(domain, filename string, content io.Reader) error
}

func (m *mockIngestService) Trigger(domain string) error {
	if m.triggerFunc != nil {
		return m.triggerFunc(domain)
	}
	return nil
}

func (m *mockIngestService) Running(domain string) bool {
	if m.runningFunc != nil {
		return m.runningFunc(domain)
	}
	return false
}

func (m *mockIngestService) Upload(domain, filename string, content io.Reader) error {
	if m.uploadFunc != nil {
		return m.uploadFunc(domain, filename, content)
	}
	return nil
}

// mockTranscriber implements interfaces.Transcriber for testing
type mockTranscriber struct {
	transcribeFunc    func(ctx context.Context, audio []byte, mimeType, language string) (string, error)
	transcribeURLFunc func(ctx context.Context, recordingURL, language string) (string, error)
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (string, error) {
	if m.transcribeFunc != nil {
		return m.transcribeFunc(ctx, audio, mimeType, language)
	}
	return "", nil
}

func (m *mockTranscriber) TranscribeURL(ctx context.Context, recordingURL, language string) (string, error) {
	if m.transcribeURLFunc != nil {
		return m.transcribeURLFunc(ctx, recordingURL, language)
	}
	return "", nil
}

// mockAnswerer satisfies the flow engine's bot dependency
type mockAnswerer struct {
	answerFunc func(ctx context.Context, domain, question string, channel models.Channel, sessionID string) (*models.Answer, error)
}

func (m *mockAnswerer) QueryForChannel(ctx context.Context, domain, question string, channel models.Channel, sessionID string) (*models.Answer, error) {
	if m.answerFunc != nil {
		return m.answerFunc(ctx, domain, question, channel, sessionID)
	}
	return &models.Answer{Text: "test answer"}, nil
}

// mockAvailability reports every domain as available unless told otherwise
type mockAvailability struct {
	unavailable map[string]bool
}

func (m *mockAvailability) Exists(domain string) bool {
	return !m.unavailable[domain]
}

// memorySessionStorage is an in-memory interfaces.SessionStorage
type memorySessionStorage struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newMemorySessionStorage() *memorySessionStorage {
	return &memorySessionStorage{sessions: make(map[string]models.Session)}
}

func (s *memorySessionStorage) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, interfaces.ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (s *memorySessionStorage) Put(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.UpdatedAt = time.Now()
	s.sessions[session.ID] = *session
	return nil
}

func (s *memorySessionStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memorySessionStorage) DeleteExpired(ctx context.Context, ttl time.Duration) (int, error) {
	return 0, nil
}

func (s *memorySessionStorage) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions), nil
}

// newTestEngine builds a flow engine with in-memory fakes
func newTestEngine(answerer *mockAnswerer, availability *mockAvailability) (*flow.Engine, *memorySessionStorage) {
	if answerer == nil {
		answerer = &mockAnswerer{}
	}
	if availability == nil {
		availability = &mockAvailability{}
	}
	sessions := newMemorySessionStorage()
	return flow.NewEngine(answerer, availability, sessions, common.GetLogger()), sessions
}

// mockError implements error interface for testing
type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}
