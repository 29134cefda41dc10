package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// SessionStorage implements the SessionStorage interface for Badger
type SessionStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSessionStorage creates a new SessionStorage instance
func NewSessionStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SessionStorage {
	return &SessionStorage{
		db:     db,
		logger: logger,
	}
}

// Get returns the session for id, or ErrSessionNotFound.
func (s *SessionStorage) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.db.Store().Get(id, &session)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Put inserts or replaces a session, stamping UpdatedAt.
func (s *SessionStorage) Put(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	if err := s.db.Store().Upsert(session.ID, session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStorage) Delete(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.Session{})
	if err == badgerhold.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions idle longer than ttl and returns the
// number removed.
func (s *SessionStorage) DeleteExpired(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)

	var expired []models.Session
	err := s.db.Store().Find(&expired, badgerhold.Where("UpdatedAt").Lt(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to find expired sessions: %w", err)
	}

	removed := 0
	for _, session := range expired {
		if err := s.db.Store().Delete(session.ID, &models.Session{}); err != nil {
			s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to delete expired session")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("Evicted idle sessions")
	}

	return removed, nil
}

// Count returns the number of stored sessions.
func (s *SessionStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Session{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(count), nil
}
