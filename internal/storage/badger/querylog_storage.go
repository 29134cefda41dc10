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

// QueryLogStorage implements the QueryLogStorage interface for Badger
type QueryLogStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewQueryLogStorage creates a new QueryLogStorage instance
func NewQueryLogStorage(db *BadgerDB, logger arbor.ILogger) interfaces.QueryLogStorage {
	return &QueryLogStorage{
		db:     db,
		logger: logger,
	}
}

// Append stores a query record.
func (s *QueryLogStorage) Append(ctx context.Context, record *models.QueryRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if err := s.db.Store().Insert(record.ID, record); err != nil {
		return fmt.Errorf("failed to append query record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *QueryLogStorage) Recent(ctx context.Context, limit int) ([]models.QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []models.QueryRecord
	err := s.db.Store().Find(&records,
		badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse().Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list query records: %w", err)
	}
	return records, nil
}
