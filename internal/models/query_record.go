package models

import "time"

// QueryRecord is the audit trail entry written for every answered question.
type QueryRecord struct {
	ID         string      `json:"id" badgerhold:"key"`
	Channel    Channel     `json:"channel"`
	SessionID  string      `json:"session_id,omitempty"`
	Domain     string      `json:"domain"`
	Question   string      `json:"question"`
	Answer     string      `json:"answer"`
	Sources    []SourceRef `json:"sources,omitempty"`
	DurationMs int64       `json:"duration_ms"`
	CreatedAt  time.Time   `json:"created_at"`
}
