package common

import (
	"github.com/google/uuid"
)

// NewSessionID generates a session ID for channels that don't carry their
// own conversation identifier (web chat, websocket).
func NewSessionID() string {
	return "sess_" + uuid.New().String()
}

// NewRecordID generates an ID for a query-history record.
func NewRecordID() string {
	return "qr_" + uuid.New().String()
}
