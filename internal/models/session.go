package models

import "time"

// Stage identifies where a conversation is in the channel flow.
type Stage string

const (
	StageLangSelect    Stage = "lang_select"
	StageDomainSelect  Stage = "domain_select"
	StageAwaitQuestion Stage = "await_question"
	StagePostAnswer    Stage = "post_answer"
	StageTerminated    Stage = "terminated"
)

// Channel identifies the transport a session arrived on.
type Channel string

const (
	ChannelIVR      Channel = "ivr"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelWeb      Channel = "web"
)

// Session is the per-conversation state shared by all channel adapters.
// Keyed by the transport's conversation identifier (call SID, WhatsApp
// sender, websocket connection id). Sessions are evicted after an idle TTL.
type Session struct {
	ID           string    `json:"id" badgerhold:"key"`
	Channel      Channel   `json:"channel"`
	Language     string    `json:"language"` // "en" or "hi"
	Domain       string    `json:"domain"`   // selected legal domain, empty until chosen
	Stage        Stage     `json:"stage"`
	LastQuestion string    `json:"last_question,omitempty"`
	LastAnswer   string    `json:"last_answer,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Idle reports whether the session has seen no activity for at least ttl.
func (s *Session) Idle(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.UpdatedAt) >= ttl
}
