package interfaces

import "errors"

// Sentinel errors shared across service boundaries. Handlers map these to
// HTTP status codes; everything else surfaces as a generic 500.
var (
	// ErrIndexNotFound is returned when a query targets a domain whose
	// vector index has never been built.
	ErrIndexNotFound = errors.New("vector index not found for domain")

	// ErrDomainUnavailable is the bot-manager-level equivalent of
	// ErrIndexNotFound: the bot exists but has no ingested documents.
	ErrDomainUnavailable = errors.New("bot domain is not available")

	// ErrBotNotFound is returned when a query names an unknown bot.
	ErrBotNotFound = errors.New("bot not found")

	// ErrGeneration wraps downstream LLM failures (network, timeout, quota).
	// Single attempt, no automatic retry; the caller decides retry policy.
	ErrGeneration = errors.New("answer generation failed")

	// ErrTranscription is returned after speech-to-text has exhausted its
	// retry budget.
	ErrTranscription = errors.New("transcription failed")

	// ErrSessionNotFound is returned when no session exists for a
	// conversation identifier.
	ErrSessionNotFound = errors.New("session not found")

	// ErrKeyNotFound is returned when a key does not exist in KV storage.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIngestRunning is returned when an ingestion is triggered for a
	// domain that already has a build in progress.
	ErrIngestRunning = errors.New("ingestion already running for domain")
)
