package interfaces

import (
	"context"

	"github.com/wedevbytes/nyaya/internal/models"
)

// VectorIndex owns one persisted embedding collection per legal domain.
//
// A domain's collection is either fully absent or fully built: Build writes
// into a staging directory and swaps it into place only on success, so
// readers never observe a partially written index.
type VectorIndex interface {
	// Build embeds every chunk and replaces the domain's persisted
	// collection with the result. Full rebuild, not incremental upsert.
	// Long running; callers must not block request handling on it.
	Build(ctx context.Context, domain string, chunks []models.Chunk) error

	// Exists reports whether a persisted collection exists for the domain.
	Exists(domain string) bool

	// Query embeds text and returns the k nearest chunks ordered by
	// descending similarity. Returns ErrIndexNotFound if Exists(domain)
	// is false. Fewer than k results are returned when the collection is
	// smaller than k.
	Query(ctx context.Context, domain, text string, k int) ([]models.ScoredChunk, error)
}
