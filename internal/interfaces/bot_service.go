package interfaces

import (
	"context"

	"github.com/wedevbytes/nyaya/internal/models"
)

// BotService orchestrates retrieval, prompt composition and answer
// generation for the four fixed legal-domain bots.
type BotService interface {
	// List returns all bots with their current availability. Availability
	// is recomputed from the vector index on every call.
	List(ctx context.Context) []models.BotInfo

	// Query answers a question with the named bot. Returns ErrBotNotFound
	// for unknown names, ErrDomainUnavailable when the bot's index has not
	// been built, and errors wrapping ErrGeneration on LLM failure.
	Query(ctx context.Context, botName, question string) (*models.Answer, error)

	// QueryDomain is Query keyed by domain instead of bot name, used by
	// the channel adapters where the user selects a domain by digit.
	QueryDomain(ctx context.Context, domain, question string) (*models.Answer, error)
}
