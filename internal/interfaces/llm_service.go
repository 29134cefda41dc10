package interfaces

import "context"

// LLMProvider identifies the hosted model family backing the service.
type LLMProvider string

const (
	// LLMProviderGemini uses the Google Gemini API for both embeddings
	// and chat completions.
	LLMProviderGemini LLMProvider = "gemini"

	// LLMProviderClaude uses the Anthropic API for chat completions;
	// embeddings still come from Gemini.
	LLMProviderClaude LLMProvider = "claude"
)

// Message represents a single message in a chat conversation.
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system".
	Role string

	// Content contains the text content of the message.
	Content string
}

// LLMService defines the hosted-model operations the pipeline depends on:
// embedding generation for indexing/retrieval and chat completion for
// answer generation. Implementations are swappable (cloud providers or
// test doubles).
type LLMService interface {
	// Embed generates a fixed-dimension embedding vector for the given
	// text. Used for both chunk indexing and query embedding.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Chat generates a completion for the conversation history, which
	// should include the system prompt and the composed user message in
	// chronological order. Failures wrap ErrGeneration.
	Chat(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the provider is reachable and authenticated.
	HealthCheck(ctx context.Context) error

	// Provider returns which model family backs this service.
	Provider() LLMProvider

	// Close releases client resources.
	Close() error
}
