// -----------------------------------------------------------------------
// Bot Service - Retrieval-augmented answering for the legal domain bots
// -----------------------------------------------------------------------

package bots

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// Service answers questions by retrieving the top chunks from a bot's
// vector index, composing them into the bot's prompt, and generating a
// completion. Every answered question is appended to the query log.
type Service struct {
	index    interfaces.VectorIndex
	llm      interfaces.LLMService
	queryLog interfaces.QueryLogStorage
	logger   arbor.ILogger
	topK     int
	timeout  time.Duration
}

// Compile-time interface assertion
var _ interfaces.BotService = (*Service)(nil)

func NewService(config *common.Config, index interfaces.VectorIndex, llm interfaces.LLMService, queryLog interfaces.QueryLogStorage, logger arbor.ILogger) *Service {
	return &Service{
		index:    index,
		llm:      llm,
		queryLog: queryLog,
		logger:   logger,
		topK:     config.Retrieval.TopK,
		timeout:  common.Duration(config.Retrieval.QueryTimeout),
	}
}

// List returns all bots with availability recomputed from the vector
// index, so a finished ingestion shows up without a restart.
func (s *Service) List(ctx context.Context) []models.BotInfo {
	infos := make([]models.BotInfo, 0, len(Bots))
	for _, bot := range Bots {
		infos = append(infos, models.BotInfo{
			Name:        bot.Name,
			Description: bot.Description,
			Available:   s.index.Exists(bot.Domain),
		})
	}
	return infos
}

// Query answers a question with the named bot.
func (s *Service) Query(ctx context.Context, botName, question string) (*models.Answer, error) {
	bot, ok := BotByName(botName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrBotNotFound, botName)
	}
	return s.answer(ctx, bot, question, "", "")
}

// QueryDomain answers a question for a domain key. Channel adapters use
// this form and pass channel/session info for the audit trail.
func (s *Service) QueryDomain(ctx context.Context, domain, question string) (*models.Answer, error) {
	bot, ok := BotByDomain(domain)
	if !ok {
		return nil, fmt.Errorf("%w: unknown domain %s", interfaces.ErrBotNotFound, domain)
	}
	return s.answer(ctx, bot, question, "", "")
}

// QueryForChannel is QueryDomain with audit attribution for a channel
// session.
func (s *Service) QueryForChannel(ctx context.Context, domain, question string, channel models.Channel, sessionID string) (*models.Answer, error) {
	bot, ok := BotByDomain(domain)
	if !ok {
		return nil, fmt.Errorf("%w: unknown domain %s", interfaces.ErrBotNotFound, domain)
	}
	return s.answer(ctx, bot, question, channel, sessionID)
}

func (s *Service) answer(ctx context.Context, bot models.Bot, question string, channel models.Channel, sessionID string) (*models.Answer, error) {
	if !s.index.Exists(bot.Domain) {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrDomainUnavailable, bot.Domain)
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	chunks, err := s.index.Query(queryCtx, bot.Domain, question, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed for %s: %w", bot.Name, err)
	}

	prompt := ComposePrompt(bot.PromptTemplate, question, chunks)
	text, err := s.llm.Chat(queryCtx, []interfaces.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	answer := &models.Answer{
		Text:    text,
		Sources: DedupeSources(chunks),
	}

	s.logger.Info().
		Str("bot", bot.Name).
		Str("domain", bot.Domain).
		Int("chunks", len(chunks)).
		Int("sources", len(answer.Sources)).
		Str("duration", time.Since(start).Round(time.Millisecond).String()).
		Msg("Answered question")

	s.record(bot.Domain, question, answer, channel, sessionID, time.Since(start))

	return answer, nil
}

// record appends the audit record. Failures are logged, never surfaced;
// the caller already has their answer.
func (s *Service) record(domain, question string, answer *models.Answer, channel models.Channel, sessionID string, took time.Duration) {
	if s.queryLog == nil {
		return
	}
	if channel == "" {
		channel = models.ChannelWeb
	}

	rec := &models.QueryRecord{
		ID:         common.NewRecordID(),
		Channel:    channel,
		SessionID:  sessionID,
		Domain:     domain,
		Question:   question,
		Answer:     answer.Text,
		Sources:    answer.Sources,
		DurationMs: took.Milliseconds(),
		CreatedAt:  time.Now(),
	}

	if err := s.queryLog.Append(context.Background(), rec); err != nil {
		s.logger.Warn().Err(err).Str("domain", domain).Msg("Failed to append query record")
	}
}
