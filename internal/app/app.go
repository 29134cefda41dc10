// -----------------------------------------------------------------------
// Application wiring - construction and shutdown of all components
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/handlers"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/services/bots"
	"github.com/wedevbytes/nyaya/internal/services/flow"
	"github.com/wedevbytes/nyaya/internal/services/index"
	"github.com/wedevbytes/nyaya/internal/services/ingest"
	"github.com/wedevbytes/nyaya/internal/services/llm"
	"github.com/wedevbytes/nyaya/internal/services/pdf"
	"github.com/wedevbytes/nyaya/internal/services/speech"
	"github.com/wedevbytes/nyaya/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	ctx            context.Context
	cancelCtx      context.CancelFunc
	StorageManager interfaces.StorageManager

	// Core services
	LLMService    interfaces.LLMService
	IndexService  *index.Service
	IngestService interfaces.IngestService
	BotService    interfaces.BotService
	Transcriber   interfaces.Transcriber
	FlowEngine    *flow.Engine

	// Scheduled re-ingestion
	cron *cron.Cron

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	BotHandler      *handlers.BotHandler
	IngestHandler   *handlers.IngestHandler
	HistoryHandler  *handlers.HistoryHandler
	ChatHandler     *handlers.ChatHandler
	WSHandler       *handlers.WebSocketHandler
	IVRHandler      *handlers.IVRHandler
	WhatsAppHandler *handlers.WhatsAppHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:    cfg,
		Logger:    logger,
		ctx:       ctx,
		cancelCtx: cancel,
	}

	if err := app.initStorage(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		cancel()
		app.StorageManager.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()
	app.startSessionSweeper()

	if err := app.startScheduledIngest(); err != nil {
		cancel()
		app.StorageManager.Close()
		return nil, fmt.Errorf("failed to start scheduled ingestion: %w", err)
	}

	logger.Info().
		Str("provider", cfg.LLM.Provider).
		Str("documents_root", cfg.Documents.Root).
		Str("vectorstore_root", cfg.VectorStore.Root).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage initializes the storage layer (Badger)
func (a *App) initStorage() error {
	manager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}

	a.StorageManager = manager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes all business services in dependency order.
func (a *App) initServices() error {
	var err error

	// LLM first: the vector index embeds through it.
	a.LLMService, err = llm.NewLLMService(a.Config, a.StorageManager.KeyValueStorage(), a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM service: %w", err)
	}

	// Health check validates the API key up front. A failure is logged but
	// does not block startup; answering degrades until the key is fixed.
	healthCtx, cancel := context.WithTimeout(a.ctx, 10*time.Second)
	if err := a.LLMService.HealthCheck(healthCtx); err != nil {
		a.Logger.Warn().Err(err).Msg("LLM health check failed - answers will fail until the API key is valid")
	}
	cancel()

	a.IndexService, err = index.NewService(a.Config.VectorStore.Root, a.LLMService, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vector index: %w", err)
	}

	extractor := pdf.NewExtractor(a.Logger)
	loader := ingest.NewLoader(a.Config.Documents.Root, extractor, a.Logger)
	chunker := ingest.NewChunker(a.Config.Ingest.ChunkSize, a.Config.Ingest.ChunkOverlap)
	a.IngestService = ingest.NewService(loader, chunker, a.IndexService, a.Logger)

	a.BotService = bots.NewService(a.Config, a.IndexService, a.LLMService, a.StorageManager.QueryLogStorage(), a.Logger)

	a.Transcriber, err = speech.NewTranscriber(a.Config, a.StorageManager.KeyValueStorage(), a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize transcriber: %w", err)
	}

	botService, ok := a.BotService.(*bots.Service)
	if !ok {
		return fmt.Errorf("bot service does not support channel queries (got %T)", a.BotService)
	}
	a.FlowEngine = flow.NewEngine(botService, a.IndexService, a.StorageManager.SessionStorage(), a.Logger)

	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.LLMService)
	a.BotHandler = handlers.NewBotHandler(a.BotService)
	a.IngestHandler = handlers.NewIngestHandler(a.IngestService)
	a.HistoryHandler = handlers.NewHistoryHandler(a.StorageManager.QueryLogStorage())
	a.ChatHandler = handlers.NewChatHandler(a.FlowEngine)
	a.WSHandler = handlers.NewWebSocketHandler(a.FlowEngine)
	a.IVRHandler = handlers.NewIVRHandler(a.FlowEngine, a.Transcriber, a.Config.Channels.PublicURL)
	a.WhatsAppHandler = handlers.NewWhatsAppHandler(a.FlowEngine, a.Transcriber)
}

// startSessionSweeper evicts idle sessions on a fixed interval.
func (a *App) startSessionSweeper() {
	ttl := common.Duration(a.Config.Sessions.TTL)
	interval := common.Duration(a.Config.Sessions.SweepInterval)
	sessions := a.StorageManager.SessionStorage()

	common.SafeGoWithContext(a.ctx, a.Logger, "session-sweeper", func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-a.ctx.Done():
				return
			case <-ticker.C:
				removed, err := sessions.DeleteExpired(a.ctx, ttl)
				if err != nil {
					a.Logger.Warn().Err(err).Msg("Session sweep failed")
					continue
				}
				if removed > 0 {
					a.Logger.Debug().Int("removed", removed).Msg("Evicted idle sessions")
				}
			}
		}
	})

	a.Logger.Debug().
		Str("ttl", a.Config.Sessions.TTL).
		Str("interval", a.Config.Sessions.SweepInterval).
		Msg("Session sweeper started")
}

// startScheduledIngest schedules periodic full re-ingestion when enabled.
func (a *App) startScheduledIngest() error {
	if !a.Config.Ingest.Enabled {
		a.Logger.Debug().Msg("Scheduled re-ingestion disabled")
		return nil
	}

	a.cron = cron.New()
	_, err := a.cron.AddFunc(a.Config.Ingest.Schedule, func() {
		a.Logger.Info().Msg("Scheduled re-ingestion starting")
		if err := a.IngestService.Trigger("all"); err != nil {
			a.Logger.Warn().Err(err).Msg("Scheduled re-ingestion skipped")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid ingest schedule %q: %w", a.Config.Ingest.Schedule, err)
	}

	a.cron.Start()
	a.Logger.Info().
		Str("schedule", a.Config.Ingest.Schedule).
		Msg("Scheduled re-ingestion enabled")

	return nil
}

// Close shuts down all application components in reverse dependency order
func (a *App) Close() error {
	a.Logger.Info().Msg("Shutting down application...")

	a.cancelCtx()

	if a.cron != nil {
		cronCtx := a.cron.Stop()
		select {
		case <-cronCtx.Done():
		case <-time.After(5 * time.Second):
			a.Logger.Warn().Msg("Timed out waiting for scheduled jobs to finish")
		}
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
			return err
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
