package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route (web chat)
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// Bots
	mux.HandleFunc("/bots", s.app.BotHandler.ListHandler)
	mux.HandleFunc("/bots/", s.handleBotRoutes) // POST /{name}/query

	// Ingestion
	mux.HandleFunc("/ingest/", s.handleIngestRoutes) // POST /{domain}, GET /{domain}/status
	mux.HandleFunc("/upload", s.app.IngestHandler.UploadHandler)

	// Chat (JSON fallback for clients without websockets)
	mux.HandleFunc("/chat", s.app.ChatHandler.ChatHandler)

	// Query history
	mux.HandleFunc("/history", s.app.HistoryHandler.RecentHandler)

	// System
	mux.HandleFunc("/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)

	// Telephony callbacks (Exotel)
	mux.HandleFunc("/ivr/welcome", s.app.IVRHandler.WelcomeHandler)
	mux.HandleFunc("/ivr/input", s.app.IVRHandler.InputHandler)
	mux.HandleFunc("/ivr/question", s.app.IVRHandler.QuestionHandler)

	// Messaging webhook (Twilio WhatsApp)
	mux.HandleFunc("/webhook/whatsapp", s.app.WhatsAppHandler.WebhookHandler)

	// 404 handler for everything unmatched
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleBotRoutes routes /bots/{name}/query requests
func (s *Server) handleBotRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/query") {
		s.app.BotHandler.QueryHandler(w, r)
		return
	}
	http.Error(w, "Not found", http.StatusNotFound)
}

// handleIngestRoutes routes /ingest/{domain} and /ingest/{domain}/status
func (s *Server) handleIngestRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/status") {
		s.app.IngestHandler.StatusHandler(w, r)
		return
	}
	s.app.IngestHandler.TriggerHandler(w, r)
}
