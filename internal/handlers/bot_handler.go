package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
)

// BotHandler serves the bot listing and direct query API.
type BotHandler struct {
	bots   interfaces.BotService
	logger arbor.ILogger
}

func NewBotHandler(bots interfaces.BotService) *BotHandler {
	return &BotHandler{
		bots:   bots,
		logger: common.GetLogger(),
	}
}

// ListHandler returns all bots with current availability.
// GET /bots
func (h *BotHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"bots": h.bots.List(r.Context()),
	})
}

// queryRequest accepts the documented "query" field; "question" is
// kept as an alias for chat-style clients.
type queryRequest struct {
	Query    string `json:"query"`
	Question string `json:"question"`
}

func (r queryRequest) text() string {
	if q := strings.TrimSpace(r.Query); q != "" {
		return q
	}
	return strings.TrimSpace(r.Question)
}

// QueryHandler answers a question with a named bot.
// POST /bots/{name}/query
func (h *BotHandler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	// Path: /bots/{name}/query
	path := strings.TrimPrefix(r.URL.Path, "/bots/")
	botName := strings.TrimSuffix(path, "/query")
	botName, err := unescapePathSegment(botName)
	if err != nil || botName == "" {
		WriteError(w, http.StatusBadRequest, "bot name is required")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	question := req.text()
	if question == "" {
		WriteError(w, http.StatusBadRequest, "query is required")
		return
	}

	answer, err := h.bots.Query(r.Context(), botName, question)
	if err != nil {
		h.logger.Warn().Err(err).Str("bot", botName).Msg("Bot query failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, answer)
}
