package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
	"github.com/wedevbytes/nyaya/internal/services/flow"
)

// ChatHandler drives the conversation flow over plain JSON for web
// clients without websocket support.
type ChatHandler struct {
	engine *flow.Engine
	logger arbor.ILogger
}

func NewChatHandler(engine *flow.Engine) *ChatHandler {
	return &ChatHandler{
		engine: engine,
		logger: common.GetLogger(),
	}
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string         `json:"session_id"`
	Reply     string         `json:"reply"`
	Stage     models.Stage   `json:"stage"`
	Answer    *models.Answer `json:"answer,omitempty"`
	Done      bool           `json:"done"`
}

// ChatHandler handles one conversation turn.
// POST /chat
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// No session yet: open one and return the welcome menu.
	if req.SessionID == "" {
		session, step := h.engine.Begin(r.Context(), common.NewSessionID(), models.ChannelWeb)
		WriteJSON(w, http.StatusOK, chatResponse{
			SessionID: session.ID,
			Reply:     step.Prompt,
			Stage:     session.Stage,
		})
		return
	}

	session, err := h.engine.Resume(r.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, interfaces.ErrSessionNotFound) {
			WriteError(w, http.StatusNotFound, "session not found or expired; start a new one")
			return
		}
		h.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("Session lookup failed")
		WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	step := h.engine.Handle(r.Context(), session, req.Message)
	WriteJSON(w, http.StatusOK, chatResponse{
		SessionID: session.ID,
		Reply:     step.Prompt,
		Stage:     session.Stage,
		Answer:    step.Answer,
		Done:      step.Kind == flow.StepHangup,
	})
}
