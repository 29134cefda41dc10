package handlers

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
	"github.com/wedevbytes/nyaya/internal/services/flow"
)

// twimlResponse is the Twilio messaging reply format.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WhatsAppHandler adapts the conversation flow to the Twilio WhatsApp
// webhook. The sender's number keys the session; voice notes are
// transcribed before entering the flow.
type WhatsAppHandler struct {
	engine      *flow.Engine
	transcriber interfaces.Transcriber
	logger      arbor.ILogger
}

func NewWhatsAppHandler(engine *flow.Engine, transcriber interfaces.Transcriber) *WhatsAppHandler {
	return &WhatsAppHandler{
		engine:      engine,
		transcriber: transcriber,
		logger:      common.GetLogger(),
	}
}

// WebhookHandler processes one inbound WhatsApp message.
// POST /webhook/whatsapp
func (h *WhatsAppHandler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	from := r.FormValue("From")
	if from == "" {
		http.Error(w, "From is required", http.StatusBadRequest)
		return
	}
	sessionID := "wa:" + from

	session, err := h.engine.Resume(r.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrSessionNotFound) {
			h.logger.Error().Err(err).Str("session_id", sessionID).Msg("Session lookup failed")
		}
		// First contact (or expired session): greet with the language menu
		// regardless of what the message said.
		_, step := h.engine.Begin(r.Context(), sessionID, models.ChannelWhatsApp)
		h.writeMessage(w, step.Prompt)
		return
	}

	input, err := h.extractInput(r, session.Language)
	if err != nil {
		h.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to read voice note")
		input = ""
	}

	step := h.engine.Handle(r.Context(), session, input)
	h.writeMessage(w, step.Prompt)
}

// extractInput returns the message text, transcribing a voice note when
// no text body is present.
func (h *WhatsAppHandler) extractInput(r *http.Request, language string) (string, error) {
	if body := strings.TrimSpace(r.FormValue("Body")); body != "" {
		return body, nil
	}

	mediaURL := r.FormValue("MediaUrl0")
	mediaType := r.FormValue("MediaContentType0")
	if mediaURL != "" && strings.HasPrefix(mediaType, "audio/") {
		return h.transcriber.TranscribeURL(r.Context(), mediaURL, language)
	}

	return "", nil
}

func (h *WhatsAppHandler) writeMessage(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(twimlResponse{Message: text}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode TwiML response")
	}
}
