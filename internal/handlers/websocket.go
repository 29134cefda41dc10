package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/models"
	"github.com/wedevbytes/nyaya/internal/services/flow"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is handled at the middleware layer
	},
}

// WebSocketHandler runs the conversation flow over a websocket. Each
// connection gets its own session; the session ends with the connection.
type WebSocketHandler struct {
	engine *flow.Engine
	logger arbor.ILogger
}

func NewWebSocketHandler(engine *flow.Engine) *WebSocketHandler {
	return &WebSocketHandler{
		engine: engine,
		logger: common.GetLogger(),
	}
}

type wsInbound struct {
	Message string `json:"message"`
}

type wsOutbound struct {
	SessionID string         `json:"session_id"`
	Reply     string         `json:"reply"`
	Stage     models.Stage   `json:"stage"`
	Answer    *models.Answer `json:"answer,omitempty"`
	Done      bool           `json:"done"`
}

// HandleWebSocket upgrades the connection and drives the conversation.
// GET /ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	session, step := h.engine.Begin(ctx, common.NewSessionID(), models.ChannelWeb)

	h.logger.Debug().Str("session_id", session.ID).Msg("WebSocket conversation started")

	if err := conn.WriteJSON(wsOutbound{
		SessionID: session.ID,
		Reply:     step.Prompt,
		Stage:     session.Stage,
	}); err != nil {
		return
	}

	for {
		var inbound wsInbound
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Str("session_id", session.ID).Msg("WebSocket read failed")
			}
			break
		}

		step := h.engine.Handle(ctx, session, inbound.Message)
		outbound := wsOutbound{
			SessionID: session.ID,
			Reply:     step.Prompt,
			Stage:     session.Stage,
			Answer:    step.Answer,
			Done:      step.Kind == flow.StepHangup,
		}

		if err := conn.WriteJSON(outbound); err != nil {
			h.logger.Warn().Err(err).Str("session_id", session.ID).Msg("WebSocket write failed")
			break
		}

		if outbound.Done {
			break
		}
	}

	// Don't leave abandoned browser sessions for the sweeper.
	h.engine.End(ctx, session)
}
