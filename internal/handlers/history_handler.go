package handlers

import (
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
)

// HistoryHandler serves the question/answer audit trail.
type HistoryHandler struct {
	queryLog interfaces.QueryLogStorage
	logger   arbor.ILogger
}

func NewHistoryHandler(queryLog interfaces.QueryLogStorage) *HistoryHandler {
	return &HistoryHandler{
		queryLog: queryLog,
		logger:   common.GetLogger(),
	}
}

// RecentHandler returns recent query records, newest first.
// GET /history?limit=50
func (h *HistoryHandler) RecentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	records, err := h.queryLog.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read query history")
		WriteError(w, http.StatusInternalServerError, "failed to read history")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}
