package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
)

type APIHandler struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

func NewAPIHandler(llm interfaces.LLMService) *APIHandler {
	return &APIHandler{
		llm:    llm,
		logger: common.GetLogger(),
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler returns health check status. The deep=true query also
// probes the LLM provider.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	response := map[string]string{
		"status":   "ok",
		"provider": string(h.llm.Provider()),
	}

	if r.URL.Query().Get("deep") == "true" {
		if err := h.llm.HealthCheck(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("LLM health check failed")
			response["status"] = "degraded"
			response["llm"] = err.Error()
			WriteJSON(w, http.StatusServiceUnavailable, response)
			return
		}
		response["llm"] = "ok"
	}

	WriteJSON(w, http.StatusOK, response)
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
