package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// maxUploadBytes bounds multipart document uploads.
const maxUploadBytes = 50 * 1024 * 1024

// IngestHandler triggers index rebuilds and accepts document uploads.
type IngestHandler struct {
	ingest interfaces.IngestService
	logger arbor.ILogger
}

func NewIngestHandler(ingest interfaces.IngestService) *IngestHandler {
	return &IngestHandler{
		ingest: ingest,
		logger: common.GetLogger(),
	}
}

// TriggerHandler starts an asynchronous ingestion.
// POST /ingest/{domain}   (domain may be "all")
func (h *IngestHandler) TriggerHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	domain := strings.TrimPrefix(r.URL.Path, "/ingest/")
	if domain == "" {
		WriteError(w, http.StatusBadRequest, "domain is required (one of ipc, rti, labor_law, constitution, all)")
		return
	}
	if domain != "all" && !models.ValidDomain(domain) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown domain: %s", domain))
		return
	}

	if err := h.ingest.Trigger(domain); err != nil {
		WriteServiceError(w, err)
		return
	}

	h.logger.Info().Str("domain", domain).Msg("Ingestion triggered via API")
	WriteProcessing(w, fmt.Sprintf("ingestion started for %s", domain))
}

// StatusHandler reports whether an ingestion is running for a domain.
// GET /ingest/{domain}/status
func (h *IngestHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/ingest/")
	domain := strings.TrimSuffix(path, "/status")
	if !models.ValidDomain(domain) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown domain: %s", domain))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"domain":  domain,
		"running": h.ingest.Running(domain),
	})
}

// UploadHandler stores a source document for later ingestion.
// POST /upload (multipart form: domain, file)
func (h *IngestHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	domain := r.FormValue("domain")
	if !models.ValidDomain(domain) {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown domain: %s", domain))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if err := h.ingest.Upload(domain, header.Filename, file); err != nil {
		h.logger.Warn().Err(err).Str("domain", domain).Str("file", header.Filename).Msg("Upload failed")
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteSuccess(w, fmt.Sprintf("stored %s for domain %s; trigger ingestion to index it", header.Filename, domain))
}
