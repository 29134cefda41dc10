package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wedevbytes/nyaya/internal/interfaces"
)

func TestIngestTriggerHandler(t *testing.T) {
	var triggered string
	mockService := &mockIngestService{
		triggerFunc: func(domain string) error {
			triggered = domain
			return nil
		},
	}

	handler := NewIngestHandler(mockService)
	req := httptest.NewRequest("POST", "/ingest/ipc", nil)
	rec := httptest.NewRecorder()

	handler.TriggerHandler(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d", rec.Code)
	}
	if triggered != "ipc" {
		t.Errorf("Expected trigger for 'ipc', got %q", triggered)
	}

	var response map[string]string
	json.NewDecoder(rec.Body).Decode(&response)
	if response["status"] != "processing" {
		t.Errorf("Expected status 'processing', got %v", response["status"])
	}
}

func TestIngestTriggerHandler_All(t *testing.T) {
	var triggered string
	mockService := &mockIngestService{
		triggerFunc: func(domain string) error {
			triggered = domain
			return nil
		},
	}

	handler := NewIngestHandler(mockService)
	req := httptest.NewRequest("POST", "/ingest/all", nil)
	rec := httptest.NewRecorder()

	handler.TriggerHandler(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d", rec.Code)
	}
	if triggered != "all" {
		t.Errorf("Expected trigger for 'all', got %q", triggered)
	}
}

func TestIngestTriggerHandler_UnknownDomain(t *testing.T) {
	handler := NewIngestHandler(&mockIngestService{})
	req := httptest.NewRequest("POST", "/ingest/maritime_law", nil)
	rec := httptest.NewRecorder()

	handler.TriggerHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestIngestTriggerHandler_AlreadyRunning(t *testing.T) {
	mockService := &mockIngestService{
		triggerFunc: func(domain string) error {
			return fmt.Errorf("%w: %s", interfaces.ErrIngestRunning, domain)
		},
	}

	handler := NewIngestHandler(mockService)
	req := httptest.NewRequest("POST", "/ingest/rti", nil)
	rec := httptest.NewRecorder()

	handler.TriggerHandler(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestIngestStatusHandler(t *testing.T) {
	mockService := &mockIngestService{
		runningFunc: func(domain string) bool {
			return domain == "labor_law"
		},
	}

	handler := NewIngestHandler(mockService)
	req := httptest.NewRequest("GET", "/ingest/labor_law/status", nil)
	rec := httptest.NewRecorder()

	handler.StatusHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response map[string]interface{}
	json.NewDecoder(rec.Body).Decode(&response)
	if response["domain"] != "labor_law" {
		t.Errorf("Expected domain 'labor_law', got %v", response["domain"])
	}
	if response["running"] != true {
		t.Errorf("Expected running=true, got %v", response["running"])
	}
}

func buildUploadRequest(t *testing.T, domain, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if domain != "" {
		writer.WriteField("domain", domain)
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		part.Write([]byte(content))
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler_Success(t *testing.T) {
	var gotDomain, gotFilename, gotContent string
	mockService := &mockIngestService{
		uploadFunc: func(domain, filename string, content io.Reader) error {
			gotDomain = domain
			gotFilename = filename
			data, _ := io.ReadAll(content)
			gotContent = string(data)
			return nil
		},
	}

	handler := NewIngestHandler(mockService)
	req := buildUploadRequest(t, "constitution", "articles.txt", "Article 21: protection of life")
	rec := httptest.NewRecorder()

	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	if gotDomain != "constitution" || gotFilename != "articles.txt" {
		t.Errorf("Upload routed wrong: domain=%q file=%q", gotDomain, gotFilename)
	}
	if gotContent != "Article 21: protection of life" {
		t.Errorf("File content not passed through, got %q", gotContent)
	}
}

func TestUploadHandler_UnknownDomain(t *testing.T) {
	handler := NewIngestHandler(&mockIngestService{})
	req := buildUploadRequest(t, "tax", "doc.txt", "content")
	rec := httptest.NewRecorder()

	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUploadHandler_MissingFile(t *testing.T) {
	handler := NewIngestHandler(&mockIngestService{})
	req := buildUploadRequest(t, "ipc", "", "")
	rec := httptest.NewRecorder()

	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUploadHandler_RejectedExtension(t *testing.T) {
	mockService := &mockIngestService{
		uploadFunc: func(domain, filename string, content io.Reader) error {
			return &mockError{msg: "unsupported file type: .docx"}
		},
	}

	handler := NewIngestHandler(mockService)
	req := buildUploadRequest(t, "ipc", "notes.docx", "binary")
	rec := httptest.NewRecorder()

	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
