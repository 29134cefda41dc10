package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wedevbytes/nyaya/internal/models"
)

func postChat(handler *ChatHandler, body string) (*httptest.ResponseRecorder, chatResponse) {
	req := httptest.NewRequest("POST", "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ChatHandler(rec, req)

	var response chatResponse
	json.NewDecoder(rec.Body).Decode(&response)
	return rec, response
}

func TestChatHandler_NewSession(t *testing.T) {
	engine, _ := newTestEngine(nil, nil)
	handler := NewChatHandler(engine)

	rec, response := postChat(handler, `{"message": ""}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if response.SessionID == "" {
		t.Error("New conversation should be assigned a session id")
	}
	if response.Stage != models.StageLangSelect {
		t.Errorf("Expected lang_select stage, got %s", response.Stage)
	}
	if response.Reply == "" {
		t.Error("Welcome prompt should not be empty")
	}
}

func TestChatHandler_FullConversation(t *testing.T) {
	answerer := &mockAnswerer{
		answerFunc: func(ctx context.Context, domain, question string, channel models.Channel, sessionID string) (*models.Answer, error) {
			if channel != models.ChannelWeb {
				t.Errorf("Expected web channel, got %s", channel)
			}
			return &models.Answer{
				Text:    "Article 21 guarantees the right to life.",
				Sources: []models.SourceRef{{
					Content:  "Article 21. Protection of life and personal liberty.",
					Metadata: models.SourceMetadata{Source: "constitution.pdf", Page: 9},
				}},
			}, nil
		},
	}

	engine, _ := newTestEngine(answerer, nil)
	handler := NewChatHandler(engine)

	_, opened := postChat(handler, `{}`)
	sid := opened.SessionID

	send := func(message string) chatResponse {
		_, response := postChat(handler, fmt.Sprintf(`{"session_id": %q, "message": %q}`, sid, message))
		return response
	}

	send("1") // English
	send("4") // constitution
	answered := send("What does Article 21 say?")

	if answered.Answer == nil {
		t.Fatal("Expected structured answer on the response")
	}
	if len(answered.Answer.Sources) != 1 || answered.Answer.Sources[0].Metadata.Source != "constitution.pdf" {
		t.Errorf("Sources not carried through: %+v", answered.Answer.Sources)
	}
	if answered.Stage != models.StagePostAnswer {
		t.Errorf("Expected post_answer stage, got %s", answered.Stage)
	}

	ended := send("9")
	if !ended.Done {
		t.Error("Expected Done=true after ending the conversation")
	}
}

func TestChatHandler_ExpiredSession(t *testing.T) {
	engine, _ := newTestEngine(nil, nil)
	handler := NewChatHandler(engine)

	rec, _ := postChat(handler, `{"session_id": "sess_gone", "message": "1"}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown session, got %d", rec.Code)
	}
}

func TestChatHandler_InvalidBody(t *testing.T) {
	engine, _ := newTestEngine(nil, nil)
	handler := NewChatHandler(engine)

	rec, _ := postChat(handler, `{broken`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestChatHandler_UnavailableDomain(t *testing.T) {
	availability := &mockAvailability{unavailable: map[string]bool{models.DomainLaborLaw: true}}
	engine, _ := newTestEngine(nil, availability)
	handler := NewChatHandler(engine)

	_, opened := postChat(handler, `{}`)
	sid := opened.SessionID

	postChat(handler, fmt.Sprintf(`{"session_id": %q, "message": "1"}`, sid))
	_, response := postChat(handler, fmt.Sprintf(`{"session_id": %q, "message": "3"}`, sid))

	// Stays on the domain menu.
	if response.Stage != models.StageDomainSelect {
		t.Errorf("Expected domain_select stage, got %s", response.Stage)
	}
}
