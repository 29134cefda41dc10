// -----------------------------------------------------------------------
// Speech Transcriber - Caller audio to text via Gemini
// -----------------------------------------------------------------------

package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/httpclient"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"google.golang.org/genai"
)

const (
	transcribeAttempts = 3
	transcribeBackoff  = 1 * time.Second
	maxRecordingBytes  = 25 * 1024 * 1024
)

// Transcriber converts caller recordings to text using Gemini's audio
// understanding. Transient failures retry with a fixed backoff before
// the error surfaces as ErrTranscription.
type Transcriber struct {
	client     *genai.Client
	httpClient *http.Client
	logger     arbor.ILogger
	model      string
	timeout    time.Duration
}

// Compile-time interface assertion
var _ interfaces.Transcriber = (*Transcriber)(nil)

func NewTranscriber(config *common.Config, kvStorage interfaces.KeyValueStorage, logger arbor.ILogger) (*Transcriber, error) {
	ctx := context.Background()
	apiKey, err := common.ResolveAPIKey(ctx, kvStorage, "google_api_key", config.LLM.GoogleAPIKey)
	if err != nil {
		return nil, fmt.Errorf("Google API key is required for transcription: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	timeout := common.Duration(config.LLM.Timeout)

	// Recording downloads authenticate with Twilio credentials when
	// configured; Exotel URLs are pre-signed and ignore the auth header.
	httpClient := httpclient.NewBasicAuthHTTPClient(
		config.Channels.Twilio.AccountSID,
		config.Channels.Twilio.AuthToken,
		timeout,
	)

	return &Transcriber{
		client:     client,
		httpClient: httpClient,
		logger:     logger,
		model:      config.LLM.ChatModel,
		timeout:    timeout,
	}, nil
}

// Transcribe converts raw audio bytes to text.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio", interfaces.ErrTranscription)
	}

	prompt := transcribePrompt(language)

	var lastErr error
	for attempt := 1; attempt <= transcribeAttempts; attempt++ {
		text, err := t.transcribeOnce(ctx, audio, mimeType, prompt)
		if err == nil {
			t.logger.Debug().
				Int("attempt", attempt).
				Int("audio_bytes", len(audio)).
				Int("text_length", len(text)).
				Msg("Transcription succeeded")
			return text, nil
		}
		lastErr = err

		t.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("Transcription attempt failed")

		if attempt < transcribeAttempts {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", interfaces.ErrTranscription, ctx.Err())
			case <-time.After(transcribeBackoff):
			}
		}
	}

	return "", fmt.Errorf("%w: %v", interfaces.ErrTranscription, lastErr)
}

// TranscribeURL downloads a recording and transcribes it.
func (t *Transcriber) TranscribeURL(ctx context.Context, recordingURL, language string) (string, error) {
	audio, mimeType, err := t.download(ctx, recordingURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrTranscription, err)
	}
	return t.Transcribe(ctx, audio, mimeType, language)
}

func (t *Transcriber) transcribeOnce(ctx context.Context, audio []byte, mimeType, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				genai.NewPartFromText(prompt),
				genai.NewPartFromBytes(audio, mimeType),
			},
		},
	}

	resp, err := t.client.Models.GenerateContent(callCtx, t.model, contents, nil)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	if resp != nil && len(resp.Candidates) > 0 {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				text.WriteString(part.Text)
			}
			if text.Len() > 0 {
				break
			}
		}
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", fmt.Errorf("empty transcription result")
	}
	return result, nil
}

func (t *Transcriber) download(ctx context.Context, recordingURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordingURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid recording URL: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("recording download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("recording download returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxRecordingBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read recording body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || strings.HasPrefix(mimeType, "application/octet-stream") {
		mimeType = "audio/wav"
	}
	// Strip parameters like "; charset="
	if idx := strings.Index(mimeType, ";"); idx > 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	return audio, mimeType, nil
}

func transcribePrompt(language string) string {
	switch language {
	case "hi":
		return "Transcribe this audio recording of a caller speaking Hindi. Return only the transcribed text, nothing else."
	default:
		return "Transcribe this audio recording of a caller speaking English (possibly with an Indian accent). Return only the transcribed text, nothing else."
	}
}
