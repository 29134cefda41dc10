package interfaces

import "context"

// Transcriber converts recorded caller audio to text. Implementations
// retry transient failures internally (3 attempts, fixed 1s backoff) and
// return an error wrapping ErrTranscription once the budget is exhausted.
type Transcriber interface {
	// Transcribe converts raw audio bytes to text. mimeType identifies the
	// container (e.g. "audio/wav", "audio/mpeg"); language is the expected
	// speech language code ("en", "hi").
	Transcribe(ctx context.Context, audio []byte, mimeType, language string) (string, error)

	// TranscribeURL downloads a recording (telephony platforms hand the
	// audio over as a URL) and transcribes it.
	TranscribeURL(ctx context.Context, recordingURL, language string) (string, error)
}
