package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
	"github.com/wedevbytes/nyaya/internal/services/flow"
)

// IVR telephony XML (Exotel applet format). Element order inside
// Response follows struct field order.
type ivrResponse struct {
	XMLName   xml.Name      `xml:"Response"`
	Say       []ivrSay      `xml:"Say,omitempty"`
	GetDigits *ivrGetDigits `xml:"GetDigits,omitempty"`
	Record    *ivrRecord    `xml:"Record,omitempty"`
	Hangup    *ivrHangup    `xml:"Hangup,omitempty"`
}

type ivrSay struct {
	Language string `xml:"language,attr,omitempty"`
	Text     string `xml:",chardata"`
}

type ivrGetDigits struct {
	Timeout     string `xml:"timeout,attr"`
	NumDigits   string `xml:"numDigits,attr"`
	CallbackURL string `xml:"callbackUrl,attr"`
}

type ivrRecord struct {
	MaxLength   string `xml:"maxLength,attr"`
	PlayBeep    string `xml:"playBeep,attr"`
	CallbackURL string `xml:"callbackUrl,attr"`
}

type ivrHangup struct{}

// IVRHandler adapts the conversation flow to Exotel voice calls.
// Digits arrive on /ivr/input, recorded questions on /ivr/question.
type IVRHandler struct {
	engine      *flow.Engine
	transcriber interfaces.Transcriber
	publicURL   string
	logger      arbor.ILogger
}

func NewIVRHandler(engine *flow.Engine, transcriber interfaces.Transcriber, publicURL string) *IVRHandler {
	return &IVRHandler{
		engine:      engine,
		transcriber: transcriber,
		publicURL:   strings.TrimSuffix(publicURL, "/"),
		logger:      common.GetLogger(),
	}
}

// WelcomeHandler greets a new call and starts language selection.
// POST /ivr/welcome
func (h *IVRHandler) WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	callSid := firstFormValue(r, "CallSid", "CallSidParam")
	if callSid == "" {
		http.Error(w, "CallSid is required", http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("call_sid", callSid).
		Str("from", r.FormValue("From")).
		Msg("Incoming call")

	session, step := h.engine.Begin(r.Context(), callSid, models.ChannelIVR)
	h.writeStep(w, session, step)
}

// InputHandler processes a DTMF digit.
// POST /ivr/input
func (h *IVRHandler) InputHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	callSid := firstFormValue(r, "CallSid", "CallSidParam")
	digits := strings.Trim(r.FormValue("digits"), `"`)

	session, err := h.engine.Resume(r.Context(), callSid)
	if err != nil {
		// Call state lost (restart, expired session): start over.
		session, step := h.engine.Begin(r.Context(), callSid, models.ChannelIVR)
		h.writeStep(w, session, step)
		return
	}

	step := h.engine.Handle(r.Context(), session, digits)
	h.writeStep(w, session, step)
}

// QuestionHandler transcribes a recorded question and answers it.
// POST /ivr/question
func (h *IVRHandler) QuestionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	callSid := firstFormValue(r, "CallSid", "CallSidParam")
	recordingURL := firstFormValue(r, "RecordingUrl", "RecordingURL")

	session, err := h.engine.Resume(r.Context(), callSid)
	if err != nil {
		session, step := h.engine.Begin(r.Context(), callSid, models.ChannelIVR)
		h.writeStep(w, session, step)
		return
	}

	if recordingURL == "" {
		// No recording: reprompt via the engine's empty-input path.
		step := h.engine.Handle(r.Context(), session, "")
		h.writeStep(w, session, step)
		return
	}

	question, err := h.transcriber.TranscribeURL(r.Context(), recordingURL, session.Language)
	if err != nil {
		h.logger.Warn().Err(err).Str("call_sid", callSid).Msg("Transcription failed")
		step := h.engine.Handle(r.Context(), session, "")
		h.writeStep(w, session, step)
		return
	}

	step := h.engine.Handle(r.Context(), session, question)
	h.writeStep(w, session, step)
}

// writeStep renders a flow step as telephony XML.
func (h *IVRHandler) writeStep(w http.ResponseWriter, session *models.Session, step flow.Step) {
	response := ivrResponse{
		Say: []ivrSay{{Language: sayLanguage(session.Language), Text: step.Prompt}},
	}

	switch step.Kind {
	case flow.StepGatherDigit:
		response.GetDigits = &ivrGetDigits{
			Timeout:     "5",
			NumDigits:   "1",
			CallbackURL: h.publicURL + "/ivr/input",
		}
	case flow.StepGatherQuestion:
		response.Record = &ivrRecord{
			MaxLength:   "60",
			PlayBeep:    "true",
			CallbackURL: h.publicURL + "/ivr/question",
		}
	case flow.StepHangup:
		response.Hangup = &ivrHangup{}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode IVR response")
	}
}

func sayLanguage(language string) string {
	if language == "hi" {
		return "hi-IN"
	}
	return "en-IN"
}

// firstFormValue returns the first non-empty form value among names.
// Telephony platforms are inconsistent about parameter casing.
func firstFormValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if value := r.FormValue(name); value != "" {
			return value
		}
	}
	return ""
}
