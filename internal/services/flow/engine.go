// -----------------------------------------------------------------------
// Conversation Flow Engine - Shared state machine for all channels
// -----------------------------------------------------------------------

package flow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// StepKind tells the transport how to render a step: collect a menu
// digit, collect a free-form question, or end the conversation.
type StepKind string

const (
	StepGatherDigit    StepKind = "gather_digit"
	StepGatherQuestion StepKind = "gather_question"
	StepHangup         StepKind = "hangup"
)

// Step is the channel-neutral outcome of one conversation turn. The IVR
// handler renders it as telephony XML, the WhatsApp handler as TwiML,
// and the chat handlers as JSON.
type Step struct {
	Kind    StepKind
	Prompt  string
	Answer  *models.Answer // set when this turn produced an answer
	Invalid bool           // input was rejected and the menu replayed
}

// Answerer is the slice of the bot service the flow needs.
type Answerer interface {
	QueryForChannel(ctx context.Context, domain, question string, channel models.Channel, sessionID string) (*models.Answer, error)
}

// Availability reports whether a domain currently has a built index.
type Availability interface {
	Exists(domain string) bool
}

// Engine drives the conversation state machine shared by every channel:
// lang_select -> domain_select -> await_question -> post_answer, with
// post_answer looping back for more questions. Invalid input replays the
// current menu without advancing the stage.
type Engine struct {
	bots     Answerer
	index    Availability
	sessions interfaces.SessionStorage
	logger   arbor.ILogger
}

func NewEngine(bots Answerer, index Availability, sessions interfaces.SessionStorage, logger arbor.ILogger) *Engine {
	return &Engine{
		bots:     bots,
		index:    index,
		sessions: sessions,
		logger:   logger,
	}
}

// Begin creates a fresh session for a conversation identifier and returns
// the welcome step. An existing session under the same id is replaced;
// telephony platforms reuse call SIDs only after the prior call ended.
func (e *Engine) Begin(ctx context.Context, id string, channel models.Channel) (*models.Session, Step) {
	now := time.Now()
	session := &models.Session{
		ID:        id,
		Channel:   channel,
		Language:  "en",
		Stage:     models.StageLangSelect,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.persist(ctx, session)

	return session, Step{
		Kind:   StepGatherDigit,
		Prompt: message(session.Language, msgWelcome),
	}
}

// Resume loads the session for a conversation identifier.
func (e *Engine) Resume(ctx context.Context, id string) (*models.Session, error) {
	return e.sessions.Get(ctx, id)
}

// Handle advances the conversation with the user's input and persists the
// resulting session state.
func (e *Engine) Handle(ctx context.Context, session *models.Session, input string) Step {
	input = strings.TrimSpace(input)

	var step Step
	if command, ok := e.handleCommand(session, input); ok {
		step = command
	} else {
		step = e.dispatch(ctx, session, input)
	}

	if session.Stage == models.StageTerminated {
		if err := e.sessions.Delete(ctx, session.ID); err != nil {
			e.logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to delete terminated session")
		}
	} else {
		e.persist(ctx, session)
	}

	return step
}

// handleCommand intercepts the text commands supported on typed channels:
// "exit" ends the conversation, "menu" returns to domain selection, "help"
// explains the flow. Voice calls have no typed input, so digits pass through.
func (e *Engine) handleCommand(session *models.Session, input string) (Step, bool) {
	if session.Channel == models.ChannelIVR {
		return Step{}, false
	}

	switch strings.ToLower(input) {
	case "exit":
		session.Stage = models.StageTerminated
		return Step{
			Kind:   StepHangup,
			Prompt: message(session.Language, msgGoodbye),
		}, true
	case "menu":
		// Before language selection the domain menu makes no sense yet.
		if session.Stage == models.StageLangSelect {
			return Step{}, false
		}
		session.Domain = ""
		session.Stage = models.StageDomainSelect
		return Step{
			Kind:   StepGatherDigit,
			Prompt: message(session.Language, msgDomainMenu),
		}, true
	case "help":
		return Step{
			Kind:   e.stageStepKind(session.Stage),
			Prompt: message(session.Language, msgHelp),
		}, true
	}

	return Step{}, false
}

// stageStepKind returns the input kind the current stage is waiting for.
func (e *Engine) stageStepKind(stage models.Stage) StepKind {
	if stage == models.StageAwaitQuestion {
		return StepGatherQuestion
	}
	return StepGatherDigit
}

func (e *Engine) dispatch(ctx context.Context, session *models.Session, input string) Step {
	var step Step
	switch session.Stage {
	case models.StageLangSelect:
		step = e.handleLangSelect(session, input)
	case models.StageDomainSelect:
		step = e.handleDomainSelect(session, input)
	case models.StageAwaitQuestion:
		step = e.handleQuestion(ctx, session, input)
	case models.StagePostAnswer:
		step = e.handlePostAnswer(session, input)
	default:
		step = Step{Kind: StepHangup, Prompt: message(session.Language, msgGoodbye)}
	}

	return step
}

func (e *Engine) handleLangSelect(session *models.Session, input string) Step {
	switch input {
	case "1":
		session.Language = "en"
	case "2":
		session.Language = "hi"
	default:
		return Step{
			Kind:    StepGatherDigit,
			Prompt:  message(session.Language, msgInvalidInput) + " " + message(session.Language, msgWelcome),
			Invalid: true,
		}
	}

	session.Stage = models.StageDomainSelect
	return Step{
		Kind:   StepGatherDigit,
		Prompt: message(session.Language, msgDomainMenu),
	}
}

func (e *Engine) handleDomainSelect(session *models.Session, input string) Step {
	domain, ok := domainForDigit(input)
	if !ok {
		return Step{
			Kind:    StepGatherDigit,
			Prompt:  message(session.Language, msgInvalidInput) + " " + message(session.Language, msgDomainMenu),
			Invalid: true,
		}
	}

	if !e.index.Exists(domain) {
		return Step{
			Kind:    StepGatherDigit,
			Prompt:  message(session.Language, msgUnavailable) + " " + message(session.Language, msgDomainMenu),
			Invalid: true,
		}
	}

	session.Domain = domain
	session.Stage = models.StageAwaitQuestion
	return Step{
		Kind:   StepGatherQuestion,
		Prompt: message(session.Language, msgAskQuestion),
	}
}

func (e *Engine) handleQuestion(ctx context.Context, session *models.Session, question string) Step {
	if question == "" {
		return Step{
			Kind:    StepGatherQuestion,
			Prompt:  message(session.Language, msgInvalidInput) + " " + message(session.Language, msgAskQuestion),
			Invalid: true,
		}
	}

	answer, err := e.bots.QueryForChannel(ctx, session.Domain, question, session.Channel, session.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrDomainUnavailable) {
			session.Domain = ""
			session.Stage = models.StageDomainSelect
			return Step{
				Kind:    StepGatherDigit,
				Prompt:  message(session.Language, msgUnavailable) + " " + message(session.Language, msgDomainMenu),
				Invalid: true,
			}
		}

		e.logger.Error().Err(err).
			Str("session_id", session.ID).
			Str("domain", session.Domain).
			Msg("Question answering failed")

		return Step{
			Kind:    StepGatherQuestion,
			Prompt:  message(session.Language, msgError),
			Invalid: true,
		}
	}

	session.LastQuestion = question
	session.LastAnswer = answer.Text
	session.Stage = models.StagePostAnswer

	return Step{
		Kind:   StepGatherDigit,
		Prompt: answer.Text + "\n\n" + message(session.Language, msgPostAnswer),
		Answer: answer,
	}
}

func (e *Engine) handlePostAnswer(session *models.Session, input string) Step {
	switch input {
	case "1":
		session.Stage = models.StageAwaitQuestion
		return Step{
			Kind:   StepGatherQuestion,
			Prompt: message(session.Language, msgAskQuestion),
		}
	case "2":
		session.Domain = ""
		session.Stage = models.StageDomainSelect
		return Step{
			Kind:   StepGatherDigit,
			Prompt: message(session.Language, msgDomainMenu),
		}
	case "9":
		session.Stage = models.StageTerminated
		return Step{
			Kind:   StepHangup,
			Prompt: message(session.Language, msgGoodbye),
		}
	default:
		return Step{
			Kind:    StepGatherDigit,
			Prompt:  message(session.Language, msgInvalidInput) + " " + message(session.Language, msgPostAnswer),
			Invalid: true,
		}
	}
}

// End tears down a session early, for channels where the conversation
// dies with the connection.
func (e *Engine) End(ctx context.Context, session *models.Session) {
	session.Stage = models.StageTerminated
	if err := e.sessions.Delete(ctx, session.ID); err != nil {
		e.logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to delete session")
	}
}

func (e *Engine) persist(ctx context.Context, session *models.Session) {
	if err := e.sessions.Put(ctx, session); err != nil {
		e.logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to persist session")
	}
}

// domainForDigit maps a menu digit to its domain key.
func domainForDigit(input string) (string, bool) {
	switch input {
	case "1":
		return models.DomainIPC, true
	case "2":
		return models.DomainRTI, true
	case "3":
		return models.DomainLaborLaw, true
	case "4":
		return models.DomainConstitution, true
	default:
		return "", false
	}
}
