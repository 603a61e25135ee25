package processor

import (
	"context"
	"time"

	"receptionist-server/internal/observability"
	"receptionist-server/internal/telephony"
)

// NextAction tells the handler which instruction shape to render.
type NextAction int

const (
	// ActionLoop speaks the reply, then redirects back to the entry endpoint
	// so the call continues for another turn.
	ActionLoop NextAction = iota
	// ActionHangup speaks a terminal message and ends the call.
	ActionHangup
	// ActionSpeakOnly speaks without a follow-up directive, leaving call
	// teardown to the provider. Used for the apology path.
	ActionSpeakOnly
)

// TurnInput is one inbound turn callback from the telephony provider.
type TurnInput struct {
	RecordingURL string
	From         string
}

// TurnResult is the outcome of one call turn. Every turn produces exactly
// one of these; there is no error path out of the processor.
type TurnResult struct {
	Say        string
	Action     NextAction
	RedirectTo string
}

// CallTurnProcessor orchestrates one call turn: transcribe, classify, branch,
// decide the next instruction. Any failure along the way folds into the
// apology result so the caller is never left in dead air.
type CallTurnProcessor struct {
	transcriber     Transcriber
	classifier      Classifier
	dispatcher      BookingDispatcher
	entryPath       string
	externalTimeout time.Duration
	logger          *observability.Logger
}

// New creates a CallTurnProcessor. entryPath is the redirect target that
// loops the call back for another turn.
func New(transcriber Transcriber, classifier Classifier, dispatcher BookingDispatcher,
	entryPath string, externalTimeout time.Duration, logger *observability.Logger) *CallTurnProcessor {
	return &CallTurnProcessor{
		transcriber:     transcriber,
		classifier:      classifier,
		dispatcher:      dispatcher,
		entryPath:       entryPath,
		externalTimeout: externalTimeout,
		logger:          logger,
	}
}

// HandleTurn runs the full turn pipeline. Each external call is bounded by
// the configured timeout and attempted exactly once.
func (p *CallTurnProcessor) HandleTurn(ctx context.Context, in TurnInput) TurnResult {
	if in.RecordingURL == "" {
		p.logger.Warn(ctx, "turn callback without a recording reference")
		return p.apology()
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "caller", Value: in.From})

	transcribeCtx, cancelTranscribe := context.WithTimeout(ctx, p.externalTimeout)
	defer cancelTranscribe()
	transcript, err := p.transcriber.TranscribeRecording(transcribeCtx, in.RecordingURL)
	if err != nil {
		p.logger.Error(ctx, "turn failed during transcription", err)
		return p.apology()
	}

	classifyCtx, cancelClassify := context.WithTimeout(ctx, p.externalTimeout)
	defer cancelClassify()
	result, err := p.classifier.Classify(classifyCtx, transcript, in.From)
	if err != nil {
		p.logger.Error(ctx, "turn failed during classification", err)
		return p.apology()
	}

	if result.IsBooking() {
		p.logger.Info(ctx, "caller classified as booking intent")
		// Confirmation is spoken regardless of dispatch outcome; delivery
		// failures are only observable in the dispatcher's logs.
		p.dispatcher.Dispatch(ctx, *result.Booking)
		return TurnResult{
			Say:    telephony.Confirmation,
			Action: ActionHangup,
		}
	}

	p.logger.Info(ctx, "caller classified as conversation, continuing call")
	return TurnResult{
		Say:        result.Reply,
		Action:     ActionLoop,
		RedirectTo: p.entryPath,
	}
}

func (p *CallTurnProcessor) apology() TurnResult {
	return TurnResult{
		Say:    telephony.Apology,
		Action: ActionSpeakOnly,
	}
}
