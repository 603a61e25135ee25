package handler

import (
	"context"
	"net/http"

	"receptionist-server/internal/calls/processor"
	"receptionist-server/internal/observability"
	"receptionist-server/internal/telephony"

	"github.com/gin-gonic/gin"
)

// Routes exposed to the telephony provider.
const (
	EntryPath        = "/voice-entry"
	TurnCallbackPath = "/turn-callback"
)

// fallbackDocument is returned if TwiML rendering itself fails; the provider
// must always receive a valid instruction document.
const fallbackDocument = `<?xml version="1.0" encoding="UTF-8"?><Response><Say>` + telephony.Apology + `</Say></Response>`

// TurnProcessor runs one call turn.
type TurnProcessor interface {
	HandleTurn(ctx context.Context, in processor.TurnInput) processor.TurnResult
}

// Handler serves the telephony provider's webhooks.
type Handler struct {
	turnProcessor TurnProcessor
	logger        *observability.Logger
}

// New creates a Handler.
func New(turnProcessor TurnProcessor, logger *observability.Logger) Handler {
	return Handler{
		turnProcessor: turnProcessor,
		logger:        logger,
	}
}

// HandleVoiceEntry answers an inbound call: greet the caller and start
// recording, pointing the provider at the turn callback.
func (h Handler) HandleVoiceEntry(c *gin.Context) {
	doc, err := telephony.GreetAndRecord(telephony.Greeting, TurnCallbackPath)
	h.respond(c, doc, err)
}

// HandleTurnCallback processes one recorded caller utterance and answers
// with the next instruction document.
func (h Handler) HandleTurnCallback(c *gin.Context) {
	ctx := c.Request.Context()

	in := processor.TurnInput{
		RecordingURL: c.PostForm("RecordingUrl"),
		From:         c.PostForm("From"),
	}

	result := h.turnProcessor.HandleTurn(ctx, in)

	var doc string
	var err error
	switch result.Action {
	case processor.ActionLoop:
		doc, err = telephony.SpeakAndLoop(result.Say, result.RedirectTo)
	case processor.ActionHangup:
		doc, err = telephony.SpeakAndHangup(result.Say)
	default:
		doc, err = telephony.SpeakOnly(result.Say)
	}
	h.respond(c, doc, err)
}

// respond writes an instruction document with the telephony content type.
// Rendering failures degrade to the static apology document, never an error status.
func (h Handler) respond(c *gin.Context, doc string, err error) {
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to render instruction document", err)
		doc = fallbackDocument
	}
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, doc)
}
