package intent

import (
	"context"
	"errors"
	"fmt"

	"receptionist-server/internal/observability"
)

// ErrClassificationFailed indicates the chat completion call itself failed.
// A malformed model reply is not an error; it decodes to a conversational result.
var ErrClassificationFailed = errors.New("classification failed")

const bookingIntent = "booking"

// systemPrompt fixes the classification contract with the model: JSON only
// for bookings, prose for everything else.
const systemPrompt = `You are an AI receptionist for a service business. Be friendly, concise, and helpful.

If, and only if, the caller wants to schedule an appointment, respond with ONLY a JSON object and nothing else, in exactly this shape:
{"intent":"booking","name":"<caller name>","phone":"<phone number>","service":"<requested service>","date":"<requested date>","time":"<requested time>"}
Use an empty string for any field the caller did not state.

For every other request, respond with plain conversational text and never include JSON in your reply.`

// Booking is the structured appointment request extracted from a caller
// utterance. Date and time are the caller's words, not validated calendar values.
type Booking struct {
	Intent  string `json:"intent"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// Result is the classification outcome: exactly one of Booking or Reply is
// populated.
type Result struct {
	Booking *Booking
	Reply   string
}

// IsBooking reports whether the caller was classified as wanting an appointment.
func (r Result) IsBooking() bool {
	return r.Booking != nil
}

// ChatClient is the chat-completion dependency of the classifier.
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Classifier sends caller utterances to the language model and decodes the
// reply into a booking or a conversational answer.
type Classifier struct {
	chat   ChatClient
	logger *observability.Logger
}

// New creates a Classifier.
func New(chat ChatClient, logger *observability.Logger) *Classifier {
	return &Classifier{
		chat:   chat,
		logger: logger,
	}
}

// Classify runs one chat completion over the transcript and decodes the raw
// reply. callerNumber fills the booking phone field when the model omits it.
func (c *Classifier) Classify(ctx context.Context, transcript, callerNumber string) (Result, error) {
	raw, err := c.chat.Complete(ctx, systemPrompt, transcript)
	if err != nil {
		c.logger.Error(ctx, "chat completion failed", err)
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	return Decode(raw, callerNumber), nil
}
