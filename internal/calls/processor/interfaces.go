package processor

import (
	"context"

	"receptionist-server/internal/intent"
)

// Transcriber resolves a recording reference into transcript text.
type Transcriber interface {
	TranscribeRecording(ctx context.Context, recordingURL string) (string, error)
}

// Classifier turns a transcript into a booking or a conversational reply.
type Classifier interface {
	Classify(ctx context.Context, transcript, callerNumber string) (intent.Result, error)
}

// BookingDispatcher forwards a booking downstream. Fire-and-forget: the turn
// never observes the outcome.
type BookingDispatcher interface {
	Dispatch(ctx context.Context, booking intent.Booking)
}
