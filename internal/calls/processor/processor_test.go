package processor

import (
	"context"
	"testing"
	"time"

	"receptionist-server/internal/intent"
	"receptionist-server/internal/observability"
	"receptionist-server/internal/telephony"
	"receptionist-server/internal/transcribe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	transcript string
	err        error
	calls      int
}

func (f *fakeTranscriber) TranscribeRecording(ctx context.Context, recordingURL string) (string, error) {
	f.calls++
	return f.transcript, f.err
}

type fakeClassifier struct {
	result        intent.Result
	err           error
	gotTranscript string
	gotCaller     string
}

func (f *fakeClassifier) Classify(ctx context.Context, transcript, callerNumber string) (intent.Result, error) {
	f.gotTranscript = transcript
	f.gotCaller = callerNumber
	return f.result, f.err
}

type fakeDispatcher struct {
	bookings []intent.Booking
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, booking intent.Booking) {
	f.bookings = append(f.bookings, booking)
}

const testEntryPath = "/voice-entry"

func newProcessor(tr Transcriber, cl Classifier, d BookingDispatcher) *CallTurnProcessor {
	return New(tr, cl, d, testEntryPath, 5*time.Second, observability.NewLogger())
}

func TestHandleTurn_BookingWithPhoneFallback(t *testing.T) {
	t.Parallel()

	// Scenario: caller asks for a haircut; the model omits the phone number.
	transcriber := &fakeTranscriber{transcript: "I'd like a haircut for tomorrow at 3pm, this is John"}
	classifier := &fakeClassifier{
		result: intent.Decode(
			`{"intent":"booking","name":"John","phone":"","service":"haircut","date":"2025-01-05","time":"15:00"}`,
			"+15551234567",
		),
	}
	dispatcher := &fakeDispatcher{}
	p := newProcessor(transcriber, classifier, dispatcher)

	result := p.HandleTurn(context.Background(), TurnInput{
		RecordingURL: "https://api.twilio.com/rec/RE123",
		From:         "+15551234567",
	})

	require.Len(t, dispatcher.bookings, 1)
	assert.Equal(t, "+15551234567", dispatcher.bookings[0].Phone)
	assert.Equal(t, "haircut", dispatcher.bookings[0].Service)

	assert.Equal(t, ActionHangup, result.Action)
	assert.Equal(t, telephony.Confirmation, result.Say)
	assert.Equal(t, "I'd like a haircut for tomorrow at 3pm, this is John", classifier.gotTranscript)
	assert.Equal(t, "+15551234567", classifier.gotCaller)
}

func TestHandleTurn_ConversationLoopsToEntry(t *testing.T) {
	t.Parallel()

	// Scenario: caller asks for opening hours; reply is spoken verbatim and
	// the call loops back for another turn.
	transcriber := &fakeTranscriber{transcript: "What are your hours?"}
	classifier := &fakeClassifier{
		result: intent.Result{Reply: "We're open 9 to 5, Monday through Saturday."},
	}
	dispatcher := &fakeDispatcher{}
	p := newProcessor(transcriber, classifier, dispatcher)

	result := p.HandleTurn(context.Background(), TurnInput{
		RecordingURL: "https://api.twilio.com/rec/RE124",
		From:         "+15551234567",
	})

	assert.Empty(t, dispatcher.bookings)
	assert.Equal(t, ActionLoop, result.Action)
	assert.Equal(t, "We're open 9 to 5, Monday through Saturday.", result.Say)
	assert.Equal(t, testEntryPath, result.RedirectTo)
}

func TestHandleTurn_JSONWithoutIntentMarkerIsNotDispatched(t *testing.T) {
	t.Parallel()

	raw := `{"hours":"9 to 5"}`
	transcriber := &fakeTranscriber{transcript: "What are your hours?"}
	classifier := &fakeClassifier{result: intent.Decode(raw, "+15551234567")}
	dispatcher := &fakeDispatcher{}
	p := newProcessor(transcriber, classifier, dispatcher)

	result := p.HandleTurn(context.Background(), TurnInput{
		RecordingURL: "https://api.twilio.com/rec/RE125",
		From:         "+15551234567",
	})

	assert.Empty(t, dispatcher.bookings)
	assert.Equal(t, ActionLoop, result.Action)
	assert.Equal(t, raw, result.Say)
}

func TestHandleTurn_TranscriptionFailureApologizes(t *testing.T) {
	t.Parallel()

	// Scenario: recording fetch fails; the caller hears the apology and the
	// dispatcher is never invoked.
	transcriber := &fakeTranscriber{err: transcribe.ErrTranscriptionFailed}
	classifier := &fakeClassifier{}
	dispatcher := &fakeDispatcher{}
	p := newProcessor(transcriber, classifier, dispatcher)

	result := p.HandleTurn(context.Background(), TurnInput{
		RecordingURL: "https://api.twilio.com/rec/RE126",
		From:         "+15551234567",
	})

	assert.Empty(t, dispatcher.bookings)
	assert.Equal(t, ActionSpeakOnly, result.Action)
	assert.Equal(t, telephony.Apology, result.Say)
	assert.Empty(t, classifier.gotTranscript)
}

func TestHandleTurn_ClassificationFailureApologizes(t *testing.T) {
	t.Parallel()

	transcriber := &fakeTranscriber{transcript: "hello"}
	classifier := &fakeClassifier{err: intent.ErrClassificationFailed}
	dispatcher := &fakeDispatcher{}
	p := newProcessor(transcriber, classifier, dispatcher)

	result := p.HandleTurn(context.Background(), TurnInput{
		RecordingURL: "https://api.twilio.com/rec/RE127",
		From:         "+15551234567",
	})

	assert.Empty(t, dispatcher.bookings)
	assert.Equal(t, ActionSpeakOnly, result.Action)
	assert.Equal(t, telephony.Apology, result.Say)
}

func TestHandleTurn_MissingRecordingReferenceApologizes(t *testing.T) {
	t.Parallel()

	transcriber := &fakeTranscriber{}
	classifier := &fakeClassifier{}
	dispatcher := &fakeDispatcher{}
	p := newProcessor(transcriber, classifier, dispatcher)

	result := p.HandleTurn(context.Background(), TurnInput{From: "+15551234567"})

	assert.Zero(t, transcriber.calls)
	assert.Empty(t, dispatcher.bookings)
	assert.Equal(t, ActionSpeakOnly, result.Action)
	assert.Equal(t, telephony.Apology, result.Say)
}
