package transcribe

import (
	"context"
	"errors"
	"fmt"

	"receptionist-server/internal/observability"
)

// ErrTranscriptionFailed covers both the recording download and the
// speech-to-text call. Each is attempted exactly once per turn.
var ErrTranscriptionFailed = errors.New("transcription failed")

// AudioFetcher downloads the recorded audio asset for a call turn.
type AudioFetcher interface {
	FetchRecording(ctx context.Context, recordingURL string) ([]byte, error)
}

// SpeechClient converts audio bytes to text.
type SpeechClient interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Transcriber resolves a recording reference into transcript text.
type Transcriber struct {
	fetcher AudioFetcher
	speech  SpeechClient
	logger  *observability.Logger
}

// New creates a Transcriber.
func New(fetcher AudioFetcher, speech SpeechClient, logger *observability.Logger) *Transcriber {
	return &Transcriber{
		fetcher: fetcher,
		speech:  speech,
		logger:  logger,
	}
}

// TranscribeRecording downloads the recording and runs speech-to-text over it.
func (t *Transcriber) TranscribeRecording(ctx context.Context, recordingURL string) (string, error) {
	audio, err := t.fetcher.FetchRecording(ctx, recordingURL)
	if err != nil {
		t.logger.Error(ctx, "failed to fetch recording", err)
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "audio_bytes", Value: len(audio)})

	transcript, err := t.speech.Transcribe(ctx, audio)
	if err != nil {
		t.logger.Error(ctx, "speech-to-text call failed", err)
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	t.logger.Info(ctx, "recording transcribed")
	return transcript, nil
}
