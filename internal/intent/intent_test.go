package intent

import (
	"context"
	"errors"
	"testing"

	"receptionist-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatClient implements ChatClient for tests
type fakeChatClient struct {
	reply      string
	err        error
	gotSystem  string
	gotMessage string
}

func (f *fakeChatClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.gotSystem = systemPrompt
	f.gotMessage = userMessage
	return f.reply, f.err
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()
	logger := observability.NewLogger()

	t.Run("booking reply decodes with caller fallback", func(t *testing.T) {
		t.Parallel()
		chat := &fakeChatClient{
			reply: `{"intent":"booking","name":"John","phone":"","service":"haircut","date":"2025-01-05","time":"15:00"}`,
		}
		classifier := New(chat, logger)

		result, err := classifier.Classify(context.Background(), "I'd like a haircut for tomorrow at 3pm, this is John", "+15551234567")
		require.NoError(t, err)
		require.True(t, result.IsBooking())
		assert.Equal(t, "+15551234567", result.Booking.Phone)
		assert.Equal(t, "haircut", result.Booking.Service)

		// Transcript goes through as the user message, untouched
		assert.Equal(t, "I'd like a haircut for tomorrow at 3pm, this is John", chat.gotMessage)
		assert.Contains(t, chat.gotSystem, `"intent":"booking"`)
	})

	t.Run("prose reply is conversational", func(t *testing.T) {
		t.Parallel()
		chat := &fakeChatClient{reply: "We're open 9 to 5, Monday through Saturday."}
		classifier := New(chat, logger)

		result, err := classifier.Classify(context.Background(), "What are your hours?", "+15551234567")
		require.NoError(t, err)
		assert.False(t, result.IsBooking())
		assert.Equal(t, "We're open 9 to 5, Monday through Saturday.", result.Reply)
	})

	t.Run("completion failure surfaces ErrClassificationFailed", func(t *testing.T) {
		t.Parallel()
		chat := &fakeChatClient{err: errors.New("rate limited")}
		classifier := New(chat, logger)

		_, err := classifier.Classify(context.Background(), "hello", "+15551234567")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrClassificationFailed)
	})
}
