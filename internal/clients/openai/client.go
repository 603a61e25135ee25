package openai

import (
	"bytes"
	"context"
	"fmt"

	"github.com/openai/openai-go"
	openaiOption "github.com/openai/openai-go/option"
)

// Client wraps the OpenAI SDK for speech-to-text and chat completion.
// A single Client is shared by all in-flight calls; the underlying SDK
// client is safe for concurrent use.
type Client struct {
	client          openai.Client
	transcribeModel string
	chatModel       string
}

// New creates an OpenAI client for the given API key and model identifiers.
func New(apiKey, transcribeModel, chatModel string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &Client{
		client:          openai.NewClient(openaiOption.WithAPIKey(apiKey)),
		transcribeModel: transcribeModel,
		chatModel:       chatModel,
	}, nil
}

// Transcribe sends audio bytes to the speech-to-text model and returns the transcript.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	file := openai.File(bytes.NewReader(audio), "audio.wav", "audio/wav")
	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(c.transcribeModel),
		File:  file,
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return resp.Text, nil
}

// Complete sends a system prompt and a user message to the chat model and
// returns the raw text of the first choice.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat completion")
	}
	return completion.Choices[0].Message.Content, nil
}
