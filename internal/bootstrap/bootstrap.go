package bootstrap

import (
	"receptionist-server/internal/config"
	"receptionist-server/internal/observability"

	callHandler "receptionist-server/internal/calls/handler"
	callProcessor "receptionist-server/internal/calls/processor"
	openaiClient "receptionist-server/internal/clients/openai"
	twilioClient "receptionist-server/internal/clients/twilio"
	"receptionist-server/internal/dispatch"
	"receptionist-server/internal/intent"
	"receptionist-server/internal/transcribe"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	Logger      *observability.Logger
	CallHandler callHandler.Handler
	Dispatcher  *dispatch.Dispatcher
}

// New wires the full dependency graph from configuration.
func New(cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	aiClient, err := openaiClient.New(cfg.OpenAI.APIKey, cfg.OpenAI.TranscribeModel, cfg.OpenAI.ChatModel)
	if err != nil {
		return nil, err
	}

	recordings := twilioClient.NewRecordingClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Server.ExternalTimeout)
	transcriber := transcribe.New(recordings, aiClient, logger)
	classifier := intent.New(aiClient, logger)
	dispatcher := dispatch.New(cfg.Dispatch.BookingWebhookURL, cfg.Dispatch.QueueSize, cfg.Server.ExternalTimeout, logger)

	turnProcessor := callProcessor.New(
		transcriber,
		classifier,
		dispatcher,
		callHandler.EntryPath,
		cfg.Server.ExternalTimeout,
		logger,
	)

	return &Dependencies{
		Logger:      logger,
		CallHandler: callHandler.New(turnProcessor, logger),
		Dispatcher:  dispatcher,
	}, nil
}

// Cleanup releases resources held by the dependency graph. All clients here
// are stateless HTTP clients, so there is nothing to tear down beyond the
// dispatcher, which the server stops itself.
func (d *Dependencies) Cleanup() {}
