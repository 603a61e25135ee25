package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"receptionist-server/internal/intent"
	"receptionist-server/internal/observability"

	"github.com/google/uuid"
)

// Dispatcher forwards booking objects to the downstream automation webhook.
// Deliveries run on a background worker consuming a buffered queue, so the
// caller-facing response never waits on the webhook. Outcomes are logged and
// nothing else; a failed delivery does not change what the caller hears.
type Dispatcher struct {
	webhookURL string
	httpClient *http.Client
	logger     *observability.Logger
	queue      chan intent.Booking
	stopChan   chan struct{}
	timeout    time.Duration
}

// New creates a Dispatcher posting to webhookURL. queueSize bounds how many
// bookings can be pending delivery at once.
func New(webhookURL string, queueSize int, timeout time.Duration, logger *observability.Logger) *Dispatcher {
	return &Dispatcher{
		webhookURL: webhookURL,
		logger:     logger,
		queue:      make(chan intent.Booking, queueSize),
		stopChan:   make(chan struct{}),
		timeout:    timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Start runs the delivery worker until Stop is called or ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info(ctx, "Starting booking dispatch worker")

	for {
		select {
		case booking := <-d.queue:
			d.deliver(ctx, booking)
		case <-d.stopChan:
			d.logger.Info(ctx, "Stopping booking dispatch worker")
			return
		case <-ctx.Done():
			d.logger.Info(ctx, "Context cancelled, stopping booking dispatch worker")
			return
		}
	}
}

// Stop stops the delivery worker. Bookings still queued are dropped with a log line.
func (d *Dispatcher) Stop() {
	close(d.stopChan)
}

// Dispatch enqueues a booking for delivery. It never blocks the call turn:
// if the queue is full the booking is dropped and logged.
func (d *Dispatcher) Dispatch(ctx context.Context, booking intent.Booking) {
	select {
	case d.queue <- booking:
		d.logger.Info(ctx, "booking queued for dispatch")
	default:
		d.logger.Error(ctx, "dispatch queue full, dropping booking", fmt.Errorf("queue capacity %d exceeded", cap(d.queue)))
	}
}

// deliver performs the single POST attempt for one booking.
func (d *Dispatcher) deliver(ctx context.Context, booking intent.Booking) {
	deliveryID := uuid.New().String()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "delivery_id", Value: deliveryID},
		observability.Field{Key: "booking_service", Value: booking.Service},
	)

	payloadBytes, err := json.Marshal(booking)
	if err != nil {
		d.logger.Error(ctx, "failed to marshal booking payload", err)
		return
	}

	deliverCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	startTime := time.Now()
	req, err := http.NewRequestWithContext(deliverCtx, http.MethodPost, d.webhookURL, bytes.NewReader(payloadBytes))
	if err != nil {
		d.logger.Error(ctx, "failed to create dispatch request", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "AI-Receptionist-Dispatch/1.0")

	resp, err := d.httpClient.Do(req)
	durationMs := int(time.Since(startTime).Milliseconds())
	ctx = observability.WithFields(ctx, observability.Field{Key: "duration_ms", Value: durationMs})

	if err != nil {
		d.logger.Error(ctx, "booking dispatch failed", err)
		return
	}
	defer resp.Body.Close()

	// Response body is not consumed beyond draining; only the status matters.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 10240))

	ctx = observability.WithFields(ctx, observability.Field{Key: "response_status", Value: resp.StatusCode})
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		d.logger.Info(ctx, "booking dispatched successfully")
		return
	}
	d.logger.Error(ctx, "booking dispatch failed", fmt.Errorf("webhook returned status %d", resp.StatusCode))
}
