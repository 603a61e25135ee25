package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// recordingSuffix resolves the provider's base recording identifier into a
// fetchable media asset.
const recordingSuffix = ".wav"

// RecordingClient downloads call recordings from the telephony provider.
// Recordings are protected resources; requests authenticate with the account
// SID and auth token.
type RecordingClient struct {
	accountSID string
	authToken  string
	httpClient *http.Client
}

// NewRecordingClient creates a RecordingClient with a bounded request timeout.
func NewRecordingClient(accountSID, authToken string, timeout time.Duration) *RecordingClient {
	return &RecordingClient{
		accountSID: accountSID,
		authToken:  authToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRecording downloads the audio for the given base recording URL and
// returns the raw bytes. The provider hands out a base identifier; the wav
// suffix is appended here to resolve the playable asset.
func (c *RecordingClient) FetchRecording(ctx context.Context, recordingURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordingURL+recordingSuffix, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recording: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("recording fetch returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording body: %w", err)
	}
	return audio, nil
}
