package intent

import (
	"encoding/json"
	"strings"
)

// Decode interprets a raw model reply. The whole reply must parse as a JSON
// object carrying intent "booking" to count as a booking; anything else,
// including JSON-shaped prose without the intent marker, is treated as
// conversational text and returned verbatim.
func Decode(raw, callerNumber string) Result {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return Result{Reply: raw}
	}

	var booking Booking
	if err := json.Unmarshal([]byte(trimmed), &booking); err != nil {
		return Result{Reply: raw}
	}
	if booking.Intent != bookingIntent {
		return Result{Reply: raw}
	}

	if booking.Phone == "" {
		booking.Phone = callerNumber
	}
	return Result{Booking: &booking}
}
