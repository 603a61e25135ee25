package telephony

import (
	"github.com/twilio/twilio-go/twiml"
)

// Caller-facing phrases. These are the only strings the service ever speaks
// on its own behalf; everything else is model output passed through verbatim.
const (
	Greeting     = "Hello, thanks for calling. How can I help you today?"
	Confirmation = "Thank you, your appointment request has been received. We will confirm it shortly. Goodbye."
	Apology      = "Sorry, I'm having trouble responding right now."
)

// recordSilenceTimeout is the number of seconds of silence after which the
// provider stops recording and posts the turn callback.
const recordSilenceTimeout = "3"

// GreetAndRecord speaks the opening prompt and starts recording caller
// speech, directing the provider to POST the recording to actionURL.
func GreetAndRecord(greeting, actionURL string) (string, error) {
	say := &twiml.VoiceSay{
		Message: greeting,
	}
	record := &twiml.VoiceRecord{
		Action:     actionURL,
		Method:     "POST",
		Timeout:    recordSilenceTimeout,
		PlayBeep:   "true",
		Transcribe: "false",
	}
	return twiml.Voice([]twiml.Element{say, record})
}

// SpeakAndLoop speaks the reply text, then redirects the provider back to
// redirectURL so the same call can continue for another turn.
func SpeakAndLoop(text, redirectURL string) (string, error) {
	say := &twiml.VoiceSay{
		Message: text,
	}
	redirect := &twiml.VoiceRedirect{
		Url:    redirectURL,
		Method: "POST",
	}
	return twiml.Voice([]twiml.Element{say, redirect})
}

// SpeakAndHangup speaks a terminal message and ends the call.
func SpeakAndHangup(text string) (string, error) {
	say := &twiml.VoiceSay{
		Message: text,
	}
	hangup := &twiml.VoiceHangup{}
	return twiml.Voice([]twiml.Element{say, hangup})
}

// SpeakOnly speaks a message without any follow-up directive. Used for the
// apology path, which leaves call teardown to the provider.
func SpeakOnly(text string) (string, error) {
	say := &twiml.VoiceSay{
		Message: text,
	}
	return twiml.Voice([]twiml.Element{say})
}
