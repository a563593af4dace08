package session

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/microkorg2editor/mk2ctl/sdk/encoder"
)

const timingClock = 0xF8

// HandleInbound receives raw bytes from an input device. Incoming messages are not acted on:
// timing clock is dropped, Control Change is ignored and anything else is logged at debug.
func (s *Session) HandleInbound(raw []byte) {
	if len(raw) == 0 || raw[0] == timingClock {
		return
	}
	if raw[0]&0xF0 == encoder.StatusControlChange {
		return
	}
	s.logger.Debug("Ignoring inbound MIDI message",
		s.logger.Field().String("type", gomidi.Message(raw).Type().String()),
		s.logger.Field().Bytes("msg", raw))
}
