// Package session connects parameter change events to an output device.
//
// A Session replaces free-standing "current device" and "current channel" state: it owns the
// channel, resolves the selected device on each send and keeps multi-message bursts whole.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
	"github.com/microkorg2editor/mk2ctl/sdk/encoder"
)

// Session encodes parameter changes and sends them to an Output.
type Session struct {
	out    contracts.Output
	enc    *encoder.Encoder
	logger contracts.Logger

	// mu serializes bursts: an NRPN select pair must not be split from its data entry pair
	// by another parameter's messages.
	mu      sync.Mutex
	channel contracts.ChannelID
}

// New returns a Session on channel 0. out may be nil, in which case nothing is ever sent.
func New(out contracts.Output, params encoder.ParameterSource, logger contracts.Logger) *Session {
	return &Session{
		out:    out,
		enc:    encoder.New(params),
		logger: logger,
	}
}

// Output returns the session's output.
func (s *Session) Output() contracts.Output {
	return s.out
}

// Channel returns the channel messages are sent on.
func (s *Session) Channel() contracts.ChannelID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channel
}

// SetChannel changes the channel for subsequent sends.
func (s *Session) SetChannel(ch contracts.ChannelID) error {
	if !ch.Valid() {
		return fmt.Errorf("channel %d: %w", ch, encoder.ErrOutOfRange)
	}
	s.mu.Lock()
	s.channel = ch
	s.mu.Unlock()
	s.logger.Info("MIDI channel changed", s.logger.Field().Int("channel", int(ch)))
	return nil
}

// Apply encodes ev and sends the resulting burst. Encoding failures are returned and nothing
// is sent. With no device selected Apply does nothing and returns nil.
func (s *Session) Apply(ev contracts.ParameterChanged) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := s.enc.Encode(s.channel, ev.ID, ev.Value)
	if err != nil {
		return err
	}
	return s.sendLocked(ev.ID.String(), msgs)
}

// SendCC sends a single Control Change on the session channel.
func (s *Session) SendCC(cc, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := encoder.EncodeCC(s.channel, cc, value)
	if err != nil {
		return err
	}
	return s.sendLocked("cc", []contracts.Message{msg})
}

// SendNRPN sends the four-message NRPN burst on the session channel.
func (s *Session) SendNRPN(msb, lsb, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := encoder.EncodeNRPN(s.channel, msb, lsb, value)
	if err != nil {
		return err
	}
	return s.sendLocked("nrpn", msgs)
}

// SendProgramChange sends bank select and program change on the session channel.
func (s *Session) SendProgramChange(value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := encoder.EncodeProgramChange(s.channel, value)
	if err != nil {
		return err
	}
	return s.sendLocked("pc", msgs)
}

// sendLocked transmits msgs in order and stops at the first failure.
func (s *Session) sendLocked(what string, msgs []contracts.Message) error {
	if s.out == nil || s.out.Selected() == contracts.NoDevice {
		s.logger.Debug("No output device selected; dropping burst",
			s.logger.Field().String("parameter", what),
			s.logger.Field().Int("messages", len(msgs)))
		return nil
	}
	for i, msg := range msgs {
		if err := s.out.Send(msg); err != nil {
			return fmt.Errorf("%s: message %d of %d: %w", what, i+1, len(msgs), err)
		}
		s.logger.Debug("MIDI message sent",
			s.logger.Field().String("parameter", what),
			s.logger.Field().Bytes("msg", msg))
	}
	return nil
}

// Run applies events until the channel is closed or ctx is done. Failed events are logged
// and skipped.
func (s *Session) Run(ctx context.Context, events <-chan contracts.ParameterChanged) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.Apply(ev); err != nil {
				s.logger.Error("Failed to apply parameter change",
					s.logger.Field().String("parameter", ev.ID.String()),
					s.logger.Field().Int("value", ev.Value),
					s.logger.Field().Error("error", err))
			}
		}
	}
}

// Close stops the output.
func (s *Session) Close() error {
	if s.out == nil {
		return nil
	}
	return s.out.Stop()
}
