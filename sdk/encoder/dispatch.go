package encoder

import (
	"fmt"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// ParameterSource resolves parameter descriptors by catalog index.
// The second result is false when the index is out of range or the family is absent.
type ParameterSource interface {
	CC(index int) (contracts.CCParameter, bool)
	NRPN(index int) (contracts.NRPNParameter, bool)
	ProgramChange() (contracts.ProgramChangeParameter, bool)
}

// Encoder encodes ParameterChanged events against a parameter catalog.
type Encoder struct {
	params ParameterSource
}

// New returns an Encoder that resolves parameters through src.
func New(src ParameterSource) *Encoder {
	return &Encoder{params: src}
}

// Encode returns the ordered messages that set parameter id to value on channel.
func (e *Encoder) Encode(channel contracts.ChannelID, id contracts.ParameterID, value int) ([]contracts.Message, error) {
	switch id.Kind {
	case contracts.KindCC:
		p, ok := e.params.CC(id.Index)
		if !ok {
			return nil, fmt.Errorf("%s: %w", id, ErrUnknownParameter)
		}
		msg, err := EncodeCC(channel, p.CC, value)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", id, p.Name, err)
		}
		return []contracts.Message{msg}, nil

	case contracts.KindNRPN:
		p, ok := e.params.NRPN(id.Index)
		if !ok {
			return nil, fmt.Errorf("%s: %w", id, ErrUnknownParameter)
		}
		msgs, err := EncodeNRPN(channel, p.MSB, p.LSB, value)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", id, p.Name, err)
		}
		return msgs, nil

	case contracts.KindProgramChange:
		if _, ok := e.params.ProgramChange(); !ok || id.Index != 0 {
			return nil, fmt.Errorf("%s: %w", id, ErrUnknownParameter)
		}
		return EncodeProgramChange(channel, value)
	}
	return nil, fmt.Errorf("%s: %w", id, ErrUnknownParameter)
}
