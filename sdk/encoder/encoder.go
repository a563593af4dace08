// Package encoder turns parameter values into outbound MIDI messages.
//
// The three message families are Control Change, NRPN and Program Change with bank select.
// All functions are pure; transmission is the caller's job.
package encoder

import (
	"errors"
	"fmt"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Status bytes, channel in the low nibble.
const (
	StatusControlChange byte = 0xB0
	StatusProgramChange byte = 0xC0
)

// Controller numbers used by the multi-message encodings.
const (
	CCDataEntryMSB  = 6
	CCBankSelectLSB = 32
	CCDataEntryLSB  = 38
	CCNRPNLSB       = 98
	CCNRPNMSB       = 99
)

// ProgramsPerBank is the number of program slots in one bank on the target synth.
const ProgramsPerBank = 64

// nrpnNegative is the data entry MSB sent for negative NRPN values. The synth reads
// CC6=0x7F as the sign of the 7-bit value in CC38.
const nrpnNegative = 0x7F

var (
	// ErrOutOfRange is returned for an address byte (channel, controller, NRPN number)
	// outside its valid range. Values are clamped instead.
	ErrOutOfRange = errors.New("out of range")
	// ErrUnknownParameter is returned when a ParameterID does not resolve to a descriptor.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// Clamp7 limits v to the 7-bit MIDI data range 0-127.
func Clamp7(v int) byte {
	switch {
	case v < 0:
		return 0
	case v > 0x7F:
		return 0x7F
	}
	return byte(v)
}

func checkChannel(channel contracts.ChannelID) error {
	if !channel.Valid() {
		return fmt.Errorf("channel %d: %w", channel, ErrOutOfRange)
	}
	return nil
}

func checkData(what string, v int) error {
	if v < 0 || v > 0x7F {
		return fmt.Errorf("%s %d: %w", what, v, ErrOutOfRange)
	}
	return nil
}

// EncodeCC returns [0xB0|channel, cc, value] with value clamped to 0-127.
func EncodeCC(channel contracts.ChannelID, cc, value int) (contracts.Message, error) {
	if err := checkChannel(channel); err != nil {
		return nil, err
	}
	if err := checkData("controller", cc); err != nil {
		return nil, err
	}
	return contracts.Message(gomidi.ControlChange(uint8(channel), uint8(cc), Clamp7(value))), nil
}

// EncodeNRPN returns the four Control Change messages that set NRPN (msb, lsb) to value:
// CC99 msb, CC98 lsb, CC6 sign, CC38 value&0x7F. The select pair always comes first.
func EncodeNRPN(channel contracts.ChannelID, msb, lsb, value int) ([]contracts.Message, error) {
	if err := checkChannel(channel); err != nil {
		return nil, err
	}
	if err := checkData("nrpn msb", msb); err != nil {
		return nil, err
	}
	if err := checkData("nrpn lsb", lsb); err != nil {
		return nil, err
	}

	var dataMSB byte
	if value < 0 {
		dataMSB = nrpnNegative
	}
	ch := uint8(channel)
	return []contracts.Message{
		contracts.Message(gomidi.ControlChange(ch, CCNRPNMSB, uint8(msb))),
		contracts.Message(gomidi.ControlChange(ch, CCNRPNLSB, uint8(lsb))),
		contracts.Message(gomidi.ControlChange(ch, CCDataEntryMSB, dataMSB)),
		contracts.Message(gomidi.ControlChange(ch, CCDataEntryLSB, byte(value&0x7F))),
	}, nil
}

// EncodeProgramChange splits value into bank (value/64) and program (value%64) and returns
// the bank select CC32 followed by the program change.
func EncodeProgramChange(channel contracts.ChannelID, value int) ([]contracts.Message, error) {
	bank, program := splitProgram(value)
	bankSelect, err := EncodeCC(channel, CCBankSelectLSB, bank)
	if err != nil {
		return nil, err
	}
	return []contracts.Message{
		bankSelect,
		contracts.Message(gomidi.ProgramChange(uint8(channel), uint8(program))),
	}, nil
}

// splitProgram uses floored division so program is always in 0-63.
func splitProgram(value int) (bank, program int) {
	bank = value / ProgramsPerBank
	program = value % ProgramsPerBank
	if program < 0 {
		program += ProgramsPerBank
		bank--
	}
	return bank, program
}
