package contracts

import (
	"fmt"
	"strconv"
	"strings"
)

// ChannelID is a MIDI channel, 0-15. It only ever travels in the low nibble of a status byte.
type ChannelID uint8

// MaxChannel is the highest valid ChannelID.
const MaxChannel ChannelID = 15

// Valid reports whether the channel is within 0-15.
func (c ChannelID) Valid() bool {
	return c <= MaxChannel
}

// CCParameter is a 7-bit control addressed by a single Control Change number.
type CCParameter struct {
	Name string
	CC   int
}

// NRPNParameter is a control addressed by an NRPN (MSB, LSB) pair.
type NRPNParameter struct {
	Name    string
	MSB     int
	LSB     int
	KnobMin int
	KnobMax int
}

// ProgramChangeParameter is the combined bank and program selector.
type ProgramChangeParameter struct {
	Name    string
	KnobMin int
	KnobMax int
}

// ParameterKind identifies which message family a parameter is encoded with.
type ParameterKind int

const (
	KindCC ParameterKind = iota
	KindNRPN
	KindProgramChange
)

var kindNames = map[ParameterKind]string{
	KindCC:            "cc",
	KindNRPN:          "nrpn",
	KindProgramChange: "pc",
}

func (k ParameterKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParameterID is a stable parameter identifier: the message family plus the index within
// that family's catalog array. The program change selector always has Index 0.
type ParameterID struct {
	Kind  ParameterKind
	Index int
}

// String renders the ID as "<kind>/<index>", e.g. "nrpn/3".
func (id ParameterID) String() string {
	return id.Kind.String() + "/" + strconv.Itoa(id.Index)
}

// ParseParameterID parses the String form of a ParameterID.
func ParseParameterID(s string) (ParameterID, error) {
	kind, idx, ok := strings.Cut(s, "/")
	if !ok {
		return ParameterID{}, fmt.Errorf("parameter id %q: missing '/'", s)
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return ParameterID{}, fmt.Errorf("parameter id %q: bad index", s)
	}
	for k, name := range kindNames {
		if name == kind {
			return ParameterID{Kind: k, Index: i}, nil
		}
	}
	return ParameterID{}, fmt.Errorf("parameter id %q: unknown kind %q", s, kind)
}

// ParameterChanged is emitted by a front end whenever the user moves a control.
type ParameterChanged struct {
	ID    ParameterID
	Value int
}
