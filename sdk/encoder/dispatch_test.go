package encoder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

type fakeSource struct {
	cc   []contracts.CCParameter
	nrpn []contracts.NRPNParameter
	pc   *contracts.ProgramChangeParameter
}

func (f fakeSource) CC(i int) (contracts.CCParameter, bool) {
	if i < 0 || i >= len(f.cc) {
		return contracts.CCParameter{}, false
	}
	return f.cc[i], true
}

func (f fakeSource) NRPN(i int) (contracts.NRPNParameter, bool) {
	if i < 0 || i >= len(f.nrpn) {
		return contracts.NRPNParameter{}, false
	}
	return f.nrpn[i], true
}

func (f fakeSource) ProgramChange() (contracts.ProgramChangeParameter, bool) {
	if f.pc == nil {
		return contracts.ProgramChangeParameter{}, false
	}
	return *f.pc, true
}

func TestEncoderEncode(t *testing.T) {
	enc := New(fakeSource{
		cc:   []contracts.CCParameter{{Name: "Cutoff", CC: 74}, {Name: "Resonance", CC: 71}},
		nrpn: []contracts.NRPNParameter{{Name: "Osc1 Semitone", MSB: 2, LSB: 10, KnobMin: -24, KnobMax: 24}},
		pc:   &contracts.ProgramChangeParameter{Name: "Program", KnobMin: 0, KnobMax: 255},
	})

	t.Run("cc", func(t *testing.T) {
		got, err := enc.Encode(1, contracts.ParameterID{Kind: contracts.KindCC, Index: 1}, 90)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || !bytes.Equal(got[0], contracts.Message{0xB1, 71, 90}) {
			t.Errorf("got %v, want [b1 47 5a]", got)
		}
	})

	t.Run("nrpn", func(t *testing.T) {
		got, err := enc.Encode(0, contracts.ParameterID{Kind: contracts.KindNRPN}, -3)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 4 {
			t.Fatalf("got %d messages, want 4", len(got))
		}
		if got[0][1] != CCNRPNMSB || got[1][1] != CCNRPNLSB || got[2][1] != CCDataEntryMSB || got[3][1] != CCDataEntryLSB {
			t.Errorf("controller order = %d %d %d %d, want 99 98 6 38", got[0][1], got[1][1], got[2][1], got[3][1])
		}
		if got[2][2] != 0x7F {
			t.Errorf("data entry msb = %#x, want 0x7f", got[2][2])
		}
	})

	t.Run("program change", func(t *testing.T) {
		got, err := enc.Encode(0, contracts.ParameterID{Kind: contracts.KindProgramChange}, 130)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || !bytes.Equal(got[0], contracts.Message{0xB0, 32, 2}) || !bytes.Equal(got[1], contracts.Message{0xC0, 2}) {
			t.Errorf("got %v, want [b0 20 02] [c0 02]", got)
		}
	})

	for _, id := range []contracts.ParameterID{
		{Kind: contracts.KindCC, Index: 2},
		{Kind: contracts.KindCC, Index: -1},
		{Kind: contracts.KindNRPN, Index: 1},
		{Kind: contracts.KindProgramChange, Index: 1},
		{Kind: contracts.ParameterKind(9)},
	} {
		t.Run("unknown "+id.String(), func(t *testing.T) {
			msgs, err := enc.Encode(0, id, 1)
			if !errors.Is(err, ErrUnknownParameter) {
				t.Errorf("err = %v, want ErrUnknownParameter", err)
			}
			if msgs != nil {
				t.Errorf("msgs = %v, want nil", msgs)
			}
		})
	}
}

func TestEncoderNoProgramChange(t *testing.T) {
	enc := New(fakeSource{})
	if _, err := enc.Encode(0, contracts.ParameterID{Kind: contracts.KindProgramChange}, 1); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("err = %v, want ErrUnknownParameter", err)
	}
}
