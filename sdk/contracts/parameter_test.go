package contracts

import "testing"

func TestParameterIDRoundTrip(t *testing.T) {
	tests := []struct {
		id   ParameterID
		text string
	}{
		{ParameterID{Kind: KindCC, Index: 3}, "cc/3"},
		{ParameterID{Kind: KindNRPN, Index: 0}, "nrpn/0"},
		{ParameterID{Kind: KindProgramChange, Index: 0}, "pc/0"},
		{ParameterID{Kind: KindCC, Index: 127}, "cc/127"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := tt.id.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
			got, err := ParseParameterID(tt.text)
			if err != nil {
				t.Fatalf("ParseParameterID(%q): %v", tt.text, err)
			}
			if got != tt.id {
				t.Errorf("ParseParameterID(%q) = %+v, want %+v", tt.text, got, tt.id)
			}
		})
	}
}

func TestParseParameterIDRejects(t *testing.T) {
	for _, s := range []string{"", "cc", "cc/", "cc/-1", "cc/x", "foo/1", "/1"} {
		if id, err := ParseParameterID(s); err == nil {
			t.Errorf("ParseParameterID(%q) = %+v, want error", s, id)
		}
	}
}

func TestMessageString(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{nil, ""},
		{Message{}, ""},
		{Message{0xC0, 0x05}, "c0 05"},
		{Message{0xB0, 0x07, 0x64}, "b0 07 64"},
	}
	for _, tt := range tests {
		if got := tt.msg.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", []byte(tt.msg), got, tt.want)
		}
	}
}

func TestChannelValid(t *testing.T) {
	if !ChannelID(0).Valid() || !MaxChannel.Valid() {
		t.Error("0 and 15 must be valid channels")
	}
	if ChannelID(16).Valid() {
		t.Error("channel 16 reported valid")
	}
}
