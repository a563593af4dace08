package midirtmidi

import (
	"bytes"
	"errors"
	"testing"

	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/microkorg2editor/mk2ctl/internal/logger"
	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

type fakeOut struct {
	name   string
	num    int
	open   bool
	sent   [][]byte
	closed int
	err    error
}

func (f *fakeOut) Open() error {
	f.open = true
	return nil
}

func (f *fakeOut) Close() error {
	f.open = false
	f.closed++
	return nil
}

func (f *fakeOut) IsOpen() bool            { return f.open }
func (f *fakeOut) Number() int             { return f.num }
func (f *fakeOut) String() string          { return f.name }
func (f *fakeOut) Underlying() interface{} { return nil }

func (f *fakeOut) Send(data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, append([]byte(nil), data...))
	return nil
}

func options(port string) *contracts.ClientOptions {
	return &contracts.ClientOptions{
		Logger:       logger.NewNopLogger(),
		OutputConfig: &contracts.OutputConfig{ClientName: "test", PortName: port},
	}
}

func TestSendWithoutSelection(t *testing.T) {
	a := &fakeOut{name: "A"}
	m := newClient(options(""), func() []drivers.Out { return []drivers.Out{a} }, nil)

	if got := m.Selected(); got != contracts.NoDevice {
		t.Errorf("Selected() = %d, want: %d", got, contracts.NoDevice)
	}
	if err := m.Send(contracts.Message{0xB0, 7, 100}); err != nil {
		t.Errorf("Send with no device = %v, want nil", err)
	}
	if len(a.sent) != 0 {
		t.Errorf("port received %v with no device selected", a.sent)
	}
}

func TestSelectAndSend(t *testing.T) {
	a := &fakeOut{name: "A", num: 0}
	b := &fakeOut{name: "microKORG2", num: 1}
	m := newClient(options(""), func() []drivers.Out { return []drivers.Out{a, b} }, nil)

	devices, err := m.ListDevices()
	if err != nil || len(devices) != 2 || devices[1].Name != "microKORG2" {
		t.Fatalf("ListDevices() = %v, %v", devices, err)
	}

	if err := m.SelectDevice(1); err != nil {
		t.Fatal(err)
	}
	if err := m.Send(contracts.Message{0xB0, 74, 12}); err != nil {
		t.Fatal(err)
	}
	if len(b.sent) != 1 || !bytes.Equal(b.sent[0], []byte{0xB0, 74, 12}) {
		t.Errorf("port B received %v, want [[b0 4a 0c]]", b.sent)
	}

	if err := m.SelectDevice(0); err != nil {
		t.Fatal(err)
	}
	if b.open {
		t.Error("previous port left open after reselect")
	}

	if err := m.SelectDevice(5); !errors.Is(err, contracts.ErrInvalidMIDIDevice) {
		t.Errorf("SelectDevice(5) = %v, want ErrInvalidMIDIDevice", err)
	}

	if err := m.Stop(); err != nil {
		t.Fatal(err)
	}
	if a.open {
		t.Error("port left open after Stop")
	}
	if err := m.Send(contracts.Message{0xB0, 1, 1}); err != nil {
		t.Errorf("Send after Stop = %v, want nil", err)
	}
}

func TestConfiguredPort(t *testing.T) {
	a := &fakeOut{name: "A"}
	b := &fakeOut{name: "microKORG2", num: 1}
	m := newClient(options("microKORG2"), func() []drivers.Out { return []drivers.Out{a, b} }, nil)
	if got := m.Selected(); got != 1 {
		t.Errorf("Selected() = %d, want: 1", got)
	}

	m = newClient(options("missing"), func() []drivers.Out { return []drivers.Out{a, b} }, nil)
	if got := m.Selected(); got != contracts.NoDevice {
		t.Errorf("Selected() = %d, want: %d", got, contracts.NoDevice)
	}
}

func TestListDevicesEmpty(t *testing.T) {
	m := newClient(options(""), func() []drivers.Out { return nil }, nil)
	if _, err := m.ListDevices(); !errors.Is(err, ErrNoMIDIDevices) {
		t.Errorf("ListDevices() err = %v, want ErrNoMIDIDevices", err)
	}
}

func TestSendToVanishedPort(t *testing.T) {
	a := &fakeOut{name: "A"}
	b := &fakeOut{name: "microKORG2", num: 1}
	ports := []drivers.Out{a, b}
	m := newClient(options("microKORG2"), func() []drivers.Out { return ports }, nil)

	b.err = errors.New("device busy")
	if err := m.Send(contracts.Message{0xB0, 7, 1}); err == nil {
		t.Error("Send to a listed port that fails = nil, want error")
	}
	if got := m.Selected(); got != 1 {
		t.Errorf("Selected() = %d after transient failure, want: 1", got)
	}

	b.err = errors.New("device removed")
	ports = []drivers.Out{a}
	if err := m.Send(contracts.Message{0xB0, 7, 2}); err != nil {
		t.Errorf("Send to unplugged port = %v, want nil", err)
	}
	if got := m.Selected(); got != contracts.NoDevice {
		t.Errorf("Selected() = %d after unplug, want: %d", got, contracts.NoDevice)
	}
	if err := m.Send(contracts.Message{0xB0, 7, 3}); err != nil {
		t.Errorf("Send after unplug = %v, want nil", err)
	}
}
