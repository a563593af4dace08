//go:build !portmidi
// +build !portmidi

package midiportmidi

import (
	"fmt"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient returns a dummy client; PortMidi support needs the portmidi build tag.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.Output, error) {
	options.Logger.Warn("PortMidi support not compiled in; rebuild with -tags portmidi")
	return &dummyMIDIClient{logger: options.Logger}, nil
}

func (m *dummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy PortMidi client")
	return nil, fmt.Errorf("PortMidi is not available in this build")
}

func (m *dummyMIDIClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy PortMidi client")
	return fmt.Errorf("PortMidi is not available in this build")
}

func (m *dummyMIDIClient) Selected() int                    { return contracts.NoDevice }
func (m *dummyMIDIClient) Send(msg contracts.Message) error { return nil }
func (m *dummyMIDIClient) Stop() error                      { return nil }
