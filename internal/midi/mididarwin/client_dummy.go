//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// DummyMIDIClient stands in for the CoreMIDI client on systems other than macOS.
type DummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient returns a DummyMIDIClient; CoreMIDI is only available on macOS.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.Output, error) {
	options.Logger.Info("Using dummy CoreMIDI client for non-macOS system")
	return &DummyMIDIClient{
		logger: options.Logger,
	}, nil
}

func (m *DummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy CoreMIDI client")
	return nil, fmt.Errorf("CoreMIDI is not available on this platform")
}

func (m *DummyMIDIClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy CoreMIDI client")
	return fmt.Errorf("CoreMIDI is not available on this platform")
}

func (m *DummyMIDIClient) Selected() int {
	return contracts.NoDevice
}

// Send drops msg; with no device there is nothing to send to.
func (m *DummyMIDIClient) Send(msg contracts.Message) error {
	return nil
}

func (m *DummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy CoreMIDI client")
	return nil
}
