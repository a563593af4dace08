//go:build !windows
// +build !windows

package midiwindows

import (
	"fmt"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient initializes a dummy WinMM client for non-Windows systems.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.Output, error) {
	options.Logger.Info("Using dummy WinMM client for non-Windows system")
	return &dummyMIDIClient{
		logger: options.Logger,
	}, nil
}

// ListDevices logs a warning and returns an error indicating that WinMM is unavailable on this platform.
func (m *dummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy WinMM client")
	return nil, fmt.Errorf("WinMM is not available on this platform")
}

// SelectDevice logs a warning and returns an error indicating that WinMM is unavailable on this platform.
func (m *dummyMIDIClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy WinMM client")
	return fmt.Errorf("WinMM is not available on this platform")
}

func (m *dummyMIDIClient) Selected() int {
	return contracts.NoDevice
}

func (m *dummyMIDIClient) Send(msg contracts.Message) error {
	return nil
}

// Stop logs a warning indicating that Stop was called on the dummy WinMM client.
func (m *dummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy WinMM client")
	return nil
}
