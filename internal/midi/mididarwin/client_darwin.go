//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/youpy/go-coremidi"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// Error definitions for CoreMIDI output handling.
var (
	ErrNoMIDIDevices    = errors.New("no MIDI destinations found")
	ErrCreateOutputPort = errors.New("error creating output port")
	ErrSend             = errors.New("error sending MIDI packet")
)

// ClientMid sends MIDI to CoreMIDI destinations on Darwin (macOS) systems.
// The destination list is re-read on every send so unplugged devices are noticed.
type ClientMid struct {
	logger       contracts.Logger
	client       coremidi.Client     // CoreMIDI client instance for MIDI operations.
	outputPort   coremidi.OutputPort // Output port packets are sent through.
	mu           sync.Mutex
	selected     int    // Index of the selected destination, or contracts.NoDevice.
	selectedName string // Name of the selected destination, used to follow it across re-enumeration.
	stopOnce     sync.Once
}

// NewMIDIClient initializes a CoreMIDI client and output port.
// When OutputConfig.PortName names an available destination it is selected.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.Output, error) {
	client, err := coremidi.NewClient(options.OutputConfig.ClientName)
	if err != nil {
		return nil, err
	}
	port, err := coremidi.NewOutputPort(client, "Output Port")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
	}
	options.Logger.Info("MIDI client successfully created")

	m := &ClientMid{
		logger:     options.Logger,
		client:     client,
		outputPort: port,
		selected:   contracts.NoDevice,
	}
	if name := options.OutputConfig.PortName; name != "" {
		m.selectByName(name)
	}
	return m, nil
}

func (m *ClientMid) selectByName(name string) {
	devices, err := m.ListDevices()
	if err != nil {
		return
	}
	for i, d := range devices {
		if d.Name == name {
			if err := m.SelectDevice(i); err != nil {
				m.logger.Warn("Could not select configured port", m.logger.Field().String("port", name))
			}
			return
		}
	}
	m.logger.Warn("Configured port not found", m.logger.Field().String("port", name))
}

// ListDevices retrieves and returns available MIDI destinations.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	if len(destinations) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(destinations))
	for i, destination := range destinations {
		devices[i] = contracts.DeviceInfo{
			Name:       destination.Name(),
			EntityName: destination.Name(),
		}
	}
	return devices, nil
}

// SelectDevice selects a MIDI destination by index.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI destinations: %w", err)
	}
	if deviceID < 0 || deviceID >= len(destinations) {
		m.logger.Error(contracts.ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return contracts.ErrInvalidMIDIDevice
	}

	m.selected = deviceID
	m.selectedName = destinations[deviceID].Name()
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", m.selectedName))
	return nil
}

// Selected returns the selected destination index.
func (m *ClientMid) Selected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Send delivers msg to the selected destination. A missing destination is a no-op.
func (m *ClientMid) Send(msg contracts.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == contracts.NoDevice {
		return nil
	}
	destinations, err := coremidi.AllDestinations()
	if err != nil || m.selected >= len(destinations) || destinations[m.selected].Name() != m.selectedName {
		m.logger.Debug("Selected MIDI destination unavailable; dropping message",
			m.logger.Field().Bytes("msg", msg))
		return nil
	}

	destination := destinations[m.selected]
	packet := coremidi.NewPacket(msg, 0)
	if err := packet.Send(&m.outputPort, &destination); err != nil {
		m.logger.Error(ErrSend.Error(), m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

// Stop deselects the destination; later sends are no-ops. It only executes once.
// CoreMIDI tears the client and port down with the process.
func (m *ClientMid) Stop() error {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.logger.Info("Stopping MIDI output")
		m.selected = contracts.NoDevice
		m.selectedName = ""
	})
	return nil
}
