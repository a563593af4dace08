//go:build portmidi
// +build portmidi

package midiportmidi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rakyll/portmidi"
	"go.uber.org/multierr"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

const (
	bufferSize = 1024
	latency    = 0 // milliseconds; 0 means timestamps are ignored
)

// ErrNoMIDIDevices is returned by ListDevices when PortMidi reports no output devices.
var ErrNoMIDIDevices = errors.New("no PortMidi output devices found")

// ClientMid sends MIDI through a PortMidi output stream.
// PortMidi numbers inputs and outputs together; ListDevices only exposes outputs and the
// index passed to SelectDevice is a position in that filtered list.
type ClientMid struct {
	logger   contracts.Logger
	mu       sync.Mutex
	stream   *portmidi.Stream
	selected int
	stopOnce sync.Once
}

// NewMIDIClient initializes PortMidi.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.Output, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portmidi: %w", err)
	}
	m := &ClientMid{logger: options.Logger, selected: contracts.NoDevice}
	options.Logger.Info("MIDI output client created", options.Logger.Field().String("driver", "portmidi"))

	if name := options.OutputConfig.PortName; name != "" {
		for i, id := range outputIDs() {
			if portmidi.Info(id).Name == name {
				if err := m.SelectDevice(i); err != nil {
					m.logger.Warn("Could not select configured port", m.logger.Field().String("port", name))
				}
				break
			}
		}
	}
	return m, nil
}

func outputIDs() []portmidi.DeviceID {
	var ids []portmidi.DeviceID
	for i := 0; i < portmidi.CountDevices(); i++ {
		id := portmidi.DeviceID(i)
		if info := portmidi.Info(id); info != nil && info.IsOutputAvailable {
			ids = append(ids, id)
		}
	}
	return ids
}

// ListDevices lists PortMidi output devices.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	ids := outputIDs()
	if len(ids) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}
	devices := make([]contracts.DeviceInfo, len(ids))
	for i, id := range ids {
		info := portmidi.Info(id)
		devices[i] = contracts.DeviceInfo{
			Name:         info.Name,
			EntityName:   info.Name,
			Manufacturer: info.Interface,
		}
	}
	return devices, nil
}

// SelectDevice opens an output stream on the device at deviceID.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := outputIDs()
	if deviceID < 0 || deviceID >= len(ids) {
		m.logger.Error(contracts.ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return contracts.ErrInvalidMIDIDevice
	}
	if err := m.closeStream(); err != nil {
		m.logger.Warn("Failed to close previous stream", m.logger.Field().Error("error", err))
	}

	stream, err := portmidi.NewOutputStream(ids[deviceID], bufferSize, latency)
	if err != nil {
		return fmt.Errorf("open portmidi output %d: %w", deviceID, err)
	}
	m.stream = stream
	m.selected = deviceID
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", portmidi.Info(ids[deviceID]).Name))
	return nil
}

// Selected returns the open device index.
func (m *ClientMid) Selected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Send writes msg as a PortMidi short message.
func (m *ClientMid) Send(msg contracts.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil || len(msg) == 0 {
		return nil
	}
	var data [2]int64
	for i := 1; i < len(msg) && i <= 2; i++ {
		data[i-1] = int64(msg[i])
	}
	if err := m.stream.WriteShort(int64(msg[0]), data[0], data[1]); err != nil {
		m.logger.Error("Failed to send MIDI message",
			m.logger.Field().Bytes("msg", msg),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("portmidi write: %w", err)
	}
	return nil
}

// Stop closes the stream and terminates PortMidi.
func (m *ClientMid) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		err = multierr.Append(m.closeStream(), portmidi.Terminate())
		m.logger.Info("MIDI output stopped")
	})
	return err
}

func (m *ClientMid) closeStream() error {
	if m.stream == nil {
		return nil
	}
	err := m.stream.Close()
	m.stream = nil
	m.selected = contracts.NoDevice
	return err
}
