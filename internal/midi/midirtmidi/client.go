// Package midirtmidi sends MIDI through gomidi's rtmidi driver. It is the default backend on
// platforms without a native client.
package midirtmidi

import (
	"errors"
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
	"go.uber.org/multierr"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// ErrNoMIDIDevices is returned by ListDevices when the driver reports no output ports.
var ErrNoMIDIDevices = errors.New("no MIDI output ports found")

// ClientMid sends to one gomidi output port at a time.
type ClientMid struct {
	logger   contracts.Logger
	ports    func() []drivers.Out
	closeDrv func()

	mu       sync.Mutex
	out      drivers.Out
	selected int
	send     func(gomidi.Message) error
	stopOnce sync.Once
}

// NewMIDIClient creates a client over the registered gomidi driver.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.Output, error) {
	m := newClient(options, func() []drivers.Out { return gomidi.GetOutPorts() }, gomidi.CloseDriver)
	options.Logger.Info("MIDI output client created", options.Logger.Field().String("driver", "rtmidi"))
	return m, nil
}

func newClient(options *contracts.ClientOptions, ports func() []drivers.Out, closeDrv func()) *ClientMid {
	m := &ClientMid{
		logger:   options.Logger,
		ports:    ports,
		closeDrv: closeDrv,
		selected: contracts.NoDevice,
	}
	if name := options.OutputConfig.PortName; name != "" {
		for i, p := range ports() {
			if p.String() == name {
				if err := m.SelectDevice(i); err != nil {
					m.logger.Warn("Could not select configured port", m.logger.Field().String("port", name))
				}
				return m
			}
		}
		m.logger.Warn("Configured port not found", m.logger.Field().String("port", name))
	}
	return m
}

// ListDevices lists the output ports the driver currently sees.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	ports := m.ports()
	if len(ports) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}
	devices := make([]contracts.DeviceInfo, len(ports))
	for i, p := range ports {
		devices[i] = contracts.DeviceInfo{Name: p.String(), EntityName: p.String()}
	}
	return devices, nil
}

// SelectDevice opens the port at deviceID, closing the previously selected one.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ports := m.ports()
	if deviceID < 0 || deviceID >= len(ports) {
		m.logger.Error(contracts.ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return contracts.ErrInvalidMIDIDevice
	}

	if err := m.closePort(); err != nil {
		m.logger.Warn("Failed to close previous port", m.logger.Field().Error("error", err))
	}

	port := ports[deviceID]
	send, err := gomidi.SendTo(port)
	if err != nil {
		return fmt.Errorf("open output %q: %w", port.String(), err)
	}
	m.out = port
	m.send = send
	m.selected = deviceID
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", port.String()))
	return nil
}

// Selected returns the open port index.
func (m *ClientMid) Selected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Send writes msg to the open port. With no port open, or with the open port gone from the
// driver's list, it does nothing.
func (m *ClientMid) Send(msg contracts.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.send == nil {
		return nil
	}
	if err := m.send(gomidi.Message(msg)); err != nil {
		if !m.present(m.out.String()) {
			m.logger.Warn("Selected MIDI port disappeared; deselecting",
				m.logger.Field().String("deviceName", m.out.String()))
			_ = m.closePort()
			return nil
		}
		m.logger.Error("Failed to send MIDI message",
			m.logger.Field().Bytes("msg", msg),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("send to %q: %w", m.out.String(), err)
	}
	return nil
}

// Stop closes the open port and the driver.
func (m *ClientMid) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		err = m.closePort()
		if m.closeDrv != nil {
			m.closeDrv()
		}
		m.logger.Info("MIDI output stopped")
	})
	return err
}

func (m *ClientMid) present(name string) bool {
	for _, p := range m.ports() {
		if p.String() == name {
			return true
		}
	}
	return false
}

func (m *ClientMid) closePort() error {
	if m.out == nil {
		return nil
	}
	var err error
	if m.out.IsOpen() {
		err = multierr.Append(err, m.out.Close())
	}
	m.out = nil
	m.send = nil
	m.selected = contracts.NoDevice
	return err
}
