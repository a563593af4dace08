//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"go.uber.org/multierr"
	"golang.org/x/sys/windows"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// Type definitions for MIDI handles
type HMIDIOUT windows.Handle

// CALLBACK_NULL opens the device without completion notifications.
const CALLBACK_NULL = 0x00000000

// midiOutCaps mirrors MIDIOUTCAPSW.
type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// ClientMid manages MIDI output on Windows
type ClientMid struct {
	logger   contracts.Logger
	handle   HMIDIOUT
	selected int
	mu       sync.Mutex
}

// Load the winmm.dll library and required functions
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutReset      = winmm.NewProc("midiOutReset")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

var errNoDevices = errors.New("no MIDI output devices found")

// NewMIDIClient creates a MIDI output client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.Output, error) {
	options.Logger.Info("MIDI output client created for Windows")

	m := &ClientMid{
		logger:   options.Logger,
		selected: contracts.NoDevice,
	}
	if name := options.OutputConfig.PortName; name != "" {
		devices, err := m.ListDevices()
		if err == nil {
			for i, d := range devices {
				if d.Name == name {
					if err := m.SelectDevice(i); err != nil {
						m.logger.Warn("Could not select configured port", m.logger.Field().String("port", name))
					}
					break
				}
			}
		}
	}
	return m, nil
}

// ListDevices lists the available MIDI output devices
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn("No MIDI output devices found")
		return nil, errNoDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn(fmt.Sprintf("Failed to get information for MIDI output device %d", i))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice closes any open device and opens the device at deviceID.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r0, _, _ := procMidiOutGetNumDevs.Call()
	if deviceID < 0 || deviceID >= int(uint32(r0)) {
		m.logger.Error(contracts.ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return contracts.ErrInvalidMIDIDevice
	}

	if m.handle != 0 {
		if err := m.closeDevice(); err != nil {
			return fmt.Errorf("failed to close previous MIDI device: %w", err)
		}
	}

	r1, _, err := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		0,
		0,
		uintptr(CALLBACK_NULL),
	)
	if r1 != 0 {
		m.logger.Error(fmt.Sprintf("Failed to open MIDI output device %d: %v", deviceID, err))
		return fmt.Errorf("failed to open MIDI output device %d: %v", deviceID, err)
	}

	m.selected = deviceID
	m.logger.Info(fmt.Sprintf("MIDI output device %d connected", deviceID))
	return nil
}

// Selected returns the open device index.
func (m *ClientMid) Selected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Send packs msg into a short message: status | data1<<8 | data2<<16.
func (m *ClientMid) Send(msg contracts.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == 0 || len(msg) == 0 {
		return nil
	}

	var packed uint32
	for i, b := range msg {
		if i > 2 {
			break
		}
		packed |= uint32(b) << (8 * uint(i))
	}

	r1, _, err := procMidiOutShortMsg.Call(uintptr(m.handle), uintptr(packed))
	if deviceGone(r1) {
		m.logger.Warn("Selected MIDI output device disappeared; deselecting",
			m.logger.Field().Int("deviceID", m.selected))
		_ = m.closeDevice()
		m.handle = 0
		m.selected = contracts.NoDevice
		return nil
	}
	if r1 != 0 {
		m.logger.Error(fmt.Sprintf("Failed to send MIDI message %s: %v", msg, err))
		return fmt.Errorf("failed to send MIDI message: %v", err)
	}
	return nil
}

// WinMM result codes reported once a device has been unplugged.
const (
	mmsyserrNoDriver = 6
	midierrNoDevice  = 68
)

func deviceGone(code uintptr) bool {
	return code == mmsyserrNoDriver || code == midierrNoDevice
}

// Stop closes the open device
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == 0 {
		m.logger.Warn("No MIDI output device is open")
		return nil
	}

	if err := m.closeDevice(); err != nil {
		return fmt.Errorf("failed to stop MIDI output: %w", err)
	}
	m.logger.Info("MIDI output device closed")
	return nil
}

// closeDevice resets and closes the handle; both failures are reported.
func (m *ClientMid) closeDevice() error {
	var errs error

	if r1, _, err := procMidiOutReset.Call(uintptr(m.handle)); r1 != 0 {
		errs = multierr.Append(errs, fmt.Errorf("midiOutReset: %v", err))
	}
	if r1, _, err := procMidiOutClose.Call(uintptr(m.handle)); r1 != 0 {
		errs = multierr.Append(errs, fmt.Errorf("midiOutClose: %v", err))
	}
	if errs != nil {
		m.logger.Error("Failed to close MIDI output device", m.logger.Field().Error("error", errs))
		return errs
	}

	m.handle = 0
	m.selected = contracts.NoDevice
	return nil
}
