package contracts

import (
	"encoding/hex"
	"errors"
)

// ErrInvalidMIDIDevice is returned when a device index does not address an available device.
var ErrInvalidMIDIDevice = errors.New("invalid MIDI device")

// NoDevice is the index reported by Output.Selected when no device is selected.
const NoDevice = -1

// Message is a single outbound MIDI message: a status byte followed by one or two data bytes.
type Message []byte

// String renders the message as space separated hex, e.g. "b0 07 64".
func (m Message) String() string {
	if len(m) == 0 {
		return ""
	}
	out := make([]byte, 0, len(m)*3)
	for i, b := range m {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hex.EncodeToString([]byte{b})...)
	}
	return string(out)
}

// Output is an outbound MIDI transport with an index-addressed device list.
//
// Send resolves the selected device at call time. With no device selected, or with the selected
// device gone, Send does nothing and returns nil.
type Output interface {
	Stop() error                        // Closes the open device and releases driver resources.
	ListDevices() ([]DeviceInfo, error) // Lists the available output devices.
	SelectDevice(deviceID int) error    // Selects (and opens) an output device by index.
	Selected() int                      // Index of the selected device, or NoDevice.
	Send(msg Message) error             // Transmits one message to the selected device.
}
