package midi

import (
	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// NewMIDIClient creates a MIDI output client with the specified options.
// It applies default options and initializes the driver-specific client.
//
// opts ...contracts.Option: option functions customizing logger, driver and port.
//
// Returns:
//   - contracts.Output: the output client. Sends are no-ops until a device is selected.
//   - error: an unknown driver name or a driver initialization failure.
func NewMIDIClient(opts ...contracts.Option) (contracts.Output, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(&options)
	if err != nil {
		return nil, err
	}

	return client, nil
}
