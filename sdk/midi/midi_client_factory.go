package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/microkorg2editor/mk2ctl/internal/midi/mididarwin"
	"github.com/microkorg2editor/mk2ctl/internal/midi/midiportmidi"
	"github.com/microkorg2editor/mk2ctl/internal/midi/midirtmidi"
	"github.com/microkorg2editor/mk2ctl/internal/midi/midiwindows"
	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// ErrUnknownDriver is returned for a driver name with no initializer.
var ErrUnknownDriver = errors.New("unknown MIDI driver")

type initializer func(*contracts.ClientOptions) (contracts.Output, error)

// clientInitializers maps driver names to output client initializers.
var clientInitializers = map[contracts.Driver]initializer{
	contracts.CoreMIDIDriver: mididarwin.NewMIDIClient,
	contracts.WinMMDriver:    midiwindows.NewMIDIClient,
	contracts.RtMIDIDriver:   midirtmidi.NewMIDIClient,
	contracts.PortMIDIDriver: midiportmidi.NewMIDIClient,
}

// platformDrivers maps OS names to their native driver.
var platformDrivers = map[string]contracts.Driver{
	"darwin":  contracts.CoreMIDIDriver,
	"windows": contracts.WinMMDriver,
}

// Drivers returns the selectable driver names.
func Drivers() []contracts.Driver {
	return []contracts.Driver{contracts.CoreMIDIDriver, contracts.WinMMDriver, contracts.RtMIDIDriver, contracts.PortMIDIDriver}
}

// resolveDriver maps AutoDriver to the platform default.
func resolveDriver(d contracts.Driver, goos string) contracts.Driver {
	if d != contracts.AutoDriver {
		return d
	}
	if native, ok := platformDrivers[goos]; ok {
		return native
	}
	return contracts.RtMIDIDriver
}

// NewClient initializes the output client for opts.Driver, or the platform default.
func NewClient(opts *contracts.ClientOptions) (contracts.Output, error) {
	driver := resolveDriver(opts.Driver, runtime.GOOS)
	if newClient, exists := clientInitializers[driver]; exists {
		return newClient(opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
