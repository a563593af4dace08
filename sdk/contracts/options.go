package contracts

// Driver names an output backend.
type Driver string

const (
	// AutoDriver picks the platform default: coremidi on darwin, winmm on windows, rtmidi elsewhere.
	AutoDriver Driver = ""
	// CoreMIDIDriver uses Apple CoreMIDI.
	CoreMIDIDriver Driver = "coremidi"
	// WinMMDriver uses the Windows multimedia midiOut API.
	WinMMDriver Driver = "winmm"
	// RtMIDIDriver uses gomidi with the rtmidi driver.
	RtMIDIDriver Driver = "rtmidi"
	// PortMIDIDriver uses PortMidi. Requires building with the portmidi tag.
	PortMIDIDriver Driver = "portmidi"
)

// OutputConfig holds driver-facing settings for the output client.
type OutputConfig struct {
	ClientName string // Client name registered with the host MIDI system.
	PortName   string // Device selected at startup when a device with this name exists.
}

// ClientOptions defines the configuration options for the MIDI output client.
type ClientOptions struct {
	Logger       Logger        // Logger for logging events and errors.
	LogLevel     LogLevel      // Level of logging to use.
	LogFilePath  string        // File path for logging if file logging is enabled.
	Driver       Driver        // Output backend.
	OutputConfig *OutputConfig // Driver configuration.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile sends log output to the file at path.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithDriver selects the output backend.
func WithDriver(d Driver) Option {
	return func(opts *ClientOptions) {
		opts.Driver = d
	}
}

// WithOutputConfig sets the driver configuration for the MIDI client.
func WithOutputConfig(config OutputConfig) Option {
	return func(opts *ClientOptions) {
		opts.OutputConfig = &config
	}
}
