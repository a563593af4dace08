package midi

import (
	"github.com/microkorg2editor/mk2ctl/internal/logger"
	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// DefaultClientName is registered with the host MIDI system when none is configured.
const DefaultClientName = "mk2ctl"

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// Returns the finalized options with the logger configured for level and destination.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.OutputConfig == nil {
		options.OutputConfig = &contracts.OutputConfig{}
	}
	if options.OutputConfig.ClientName == "" {
		options.OutputConfig.ClientName = DefaultClientName
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}
