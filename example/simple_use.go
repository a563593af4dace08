package main

import (
	"fmt"

	"github.com/microkorg2editor/mk2ctl/internal/logger"
	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
	"github.com/microkorg2editor/mk2ctl/sdk/midi"
	"github.com/microkorg2editor/mk2ctl/sdk/session"
)

func main() {
	log := logger.NewZapLogger()

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return
	}

	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	if err = client.SelectDevice(0); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}

	// No catalog: only the direct senders are used.
	sess := session.New(client, nil, log)
	defer sess.Close()

	if err := sess.SendProgramChange(130); err != nil {
		log.Error("Program change failed", log.Field().Error("error", err))
	}
	if err := sess.SendCC(74, 100); err != nil {
		log.Error("Cutoff change failed", log.Field().Error("error", err))
	}
	if err := sess.SendNRPN(2, 10, -12); err != nil {
		log.Error("NRPN change failed", log.Field().Error("error", err))
	}
}
