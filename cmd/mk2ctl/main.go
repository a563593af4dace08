// Command mk2ctl edits microKORG 2 parameters over MIDI from the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/microkorg2editor/mk2ctl/internal/config"
	"github.com/microkorg2editor/mk2ctl/internal/logger"
	"github.com/microkorg2editor/mk2ctl/sdk/catalog"
	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
	"github.com/microkorg2editor/mk2ctl/sdk/midi"
	"github.com/microkorg2editor/mk2ctl/sdk/session"
)

// assignments collects repeated -set name=value flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("want name=value, got %q", v)
	}
	*a = append(*a, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mk2ctl:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var sets assignments
	flag.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "parameter list path or URL")
	flag.StringVar(&cfg.Driver, "driver", cfg.Driver, "output driver: "+driverNames()+" (default: platform)")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "output port to select at startup")
	flag.IntVar(&cfg.Channel, "channel", cfg.Channel, "MIDI channel, 0-15")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	listDevices := flag.Bool("devices", false, "list output devices and exit")
	save := flag.Bool("save", false, "store the effective settings in the config file")
	flag.Var(&sets, "set", "send `name=value` and exit; repeatable, name may be a parameter id like nrpn/3")
	flag.Parse()

	if *save {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}

	level, ok := contracts.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if !knownDriver(contracts.Driver(cfg.Driver)) {
		return fmt.Errorf("unknown driver %q, want one of %s", cfg.Driver, driverNames())
	}
	if cfg.Channel < 0 || cfg.Channel > int(contracts.MaxChannel) {
		return fmt.Errorf("channel %d out of range 0-15", cfg.Channel)
	}

	interactive := !*listDevices && len(sets) == 0

	// The TUI owns the terminal; without a log file, logs go nowhere.
	log := logger.NewZapLogger()
	if interactive && cfg.LogFile == "" {
		log = logger.NewNopLogger()
	}

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithLogFile(cfg.LogFile),
		contracts.WithDriver(contracts.Driver(cfg.Driver)),
		contracts.WithOutputConfig(contracts.OutputConfig{PortName: cfg.Port}),
	)
	if err != nil {
		return err
	}

	if *listDevices {
		defer client.Stop()
		return printDevices(client)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cat, err := catalog.Load(ctx, cfg.Catalog)
	if err != nil {
		client.Stop()
		return err
	}
	log.Info("Catalog loaded",
		log.Field().String("location", cfg.Catalog),
		log.Field().Int("parameters", cat.Len()))

	sess := session.New(client, cat, log)
	defer sess.Close()
	if err := sess.SetChannel(contracts.ChannelID(cfg.Channel)); err != nil {
		return err
	}

	if !interactive {
		return applyAssignments(sess, cat, sets)
	}
	return runTUI(ctx, sess, cat)
}

func driverNames() string {
	names := make([]string, 0, len(midi.Drivers()))
	for _, d := range midi.Drivers() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

func knownDriver(d contracts.Driver) bool {
	return d == contracts.AutoDriver || slices.Contains(midi.Drivers(), d)
}

func printDevices(out contracts.Output) error {
	devices, err := out.ListDevices()
	if err != nil {
		return err
	}
	for i, d := range devices {
		mark := " "
		if i == out.Selected() {
			mark = "*"
		}
		fmt.Printf("%s %2d  %s\n", mark, i, d.Name)
	}
	return nil
}

// resolve finds a catalog entry by parameter id or by name.
func resolve(cat *catalog.Catalog, name string) (catalog.Entry, error) {
	if id, err := contracts.ParseParameterID(name); err == nil {
		if e, ok := cat.Entry(id); ok {
			return e, nil
		}
	}
	if e, ok := cat.Lookup(name); ok {
		return e, nil
	}
	return catalog.Entry{}, fmt.Errorf("no parameter named %q", name)
}

func applyAssignments(sess *session.Session, cat *catalog.Catalog, sets []string) error {
	if sess.Output().Selected() == contracts.NoDevice {
		fmt.Fprintln(os.Stderr, "mk2ctl: no output device selected (use -port); nothing will be sent")
	}
	for _, s := range sets {
		name, raw, _ := strings.Cut(s, "=")
		entry, err := resolve(cat, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s: bad value %q", name, raw)
		}
		if v := clamp(value, entry.Min, entry.Max); v != value {
			fmt.Fprintf(os.Stderr, "mk2ctl: %s: %d clamped to %d\n", entry.Name, value, v)
			value = v
		}
		if err := sess.Apply(contracts.ParameterChanged{ID: entry.ID, Value: value}); err != nil {
			return err
		}
	}
	return nil
}

func runTUI(ctx context.Context, sess *session.Session, cat *catalog.Catalog) error {
	events := make(chan contracts.ParameterChanged, 64)
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx, events) }()

	p := tea.NewProgram(newModel(sess, cat, events), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	close(events)
	if runErr := <-done; runErr != nil && err == nil && !errors.Is(runErr, context.Canceled) {
		err = runErr
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
