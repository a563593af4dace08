package logger

import (
	"time"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// NopLogger discards everything. Used by the TUI, where stderr belongs to the terminal UI,
// and by tests.
type NopLogger struct{}

// NewNopLogger returns a logger that drops all entries.
func NewNopLogger() contracts.Logger { return NopLogger{} }

func (NopLogger) Info(string, ...contracts.Field)                    {}
func (NopLogger) Error(string, ...contracts.Field)                   {}
func (NopLogger) Debug(string, ...contracts.Field)                   {}
func (NopLogger) Warn(string, ...contracts.Field)                    {}
func (NopLogger) Fatal(string, ...contracts.Field)                   {}
func (NopLogger) Field() contracts.Field                             { return nopField{} }
func (NopLogger) SetLevel(contracts.LogLevel)                        {}
func (NopLogger) SetDestination(contracts.LogDestination, ...string) {}

type nopField struct{}

func (nopField) Bool(string, bool) contracts.Field       { return nopField{} }
func (nopField) Int(string, int) contracts.Field         { return nopField{} }
func (nopField) Float64(string, float64) contracts.Field { return nopField{} }
func (nopField) String(string, string) contracts.Field   { return nopField{} }
func (nopField) Time(string, time.Time) contracts.Field  { return nopField{} }
func (nopField) Int64(string, int64) contracts.Field     { return nopField{} }
func (nopField) Error(string, error) contracts.Field     { return nopField{} }
func (nopField) Uint64(string, uint64) contracts.Field   { return nopField{} }
func (nopField) Uint8(string, uint8) contracts.Field     { return nopField{} }
func (nopField) Bytes(string, []byte) contracts.Field    { return nopField{} }
