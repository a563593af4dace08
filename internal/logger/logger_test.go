package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

func TestZapLoggerFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mk2ctl.log")

	l := NewZapLogger()
	l.SetDestination(contracts.FileLog, path)
	l.SetLevel(contracts.DebugLevel)

	l.Debug("sent burst",
		l.Field().Bytes("data", []byte{0xB0, 0x07, 0x64}),
		l.Field().Int("channel", 3),
		l.Field().Error("error", errors.New("boom")))
	l.SetDestination(contracts.ConsoleLog)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{`"msg":"sent burst"`, `"b0 07 64"`, `"channel":3`, `"error":"boom"`, `logger_test.go`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %s", out, want)
		}
	}
}

func TestZapLoggerLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mk2ctl.log")

	l := NewZapLogger()
	l.SetDestination(contracts.FileLog, path)
	l.SetLevel(contracts.WarnLevel)
	l.Info("hidden")
	l.Warn("shown")
	l.SetDestination(contracts.ConsoleLog)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Errorf("info entry written at warn level: %s", data)
	}
	if !strings.Contains(string(data), "shown") {
		t.Errorf("warn entry missing: %s", data)
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, c := range []struct {
		in   string
		want contracts.LogLevel
		ok   bool
	}{
		{"debug", contracts.DebugLevel, true},
		{"", contracts.InfoLevel, true},
		{"warning", contracts.WarnLevel, true},
		{"error", contracts.ErrorLevel, true},
		{"loud", contracts.InfoLevel, false},
	} {
		got, ok := contracts.ParseLogLevel(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseLogLevel(%q) = %v, %v, want: %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestZapLoggerSwapDuringWrites(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a.log"), filepath.Join(dir, "b.log")}

	l := NewZapLogger()
	l.SetDestination(contracts.FileLog, paths[0])

	const writers, perWriter = 4, 200
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				l.Info("tick", l.Field().Int("i", i))
			}
		}()
	}
	for i := 0; i < 50; i++ {
		l.SetDestination(contracts.FileLog, paths[i%2])
	}
	wg.Wait()
	l.SetDestination(contracts.ConsoleLog)

	total := 0
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		total += strings.Count(string(data), `"msg":"tick"`)
	}
	if total != writers*perWriter {
		t.Errorf("found %d entries across files, want %d", total, writers*perWriter)
	}
}
