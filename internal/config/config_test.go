package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/microkorg2editor/mk2ctl/sdk/catalog"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Catalog != catalog.DefaultLocation || cfg.LogLevel != "info" || cfg.Channel != 0 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := &Config{Catalog: "params.json", Driver: "rtmidi", Port: "microKORG2", Channel: 3, LogLevel: "debug"}
	if err := want.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Errorf("LoadFrom = %+v, want: %+v", got, want)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"port":"microKORG2","channel":2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "microKORG2" || cfg.Channel != 2 || cfg.Catalog != catalog.DefaultLocation {
		t.Errorf("LoadFrom = %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom accepted invalid JSON")
	}
}
