package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

const sample = `{
  "programParameters": [
    {"name": "Cutoff", "CC": 74},
    {"name": "Resonance", "CC": 71},
    {"name": "Osc 1 Level", "CC": 23}
  ],
  "nrpnParameters": [
    {"name": "Osc 1 Semitone", "msb": 2, "lsb": 10, "knobMin": -24, "knobMax": 24}
  ],
  "programChange": {"name": "Program", "knobMin": 0, "knobMax": 255}
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want: 5", c.Len())
	}
	if p, ok := c.CC(1); !ok || p.CC != 71 || p.Name != "Resonance" {
		t.Errorf("CC(1) = %+v, %v", p, ok)
	}
	if _, ok := c.CC(3); ok {
		t.Error("CC(3) found, want missing")
	}
	if p, ok := c.NRPN(0); !ok || p.MSB != 2 || p.LSB != 10 || p.KnobMin != -24 || p.KnobMax != 24 {
		t.Errorf("NRPN(0) = %+v, %v", p, ok)
	}
	if p, ok := c.ProgramChange(); !ok || p.KnobMax != 255 {
		t.Errorf("ProgramChange() = %+v, %v", p, ok)
	}

	entries := c.Entries()
	wantIDs := []string{"pc/0", "cc/0", "cc/1", "cc/2", "nrpn/0"}
	if len(entries) != len(wantIDs) {
		t.Fatalf("Entries() has %d rows, want: %d", len(entries), len(wantIDs))
	}
	for i, e := range entries {
		if e.ID.String() != wantIDs[i] {
			t.Errorf("Entries()[%d].ID = %s, want: %s", i, e.ID, wantIDs[i])
		}
	}
	if entries[1].Min != 0 || entries[1].Max != 127 {
		t.Errorf("cc row range = %d..%d, want: 0..127", entries[1].Min, entries[1].Max)
	}
}

func TestParseWithoutProgramChange(t *testing.T) {
	c, err := Parse([]byte(`{"programParameters":[{"name":"Cutoff","CC":74}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.ProgramChange(); ok {
		t.Error("ProgramChange() found, want missing")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want: 1", c.Len())
	}
}

func TestParseMalformed(t *testing.T) {
	for _, c := range []struct {
		name string
		doc  string
	}{
		{"cc missing", `{"programParameters":[{"name":"Cutoff"}]}`},
		{"cc range", `{"programParameters":[{"name":"Cutoff","CC":128}]}`},
		{"nrpn missing lsb", `{"nrpnParameters":[{"name":"x","msb":1,"knobMin":0,"knobMax":1}]}`},
		{"nrpn missing knobMax", `{"nrpnParameters":[{"name":"x","msb":1,"lsb":2,"knobMin":0}]}`},
		{"nrpn msb range", `{"nrpnParameters":[{"name":"x","msb":200,"lsb":2,"knobMin":0,"knobMax":1}]}`},
		{"nrpn inverted", `{"nrpnParameters":[{"name":"x","msb":1,"lsb":2,"knobMin":5,"knobMax":1}]}`},
		{"pc missing", `{"programChange":{"name":"Program","knobMin":0}}`},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.doc))
			if !errors.Is(err, ErrMalformedEntry) {
				t.Errorf("err = %v, want ErrMalformedEntry", err)
			}
		})
	}
}

func TestParseBadJSON(t *testing.T) {
	_, err := Parse([]byte(`{"programParameters":`))
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrMalformedEntry) {
		t.Errorf("syntax error reported as ErrMalformedEntry: %v", err)
	}
}

func TestFilter(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		query string
		want  []string
	}{
		{"", []string{"Program", "Cutoff", "Resonance", "Osc 1 Level", "Osc 1 Semitone"}},
		{"osc", []string{"Osc 1 Level", "Osc 1 Semitone"}},
		{"  CUT ", []string{"Cutoff"}},
		{"zzz", nil},
	} {
		got := c.Filter(tc.query)
		var names []string
		for _, e := range got {
			names = append(names, e.Name)
		}
		if strings.Join(names, ",") != strings.Join(tc.want, ",") {
			t.Errorf("Filter(%q) = %v, want: %v", tc.query, names, tc.want)
		}
	}
}

func TestLookup(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	e, ok := c.Lookup("osc 1 semitone")
	if !ok || e.ID != (contracts.ParameterID{Kind: contracts.KindNRPN}) {
		t.Errorf("Lookup = %+v, %v", e, ok)
	}
	if _, ok := c.Lookup("Osc"); ok {
		t.Error("Lookup matched a prefix")
	}
	if e, ok := c.Entry(contracts.ParameterID{Kind: contracts.KindCC, Index: 2}); !ok || e.Name != "Osc 1 Level" {
		t.Errorf("Entry(cc/2) = %+v, %v", e, ok)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parameterList.json")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want: 5", c.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadFile on missing path succeeded")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parameterList.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sample))
	}))
	defer srv.Close()

	c, err := Load(context.Background(), srv.URL+"/parameterList.json")
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want: 5", c.Len())
	}

	if _, err := Fetch(context.Background(), srv.Client(), srv.URL+"/nope.json"); err == nil {
		t.Error("Fetch of a 404 succeeded")
	}
}
