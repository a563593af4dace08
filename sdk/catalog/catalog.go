// Package catalog loads the synthesizer parameter list and gives every entry a stable
// identifier for the encoder and front ends.
package catalog

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
)

// DefaultLocation is the published microKORG 2 parameter list.
const DefaultLocation = "https://raw.githubusercontent.com/microkorg2editor/microkorg2editor.github.io/main/parameterList.json"

// ErrMalformedEntry is returned when a descriptor lacks a required numeric field or holds a
// value the encoder could not transmit.
var ErrMalformedEntry = errors.New("malformed catalog entry")

// document mirrors the JSON layout. Numeric fields are pointers so absence is detectable.
type document struct {
	ProgramParameters []struct {
		Name string `json:"name"`
		CC   *int   `json:"CC"`
	} `json:"programParameters"`
	NRPNParameters []struct {
		Name    string `json:"name"`
		MSB     *int   `json:"msb"`
		LSB     *int   `json:"lsb"`
		KnobMin *int   `json:"knobMin"`
		KnobMax *int   `json:"knobMax"`
	} `json:"nrpnParameters"`
	ProgramChange *struct {
		Name    string `json:"name"`
		KnobMin *int   `json:"knobMin"`
		KnobMax *int   `json:"knobMax"`
	} `json:"programChange"`
}

// Catalog is an immutable parameter list.
type Catalog struct {
	cc      []contracts.CCParameter
	nrpn    []contracts.NRPNParameter
	program *contracts.ProgramChangeParameter
}

// Entry is one row of the flattened catalog as a front end presents it.
type Entry struct {
	ID   contracts.ParameterID
	Name string
	Min  int
	Max  int
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	c := &Catalog{}
	for i, p := range doc.ProgramParameters {
		if p.CC == nil {
			return nil, malformed("programParameters", i, p.Name, "missing CC")
		}
		if !is7Bit(*p.CC) {
			return nil, malformed("programParameters", i, p.Name, "CC out of range")
		}
		c.cc = append(c.cc, contracts.CCParameter{Name: p.Name, CC: *p.CC})
	}

	for i, p := range doc.NRPNParameters {
		switch {
		case p.MSB == nil:
			return nil, malformed("nrpnParameters", i, p.Name, "missing msb")
		case p.LSB == nil:
			return nil, malformed("nrpnParameters", i, p.Name, "missing lsb")
		case p.KnobMin == nil:
			return nil, malformed("nrpnParameters", i, p.Name, "missing knobMin")
		case p.KnobMax == nil:
			return nil, malformed("nrpnParameters", i, p.Name, "missing knobMax")
		case !is7Bit(*p.MSB) || !is7Bit(*p.LSB):
			return nil, malformed("nrpnParameters", i, p.Name, "msb/lsb out of range")
		case *p.KnobMin > *p.KnobMax:
			return nil, malformed("nrpnParameters", i, p.Name, "knobMin above knobMax")
		}
		c.nrpn = append(c.nrpn, contracts.NRPNParameter{
			Name:    p.Name,
			MSB:     *p.MSB,
			LSB:     *p.LSB,
			KnobMin: *p.KnobMin,
			KnobMax: *p.KnobMax,
		})
	}

	if pc := doc.ProgramChange; pc != nil {
		switch {
		case pc.KnobMin == nil:
			return nil, malformed("programChange", 0, pc.Name, "missing knobMin")
		case pc.KnobMax == nil:
			return nil, malformed("programChange", 0, pc.Name, "missing knobMax")
		case *pc.KnobMin > *pc.KnobMax:
			return nil, malformed("programChange", 0, pc.Name, "knobMin above knobMax")
		}
		c.program = &contracts.ProgramChangeParameter{Name: pc.Name, KnobMin: *pc.KnobMin, KnobMax: *pc.KnobMax}
	}

	return c, nil
}

func malformed(array string, index int, name, reason string) error {
	return errors.Wrapf(ErrMalformedEntry, "%s[%d] %q: %s", array, index, name, reason)
}

func is7Bit(v int) bool {
	return v >= 0 && v <= 0x7F
}

// CC returns the CC parameter at index.
func (c *Catalog) CC(index int) (contracts.CCParameter, bool) {
	if index < 0 || index >= len(c.cc) {
		return contracts.CCParameter{}, false
	}
	return c.cc[index], true
}

// NRPN returns the NRPN parameter at index.
func (c *Catalog) NRPN(index int) (contracts.NRPNParameter, bool) {
	if index < 0 || index >= len(c.nrpn) {
		return contracts.NRPNParameter{}, false
	}
	return c.nrpn[index], true
}

// ProgramChange returns the program change selector, if the catalog has one.
func (c *Catalog) ProgramChange() (contracts.ProgramChangeParameter, bool) {
	if c.program == nil {
		return contracts.ProgramChangeParameter{}, false
	}
	return *c.program, true
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	n := len(c.cc) + len(c.nrpn)
	if c.program != nil {
		n++
	}
	return n
}

// Entries returns every parameter in display order: program change, CC, then NRPN.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, c.Len())
	if c.program != nil {
		out = append(out, Entry{
			ID:   contracts.ParameterID{Kind: contracts.KindProgramChange},
			Name: c.program.Name,
			Min:  c.program.KnobMin,
			Max:  c.program.KnobMax,
		})
	}
	for i, p := range c.cc {
		out = append(out, Entry{
			ID:   contracts.ParameterID{Kind: contracts.KindCC, Index: i},
			Name: p.Name,
			Min:  0,
			Max:  0x7F,
		})
	}
	for i, p := range c.nrpn {
		out = append(out, Entry{
			ID:   contracts.ParameterID{Kind: contracts.KindNRPN, Index: i},
			Name: p.Name,
			Min:  p.KnobMin,
			Max:  p.KnobMax,
		})
	}
	return out
}

// Filter returns the entries whose name contains query, ignoring case.
// An empty query returns every entry.
func (c *Catalog) Filter(query string) []Entry {
	all := c.Entries()
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return all
	}
	out := all[:0]
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Name), query) {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an entry by exact name, ignoring case. Program change is checked first,
// then CC, then NRPN, so the first match in display order wins.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	for _, e := range c.Entries() {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Entry returns the entry for id.
func (c *Catalog) Entry(id contracts.ParameterID) (Entry, bool) {
	for _, e := range c.Entries() {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
