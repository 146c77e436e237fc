// SPDX-License-Identifier: MIT

package method

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultBaselineTag is the sequence tag of baseline rows when a method does not name one.
const DefaultBaselineTag = "Bl1"

// Species is one measured isotope.
type Species struct {
	Name string  `yaml:"name"`
	Mass float64 `yaml:"mass"`
}

// Detector is one collector. Ordinal is its column index in a row's readings.
type Detector struct {
	Name    string `yaml:"name"`
	Ordinal int    `yaml:"ordinal"`
	Role    Role   `yaml:"role"`
}

// SequenceCell says that under sequence Tag, Detector reads Species.
type SequenceCell struct {
	Detector string `yaml:"detector"`
	Tag      string `yaml:"tag"`
	Species  string `yaml:"species"`
}

// Method is the full analysis configuration.
type Method struct {
	Name        string         `yaml:"name"`
	BaselineTag string         `yaml:"baseline_tag,omitempty"`
	Species     []Species      `yaml:"species"`
	Detectors   []Detector     `yaml:"detectors"`
	Cells       []SequenceCell `yaml:"sequence"`
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidMethod, fmt.Sprintf(format, args...))
}

// Validate checks the method is internally consistent.
//
// Rules:
//   - at least one species and one detector;
//   - species names unique, masses finite and > 0;
//   - detector names unique, ordinals unique and >= 0, roles known;
//   - every cell names a known detector and species and a non-empty tag;
//   - a (detector, tag) pair maps to at most one species.
func (m *Method) Validate() error {
	if len(m.Species) == 0 {
		return invalidf("no species")
	}
	if len(m.Detectors) == 0 {
		return invalidf("no detectors")
	}

	species := make(map[string]struct{}, len(m.Species))
	for _, s := range m.Species {
		if s.Name == "" {
			return invalidf("species with empty name")
		}
		if _, dup := species[s.Name]; dup {
			return invalidf("duplicate species %q", s.Name)
		}
		if math.IsNaN(s.Mass) || math.IsInf(s.Mass, 0) || s.Mass <= 0 {
			return invalidf("species %q: mass %g", s.Name, s.Mass)
		}
		species[s.Name] = struct{}{}
	}

	detectors := make(map[string]struct{}, len(m.Detectors))
	ordinals := make(map[int]string, len(m.Detectors))
	for _, d := range m.Detectors {
		if d.Name == "" {
			return invalidf("detector with empty name")
		}
		if _, dup := detectors[d.Name]; dup {
			return invalidf("duplicate detector %q", d.Name)
		}
		if d.Ordinal < 0 {
			return invalidf("detector %q: ordinal %d", d.Name, d.Ordinal)
		}
		if other, dup := ordinals[d.Ordinal]; dup {
			return invalidf("detectors %q and %q share ordinal %d", other, d.Name, d.Ordinal)
		}
		if d.Role != Faraday && d.Role != IonCounter {
			return invalidf("detector %q: %s", d.Name, d.Role)
		}
		detectors[d.Name] = struct{}{}
		ordinals[d.Ordinal] = d.Name
	}

	type key struct{ det, tag string }
	seen := make(map[key]string, len(m.Cells))
	for i, c := range m.Cells {
		if _, ok := detectors[c.Detector]; !ok {
			return invalidf("cell %d: unknown detector %q", i, c.Detector)
		}
		if _, ok := species[c.Species]; !ok {
			return invalidf("cell %d: unknown species %q", i, c.Species)
		}
		if strings.TrimSpace(c.Tag) == "" {
			return invalidf("cell %d: empty tag", i)
		}
		k := key{c.Detector, strings.ToLower(c.Tag)}
		if prev, dup := seen[k]; dup {
			return invalidf("detector %q tag %q maps to both %q and %q", c.Detector, c.Tag, prev, c.Species)
		}
		seen[k] = c.Species
	}

	return nil
}

// Baseline returns the baseline sequence tag, DefaultBaselineTag when unset.
func (m *Method) Baseline() string {
	if m.BaselineTag == "" {
		return DefaultBaselineTag
	}

	return m.BaselineTag
}

// SpeciesByMass returns the species sorted by ascending mass (stable).
func (m *Method) SpeciesByMass() []Species {
	out := append([]Species(nil), m.Species...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mass < out[j].Mass })

	return out
}

// SpeciesRank returns the 1-based mass rank of the named species, 0 if unknown.
func (m *Method) SpeciesRank(name string) int {
	for i, s := range m.SpeciesByMass() {
		if s.Name == name {
			return i + 1
		}
	}

	return 0
}

// DetectorsByOrdinal returns all detectors in ascending ordinal order.
func (m *Method) DetectorsByOrdinal() []Detector {
	out := append([]Detector(nil), m.Detectors...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })

	return out
}

// DetectorsByRole returns the detectors of one role in ascending ordinal order.
func (m *Method) DetectorsByRole(r Role) []Detector {
	var out []Detector
	for _, d := range m.DetectorsByOrdinal() {
		if d.Role == r {
			out = append(out, d)
		}
	}

	return out
}

// DetectorRank returns the 1-based ordinal rank of the named detector among
// all detectors, 0 if unknown.
func (m *Method) DetectorRank(name string) int {
	for i, d := range m.DetectorsByOrdinal() {
		if d.Name == name {
			return i + 1
		}
	}

	return 0
}

// CellsFor returns the cells where detector reads species, in table order.
func (m *Method) CellsFor(detector, species string) []SequenceCell {
	var out []SequenceCell
	for _, c := range m.Cells {
		if c.Detector == detector && c.Species == species {
			out = append(out, c)
		}
	}

	return out
}

// HasCells reports whether any sequence cell reads from detector.
func (m *Method) HasCells(detector string) bool {
	for _, c := range m.Cells {
		if c.Detector == detector {
			return true
		}
	}

	return false
}

// CountRole returns the number of detectors with role r.
func (m *Method) CountRole(r Role) int {
	n := 0
	for _, d := range m.Detectors {
		if d.Role == r {
			n++
		}
	}

	return n
}
