// SPDX-License-Identifier: MIT

package accumulate

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/isoreduce/ingest"
	"github.com/katalvlaran/isoreduce/method"
)

// Option configures a pass.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger sets the logger for unmapped-detector warnings
// (default logrus.StandardLogger()).
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

func gather(opts []Option) options {
	o := options{log: logrus.StandardLogger()}
	for _, set := range opts {
		set(&o)
	}

	return o
}

// reading returns the detector's value in r or a malformed-input error.
func reading(r ingest.Row, d method.Detector) (float64, error) {
	if d.Ordinal < 0 || d.Ordinal >= len(r.Readings) {
		return 0, ingest.Malformed(r.Line, ingest.FirstReadingColumn+d.Ordinal,
			"detector %s ordinal %d outside %d readings", d.Name, d.Ordinal, len(r.Readings))
	}

	return r.Readings[d.Ordinal], nil
}

func warn(log logrus.FieldLogger, w UnmappedDetectorWarning) {
	f := logrus.Fields{
		"component": "accumulate",
		"detector":  w.Detector,
		"tag":       w.Tag,
	}
	if w.Tag == "" {
		log.WithFields(f).Warn("detector has no sequence cells")

		return
	}
	if w.Species != "" {
		f["species"] = w.Species
		f["block"] = w.Block
	}
	log.WithFields(f).Warn("detector mapping matched no rows")
}

// signals numbers detectors 1, 2, ... in the order they first produce a sample.
type signals map[string]int

func (s signals) of(detector string) int {
	if n, ok := s[detector]; ok {
		return n
	}
	s[detector] = len(s) + 1

	return s[detector]
}

// Baseline collects the baseline readings of every detector with the given
// role. Detectors are visited in ascending ordinal order; for each, rows whose
// sequence tag equals the method's baseline tag (case-insensitive) are taken
// in source order. Samples carry isotope 0, block 0 and Baseline=true.
// Signal numbers detectors with at least one baseline row from 1 upwards.
//
// Errors: *ingest.MalformedInputError.
func Baseline(rows []ingest.Row, m *method.Method, role method.Role, opts ...Option) (Channel, error) {
	o := gather(opts)
	tag := m.Baseline()
	dets := m.DetectorsByRole(role)

	sig := make(signals, len(dets))
	var ch Channel
	for _, d := range dets {
		rank := m.DetectorRank(d.Name)
		matched := 0
		for i, r := range rows {
			if !strings.EqualFold(r.SequenceTag, tag) {
				continue
			}
			v, err := reading(r, d)
			if err != nil {
				return Channel{}, err
			}
			ch.Samples = append(ch.Samples, Sample{
				Value:      v,
				Time:       r.Time,
				TimeIndex:  i,
				Detector:   rank,
				Baseline:   true,
				IonCounter: role == method.IonCounter,
				Signal:     sig.of(d.Name),
			})
			matched++
		}
		if matched == 0 {
			w := UnmappedDetectorWarning{Detector: d.Name, Tag: tag}
			warn(o.log, w)
			ch.Warnings = append(ch.Warnings, w)
		}
	}

	return ch, nil
}

// OnPeak collects on-peak readings for detectors of the given role.
//
// Nesting order:
//   - blocks in the given order;
//   - species by ascending mass (Isotope = rank);
//   - detectors of role by ascending ordinal;
//   - the detector's sequence cells targeting that species;
//   - rows whose tag matches the cell (case-insensitive) and whose block matches.
//
// Signal numbers detectors from 1 in the order they first produce a sample.
// A detector of role without any sequence cell yields one warning per call.
//
// Errors: *ingest.MalformedInputError.
func OnPeak(rows []ingest.Row, blocks []int, m *method.Method, role method.Role, opts ...Option) (Channel, error) {
	o := gather(opts)
	species := m.SpeciesByMass()
	dets := m.DetectorsByRole(role)
	ranks := make([]int, len(dets))
	for k, d := range dets {
		ranks[k] = m.DetectorRank(d.Name)
	}

	sig := make(signals, len(dets))
	var ch Channel
	for _, d := range dets {
		if !m.HasCells(d.Name) {
			w := UnmappedDetectorWarning{Detector: d.Name}
			warn(o.log, w)
			ch.Warnings = append(ch.Warnings, w)
		}
	}
	for _, blk := range blocks {
		for si, sp := range species {
			for k, d := range dets {
				for _, cell := range m.CellsFor(d.Name, sp.Name) {
					matched := 0
					for i, r := range rows {
						if r.Block != blk || !strings.EqualFold(r.SequenceTag, cell.Tag) {
							continue
						}
						v, err := reading(r, d)
						if err != nil {
							return Channel{}, err
						}
						ch.Samples = append(ch.Samples, Sample{
							Value:      v,
							Time:       r.Time,
							TimeIndex:  i,
							Block:      blk,
							Isotope:    si + 1,
							Detector:   ranks[k],
							IonCounter: role == method.IonCounter,
							Signal:     sig.of(d.Name),
						})
						matched++
					}
					if matched == 0 {
						w := UnmappedDetectorWarning{Detector: d.Name, Tag: cell.Tag, Species: sp.Name, Block: blk}
						warn(o.log, w)
						ch.Warnings = append(ch.Warnings, w)
					}
				}
			}
		}
	}

	return ch, nil
}
