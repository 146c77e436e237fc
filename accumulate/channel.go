// SPDX-License-Identifier: MIT

package accumulate

import "fmt"

// Sample is one accumulated reading.
type Sample struct {
	Value float64
	Time  float64
	// TimeIndex is the index of the source row.
	TimeIndex int
	// Block is the block number, 0 for baseline samples.
	Block int
	// Isotope is the 1-based mass rank of the species, 0 for baseline samples.
	Isotope int
	// Detector is the 1-based ordinal rank of the detector among all detectors.
	Detector   int
	Baseline   bool
	IonCounter bool
	// Signal identifies the (pass, detector) pair; see Concat.
	Signal int
}

// UnmappedDetectorWarning reports a configured pair with no matching rows,
// or, with an empty Tag, a detector no sequence cell reads from.
type UnmappedDetectorWarning struct {
	Detector string
	Tag      string
	// Species is empty for baseline passes.
	Species string
	// Block is 0 for baseline passes.
	Block int
}

func (w UnmappedDetectorWarning) String() string {
	if w.Tag == "" {
		return fmt.Sprintf("detector %s: no sequence cells", w.Detector)
	}
	if w.Species == "" {
		return fmt.Sprintf("detector %s: no rows tagged %s", w.Detector, w.Tag)
	}

	return fmt.Sprintf("detector %s: no rows tagged %s for %s in block %d", w.Detector, w.Tag, w.Species, w.Block)
}

// Channel is the ordered output of one or more passes.
type Channel struct {
	Samples  []Sample
	Warnings []UnmappedDetectorWarning
}

// Len returns the number of samples.
func (c Channel) Len() int { return len(c.Samples) }

// MaxSignal returns the highest signal index, 0 for an empty channel.
func (c Channel) MaxSignal() int {
	hi := 0
	for _, s := range c.Samples {
		hi = max(hi, s.Signal)
	}

	return hi
}

// Concat joins passes in order, offsetting each pass's signal indices by the
// highest index of the passes before it. Inputs are not modified.
func Concat(parts ...Channel) Channel {
	var (
		out    Channel
		offset int
		n      int
	)
	for _, p := range parts {
		n += len(p.Samples)
	}
	out.Samples = make([]Sample, 0, n)
	for _, p := range parts {
		for _, s := range p.Samples {
			s.Signal += offset
			out.Samples = append(out.Samples, s)
		}
		out.Warnings = append(out.Warnings, p.Warnings...)
		offset += p.MaxSignal()
	}

	return out
}

// Columns is the columnar form of a Channel; all slices have equal length.
type Columns struct {
	Values     []float64
	Times      []float64
	TimeIndex  []int
	Blocks     []int
	Isotopes   []int
	Detectors  []int
	Baseline   []bool
	IonCounter []bool
	Signals    []int
}

// Columns flattens the samples into parallel columns.
func (c Channel) Columns() Columns {
	n := len(c.Samples)
	cols := Columns{
		Values:     make([]float64, n),
		Times:      make([]float64, n),
		TimeIndex:  make([]int, n),
		Blocks:     make([]int, n),
		Isotopes:   make([]int, n),
		Detectors:  make([]int, n),
		Baseline:   make([]bool, n),
		IonCounter: make([]bool, n),
		Signals:    make([]int, n),
	}
	for i, s := range c.Samples {
		cols.Values[i] = s.Value
		cols.Times[i] = s.Time
		cols.TimeIndex[i] = s.TimeIndex
		cols.Blocks[i] = s.Block
		cols.Isotopes[i] = s.Isotope
		cols.Detectors[i] = s.Detector
		cols.Baseline[i] = s.Baseline
		cols.IonCounter[i] = s.IonCounter
		cols.Signals[i] = s.Signal
	}

	return cols
}
