// SPDX-License-Identifier: MIT

package reduce

import (
	"github.com/katalvlaran/isoreduce/accumulate"
	"github.com/katalvlaran/isoreduce/matrix"
)

// Columns is the flat form of a Record.
type Columns struct {
	accumulate.Columns
	// IsotopeFlags is samples×IsotopeCount; entry (i, k) is 1 when sample i
	// reads species of mass rank k+1. Baseline rows are all zero.
	IsotopeFlags *matrix.Dense
	// DetectorFlags is samples×DetectorCount; entry (i, k) is 1 when sample i
	// comes from the detector of ordinal rank k+1.
	DetectorFlags *matrix.Dense
	// Derived holds the WithColumn additions by name.
	Derived map[string][]float64
}

// Columns flattens the record. Flag matrices are nil when there are no samples.
func (r *Record) Columns() (Columns, error) {
	out := Columns{
		Columns: r.Channel.Columns(),
		Derived: make(map[string][]float64, len(r.derived)),
	}
	for _, c := range r.derived {
		out.Derived[c.name] = append([]float64(nil), c.values...)
	}
	n := r.Channel.Len()
	if n == 0 {
		return out, nil
	}

	var err error
	if out.IsotopeFlags, err = flags(out.Isotopes, r.IsotopeCount); err != nil {
		return Columns{}, err
	}
	if out.DetectorFlags, err = flags(out.Detectors, r.DetectorCount); err != nil {
		return Columns{}, err
	}

	return out, nil
}

// flags one-hot encodes 1-based ranks into an n×width matrix; rank 0 is an empty row.
func flags(ranks []int, width int) (*matrix.Dense, error) {
	if width <= 0 {
		return nil, nil
	}
	m, err := matrix.NewZeros(len(ranks), width)
	if err != nil {
		return nil, err
	}
	for i, k := range ranks {
		if k < 1 || k > width {
			continue
		}
		if err = m.Set(i, k-1, 1); err != nil {
			return nil, err
		}
	}

	return m, nil
}
