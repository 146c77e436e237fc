// SPDX-License-Identifier: MIT

package reduce

// BlockSummary describes one block's interpolation.
type BlockSummary struct {
	Number int   `yaml:"number"`
	Rows   int   `yaml:"rows"`
	Knots  []int `yaml:"knots,flow"`
	// BasisColumns is the spline basis width, 0 when no basis was built.
	BasisColumns int `yaml:"basis_columns,omitempty"`
}

// SignalSummary counts samples per signal index.
type SignalSummary struct {
	Signal   int     `yaml:"signal"`
	Detector int     `yaml:"detector"`
	Baseline bool    `yaml:"baseline"`
	Samples  int     `yaml:"samples"`
	Mean     float64 `yaml:"mean"`
}

// Summary is a serialisable overview of a Record.
type Summary struct {
	RunID          string          `yaml:"run_id"`
	Method         string          `yaml:"method"`
	Samples        int             `yaml:"samples"`
	FaradayCount   int             `yaml:"faraday_count"`
	IsotopeCount   int             `yaml:"isotope_count"`
	BlockCount     int             `yaml:"block_count"`
	CyclesPerBlock []int           `yaml:"cycles_per_block,flow"`
	Signals        []SignalSummary `yaml:"signals"`
	Blocks         []BlockSummary  `yaml:"blocks"`
	Derived        []string        `yaml:"derived,omitempty"`
	Warnings       []string        `yaml:"warnings,omitempty"`
}

// Summary reports counts, per-signal means and per-block shapes.
func (r *Record) Summary() Summary {
	s := Summary{
		RunID:          r.RunID.String(),
		Method:         r.MethodName,
		Samples:        r.Channel.Len(),
		FaradayCount:   r.FaradayCount,
		IsotopeCount:   r.IsotopeCount,
		BlockCount:     r.BlockCount,
		CyclesPerBlock: append([]int(nil), r.CyclesPerBlock...),
		Derived:        r.DerivedNames(),
	}
	if len(s.Derived) == 0 {
		s.Derived = nil
	}

	bySignal := make(map[int]int)
	for _, smp := range r.Channel.Samples {
		i, ok := bySignal[smp.Signal]
		if !ok {
			i = len(s.Signals)
			bySignal[smp.Signal] = i
			s.Signals = append(s.Signals, SignalSummary{
				Signal: smp.Signal, Detector: smp.Detector, Baseline: smp.Baseline,
			})
		}
		ss := &s.Signals[i]
		ss.Samples++
		ss.Mean += (smp.Value - ss.Mean) / float64(ss.Samples)
	}

	for i, b := range r.Blocks {
		bs := BlockSummary{Number: b.Number, Rows: len(b.Rows), Knots: append([]int(nil), b.Knots...)}
		if i < len(r.Bases) && r.Bases[i] != nil {
			bs.BasisColumns = r.Bases[i].Cols()
		}
		s.Blocks = append(s.Blocks, bs)
	}
	for _, w := range r.Channel.Warnings {
		s.Warnings = append(s.Warnings, w.String())
	}

	return s
}
