// SPDX-License-Identifier: MIT

package reduce

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/isoreduce/accumulate"
	"github.com/katalvlaran/isoreduce/bspline"
	"github.com/katalvlaran/isoreduce/ingest"
	"github.com/katalvlaran/isoreduce/interp"
	"github.com/katalvlaran/isoreduce/matrix"
	"github.com/katalvlaran/isoreduce/method"
)

// Option configures Reduce.
type Option func(*options)

type options struct {
	log          logrus.FieldLogger
	runID        uuid.UUID
	splineDegree int
	concurrency  int
}

// noSpline disables the per-block spline basis.
const noSpline = -1

// WithLogger sets the logger (default logrus.StandardLogger()).
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithRunID fixes the run identifier instead of generating a random one.
func WithRunID(id uuid.UUID) Option {
	return func(o *options) { o.runID = id }
}

// WithSplineDegree also builds, for every block, a B-spline basis of the
// given degree over its on-peak timestamps with one column per knot.
func WithSplineDegree(degree int) Option {
	return func(o *options) { o.splineDegree = degree }
}

// WithConcurrency caps concurrent interpolation builds (<= 0: unlimited).
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// Record is the reduced data record.
//
// Sharing: Reduce never touches a Record after returning it, and WithColumn
// shares every exported slice and matrix with its receiver. Callers must not
// write through those fields; take a Clone first when a modified copy is needed.
type Record struct {
	RunID      uuid.UUID
	MethodName string
	Channel    accumulate.Channel
	Layout     interp.Layout
	Blocks     []interp.Block
	// Bases holds one spline basis per block when WithSplineDegree was used.
	Bases []*matrix.Dense

	FaradayCount   int
	IsotopeCount   int
	BlockCount     int
	CyclesPerBlock []int
	// DetectorCount is the number of configured detectors (detector flag width).
	DetectorCount int

	derived []column
}

type column struct {
	name   string
	values []float64
}

// Reduce builds the record for rows under method m.
// Implementation:
//   - Stage 1: validate m, discover the block/cycle layout.
//   - Stage 2: in one errgroup run Baseline(Faraday), OnPeak(Faraday),
//     OnPeak(IonCounter) and interp.Build.
//   - Stage 3: Concat the passes in that order and fill the counts.
//   - Stage 4: optional spline bases.
//
// Errors: ErrNilMethod, method.ErrInvalidMethod, interp.ErrNoOnPeakRows,
// *ingest.MalformedInputError, interpolation and spline errors, ctx errors.
func Reduce(ctx context.Context, rows []ingest.Row, m *method.Method, opts ...Option) (*Record, error) {
	o := options{log: logrus.StandardLogger(), splineDegree: noSpline}
	for _, set := range opts {
		set(&o)
	}
	if m == nil {
		return nil, ErrNilMethod
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if o.runID == uuid.Nil {
		o.runID = uuid.New()
	}
	log := o.log.WithFields(logrus.Fields{"component": "reduce", "run_id": o.runID.String()})

	layout, err := interp.DiscoverLayout(rows)
	if err != nil {
		return nil, err
	}
	blockNums := layout.BlockNumbers()

	var (
		parts  [3]accumulate.Channel
		blocks []interp.Block
	)
	accOpt := accumulate.WithLogger(log)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		parts[0], err = accumulate.Baseline(rows, m, method.Faraday, accOpt)
		return err
	})
	g.Go(func() (err error) {
		parts[1], err = accumulate.OnPeak(rows, blockNums, m, method.Faraday, accOpt)
		return err
	})
	g.Go(func() (err error) {
		parts[2], err = accumulate.OnPeak(rows, blockNums, m, method.IonCounter, accOpt)
		return err
	})
	g.Go(func() (err error) {
		blocks, err = interp.Build(gctx, rows, layout, interp.WithLogger(log), interp.WithConcurrency(o.concurrency))
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}

	rec := &Record{
		RunID:          o.runID,
		MethodName:     m.Name,
		Channel:        accumulate.Concat(parts[0], parts[1], parts[2]),
		Layout:         layout,
		Blocks:         blocks,
		FaradayCount:   m.CountRole(method.Faraday),
		IsotopeCount:   len(m.Species),
		BlockCount:     len(layout.Blocks),
		CyclesPerBlock: layout.CyclesPerBlock(),
		DetectorCount:  len(m.Detectors),
	}

	if o.splineDegree != noSpline {
		rec.Bases = make([]*matrix.Dense, len(blocks))
		for i, b := range blocks {
			times := make([]float64, len(b.Rows))
			for k, ri := range b.Rows {
				times[k] = rows[ri].Time
			}
			if rec.Bases[i], err = bspline.ForBlock(times, len(b.Knots), o.splineDegree); err != nil {
				return nil, fmt.Errorf("reduce: block %d: %w", b.Number, err)
			}
		}
	}

	log.WithFields(logrus.Fields{
		"samples":  rec.Channel.Len(),
		"blocks":   rec.BlockCount,
		"warnings": len(rec.Channel.Warnings),
	}).Info("reduction complete")

	return rec, nil
}

// WithColumn returns a copy of r with an extra derived column (for example
// an oxide-corrected intensity). r itself is not modified.
//
// Errors: ErrEmptyColumnName, ErrDuplicateColumn, ErrColumnLength.
func (r *Record) WithColumn(name string, values []float64) (*Record, error) {
	if name == "" {
		return nil, ErrEmptyColumnName
	}
	for _, c := range r.derived {
		if c.name == name {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicateColumn)
		}
	}
	if len(values) != r.Channel.Len() {
		return nil, fmt.Errorf("%q has %d values, record has %d samples: %w",
			name, len(values), r.Channel.Len(), ErrColumnLength)
	}
	out := *r
	out.derived = make([]column, len(r.derived), len(r.derived)+1)
	copy(out.derived, r.derived)
	out.derived = append(out.derived, column{name: name, values: append([]float64(nil), values...)})

	return &out, nil
}

// Clone returns a deep copy of r: no slice or matrix is shared with r.
func (r *Record) Clone() *Record {
	out := *r
	out.Channel = accumulate.Channel{
		Samples:  append([]accumulate.Sample(nil), r.Channel.Samples...),
		Warnings: append([]accumulate.UnmappedDetectorWarning(nil), r.Channel.Warnings...),
	}
	out.Layout.Blocks = make([]interp.BlockLayout, len(r.Layout.Blocks))
	for i, bl := range r.Layout.Blocks {
		bl.Rows = append([]int(nil), bl.Rows...)
		bl.CycleStarts = append([]int(nil), bl.CycleStarts...)
		out.Layout.Blocks[i] = bl
	}
	out.Blocks = make([]interp.Block, len(r.Blocks))
	for i, b := range r.Blocks {
		b.Rows = append([]int(nil), b.Rows...)
		b.Knots = append([]int(nil), b.Knots...)
		if b.Matrix != nil {
			b.Matrix = b.Matrix.Clone().(*matrix.Dense)
		}
		out.Blocks[i] = b
	}
	if r.Bases != nil {
		out.Bases = make([]*matrix.Dense, len(r.Bases))
		for i, B := range r.Bases {
			if B != nil {
				out.Bases[i] = B.Clone().(*matrix.Dense)
			}
		}
	}
	out.CyclesPerBlock = append([]int(nil), r.CyclesPerBlock...)
	out.derived = nil
	for _, c := range r.derived {
		out.derived = append(out.derived, column{name: c.name, values: append([]float64(nil), c.values...)})
	}

	return &out
}

// Derived returns a copy of the named derived column.
func (r *Record) Derived(name string) ([]float64, bool) {
	for _, c := range r.derived {
		if c.name == name {
			return append([]float64(nil), c.values...), true
		}
	}

	return nil, false
}

// DerivedNames lists derived columns in insertion order.
func (r *Record) DerivedNames() []string {
	out := make([]string, len(r.derived))
	for i, c := range r.derived {
		out[i] = c.name
	}

	return out
}
