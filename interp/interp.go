// SPDX-License-Identifier: MIT

package interp

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/isoreduce/ingest"
	"github.com/katalvlaran/isoreduce/matrix"
)

// Block is the interpolation result for one block.
type Block struct {
	// Number is the block number from the data.
	Number int
	// Rows are the source-row indices of the block's on-peak rows.
	Rows []int
	// Knots are row positions (relative to Rows) of each cycle start plus the last row.
	Knots []int
	// Matrix is len(Rows)×len(Knots); row t holds the knot weights of timestamp t.
	Matrix *matrix.Dense
}

// BuildBlock builds the interpolation matrix for one block.
// MAIN DESCRIPTION:
//   - times are the block's on-peak timestamps in row order; cycleStarts are
//     the positions where each cycle begins.
//
// Implementation:
//   - Stage 1: knots = cycleStarts ++ [n−1].
//   - Stage 2: for cycle c, rows knots[c] ≤ t < knots[c+1] get (1−f, f) on
//     columns (c, c+1) with f = (time[t]−time[k_c])/(time[k_{c+1}]−time[k_c]);
//     a zero span puts 1 on column c.
//   - Stage 3: row n−1 is reset to a unit row on the final knot.
//
// Errors:
//   - ErrInvalidCycleStarts, ErrNonMonotonicTime.
//
// Complexity:
//   - Time O(n·C) to allocate, O(n) to fill. Space O(n·C).
func BuildBlock(times []float64, cycleStarts []int) (Block, error) {
	n := len(times)
	if err := validate(times, cycleStarts); err != nil {
		return Block{}, err
	}
	knots := make([]int, 0, len(cycleStarts)+1)
	knots = append(knots, cycleStarts...)
	knots = append(knots, n-1)
	nk := len(knots)

	w := make([]float64, n*nk)
	var (
		c, t, lo, hi int
		span, frac   float64
	)
	for c = 0; c < nk-1; c++ {
		lo, hi = knots[c], knots[c+1]
		span = times[hi] - times[lo]
		for t = lo; t < hi; t++ {
			if span == 0 {
				w[t*nk+c] = 1

				continue
			}
			frac = (times[t] - times[lo]) / span
			w[t*nk+c] = 1 - frac
			w[t*nk+c+1] = frac
		}
	}
	last := (n - 1) * nk
	for c = 0; c < nk; c++ {
		w[last+c] = 0
	}
	w[last+nk-1] = 1

	M, err := matrix.NewDenseFrom(n, nk, w)
	if err != nil {
		return Block{}, fmt.Errorf("interp: %w", err)
	}

	return Block{Knots: knots, Matrix: M}, nil
}

func validate(times []float64, cycleStarts []int) error {
	n := len(times)
	if len(cycleStarts) == 0 || cycleStarts[0] != 0 {
		return fmt.Errorf("interp: starts %v: %w", cycleStarts, ErrInvalidCycleStarts)
	}
	for i, s := range cycleStarts {
		if s >= n || (i > 0 && s <= cycleStarts[i-1]) {
			return fmt.Errorf("interp: starts %v with %d rows: %w", cycleStarts, n, ErrInvalidCycleStarts)
		}
	}
	for i, v := range times {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("interp: time[%d]=%g: %w", i, v, ErrNonMonotonicTime)
		}
		if i > 0 && v < times[i-1] {
			return fmt.Errorf("interp: time[%d]=%g < time[%d]=%g: %w", i, v, i-1, times[i-1], ErrNonMonotonicTime)
		}
	}

	return nil
}

// Option configures Build.
type Option func(*options)

type options struct {
	log   logrus.FieldLogger
	limit int
}

// WithLogger sets the logger (default logrus.StandardLogger()).
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithConcurrency caps the number of blocks built at once (<= 0: unlimited).
func WithConcurrency(n int) Option {
	return func(o *options) { o.limit = n }
}

// Build runs BuildBlock for every block of layout concurrently and returns the
// blocks in layout order. The first failure cancels the rest.
func Build(ctx context.Context, rows []ingest.Row, layout Layout, opts ...Option) ([]Block, error) {
	o := options{log: logrus.StandardLogger()}
	for _, set := range opts {
		set(&o)
	}
	log := o.log.WithField("component", "interp")

	out := make([]Block, len(layout.Blocks))
	g, gctx := errgroup.WithContext(ctx)
	if o.limit > 0 {
		g.SetLimit(o.limit)
	}
	for i := range layout.Blocks {
		i, bl := i, layout.Blocks[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			times := make([]float64, len(bl.Rows))
			for k, ri := range bl.Rows {
				if ri < 0 || ri >= len(rows) {
					return fmt.Errorf("interp: block %d: row index %d out of %d", bl.Number, ri, len(rows))
				}
				times[k] = rows[ri].Time
			}
			b, err := BuildBlock(times, bl.CycleStarts)
			if err != nil {
				return fmt.Errorf("block %d: %w", bl.Number, err)
			}
			b.Number = bl.Number
			b.Rows = append([]int(nil), bl.Rows...)
			out[i] = b
			log.WithFields(logrus.Fields{
				"block": bl.Number,
				"rows":  len(bl.Rows),
				"knots": len(b.Knots),
			}).Debug("interpolation matrix built")

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
