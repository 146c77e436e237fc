// SPDX-License-Identifier: MIT

package interp

import (
	"fmt"

	"github.com/katalvlaran/isoreduce/ingest"
)

// BlockLayout is the on-peak shape of one block.
type BlockLayout struct {
	// Number is the block number as read from the data.
	Number int
	// Rows are indices into the source rows of the block's on-peak rows, in order.
	Rows []int
	// CycleStarts are positions within Rows where a new cycle begins; the first is 0.
	CycleStarts []int
}

// Cycles returns the number of on-peak cycles.
func (b BlockLayout) Cycles() int { return len(b.CycleStarts) }

// Layout lists blocks in first-seen order.
type Layout struct {
	Blocks []BlockLayout
}

// CyclesPerBlock returns Cycles() for every block.
func (l Layout) CyclesPerBlock() []int {
	out := make([]int, len(l.Blocks))
	for i, b := range l.Blocks {
		out[i] = b.Cycles()
	}

	return out
}

// BlockNumbers returns block numbers in layout order.
func (l Layout) BlockNumbers() []int {
	out := make([]int, len(l.Blocks))
	for i, b := range l.Blocks {
		out[i] = b.Number
	}

	return out
}

// DiscoverLayout groups on-peak rows (cycle > 0) by block in first-seen order
// and records the position of every cycle change within each block.
// Baseline rows are ignored.
//
// Errors: ErrNoOnPeakRows.
func DiscoverLayout(rows []ingest.Row) (Layout, error) {
	index := make(map[int]int)
	lastCycle := make(map[int]int)
	var l Layout
	for i, r := range rows {
		if r.Baseline() {
			continue
		}
		bi, ok := index[r.Block]
		if !ok {
			bi = len(l.Blocks)
			index[r.Block] = bi
			l.Blocks = append(l.Blocks, BlockLayout{Number: r.Block})
		}
		b := &l.Blocks[bi]
		if !ok || lastCycle[r.Block] != r.Cycle {
			b.CycleStarts = append(b.CycleStarts, len(b.Rows))
			lastCycle[r.Block] = r.Cycle
		}
		b.Rows = append(b.Rows, i)
	}
	if len(l.Blocks) == 0 {
		return Layout{}, fmt.Errorf("interp: %d rows: %w", len(rows), ErrNoOnPeakRows)
	}

	return l, nil
}
