// SPDX-License-Identifier: MIT

package reduce_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isoreduce/bspline"
	"github.com/katalvlaran/isoreduce/ingest"
	"github.com/katalvlaran/isoreduce/interp"
	"github.com/katalvlaran/isoreduce/method"
	"github.com/katalvlaran/isoreduce/reduce"
)

var fixedID = uuid.MustParse("6f1c2a4e-3d5b-4c8a-9e7f-0a1b2c3d4e5f")

func loadFixture(t *testing.T) []ingest.Row {
	t.Helper()
	f, err := os.Open("../ingest/testdata/burdick_small.txt")
	require.NoError(t, err)
	defer f.Close()
	rows, err := ingest.Parse(f)
	require.NoError(t, err)

	return rows
}

func reduceFixture(t *testing.T, opts ...reduce.Option) (*reduce.Record, *test.Hook) {
	t.Helper()
	l, hook := test.NewNullLogger()
	opts = append([]reduce.Option{reduce.WithLogger(l), reduce.WithRunID(fixedID)}, opts...)
	rec, err := reduce.Reduce(context.Background(), loadFixture(t), method.BurdickSynthetic(), opts...)
	require.NoError(t, err)

	return rec, hook
}

func TestReduce_Fixture(t *testing.T) {
	t.Parallel()
	rec, hook := reduceFixture(t)

	assert.Equal(t, fixedID, rec.RunID)
	assert.Equal(t, "BurdickBlSyntheticData", rec.MethodName)
	assert.Equal(t, 24, rec.Channel.Len())
	assert.Equal(t, 2, rec.FaradayCount)
	assert.Equal(t, 2, rec.IsotopeCount)
	assert.Equal(t, 2, rec.BlockCount)
	assert.Equal(t, 3, rec.DetectorCount)
	assert.Equal(t, []int{2, 2}, rec.CyclesPerBlock)
	assert.Nil(t, rec.Bases)

	// Pass order: baseline Faraday, on-peak Faraday, on-peak ion counter.
	cols := rec.Channel.Columns()
	assert.Equal(t, []int{1, 1, 1, 1, 2, 2, 2, 2}, cols.Signals[:8])
	assert.Equal(t, []int{3, 3, 4, 4, 3, 3, 4, 4}, cols.Signals[8:16])
	for _, s := range cols.Signals[16:] {
		assert.Equal(t, 5, s)
	}
	assert.Equal(t, []float64{44, 64, 36, 56}, cols.Values[8:12])
	assert.Equal(t, []float64{35, 55, 45, 65}, cols.Values[16:20])

	require.Len(t, rec.Blocks, 2)
	assert.Equal(t, []int{0, 2, 3}, rec.Blocks[0].Knots)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, fixedID.String(), entry.Data["run_id"])
	assert.Equal(t, 24, entry.Data["samples"])
}

func TestReduce_RandomRunID(t *testing.T) {
	t.Parallel()
	l, _ := test.NewNullLogger()
	a, err := reduce.Reduce(context.Background(), loadFixture(t), method.BurdickSynthetic(), reduce.WithLogger(l))
	require.NoError(t, err)
	b, err := reduce.Reduce(context.Background(), loadFixture(t), method.BurdickSynthetic(), reduce.WithLogger(l))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Channel, b.Channel, "reduction is deterministic apart from the run id")
}

func TestRecord_Columns(t *testing.T) {
	t.Parallel()
	rec, _ := reduceFixture(t)
	cols, err := rec.Columns()
	require.NoError(t, err)

	require.NotNil(t, cols.IsotopeFlags)
	assert.Equal(t, 24, cols.IsotopeFlags.Rows())
	assert.Equal(t, 2, cols.IsotopeFlags.Cols())
	assert.Equal(t, 3, cols.DetectorFlags.Cols())

	row, err := cols.IsotopeFlags.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, row, "baseline samples carry no isotope")
	row, err = cols.IsotopeFlags.Row(10)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, row)

	row, err = cols.DetectorFlags.Row(4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, row, "H1 is the third detector by ordinal")
	row, err = cols.DetectorFlags.Row(20)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, row)
	assert.Empty(t, cols.Derived)
}

func TestRecord_WithColumn(t *testing.T) {
	t.Parallel()
	rec, _ := reduceFixture(t)
	vals := make([]float64, rec.Channel.Len())
	for i := range vals {
		vals[i] = float64(i) * 0.5
	}

	next, err := rec.WithColumn("oxide_corrected", vals)
	require.NoError(t, err)
	assert.Empty(t, rec.DerivedNames(), "receiver is unchanged")
	_, ok := rec.Derived("oxide_corrected")
	assert.False(t, ok)

	got, ok := next.Derived("oxide_corrected")
	require.True(t, ok)
	assert.Equal(t, vals, got)
	vals[0] = 99
	got, _ = next.Derived("oxide_corrected")
	assert.InDelta(t, 0, got[0], 0, "values are copied in")

	third, err := next.WithColumn("ratio", make([]float64, rec.Channel.Len()))
	require.NoError(t, err)
	assert.Equal(t, []string{"oxide_corrected", "ratio"}, third.DerivedNames())
	assert.Equal(t, []string{"oxide_corrected"}, next.DerivedNames())

	cols, err := third.Columns()
	require.NoError(t, err)
	assert.Len(t, cols.Derived, 2)

	_, err = next.WithColumn("oxide_corrected", vals)
	assert.ErrorIs(t, err, reduce.ErrDuplicateColumn)
	_, err = rec.WithColumn("short", vals[:3])
	assert.ErrorIs(t, err, reduce.ErrColumnLength)
	_, err = rec.WithColumn("", vals)
	assert.ErrorIs(t, err, reduce.ErrEmptyColumnName)
}

func TestRecord_Clone(t *testing.T) {
	t.Parallel()
	rec, _ := reduceFixture(t, reduce.WithSplineDegree(1))
	rec, err := rec.WithColumn("ratio", make([]float64, rec.Channel.Len()))
	require.NoError(t, err)

	cp := rec.Clone()
	require.Equal(t, rec, cp)

	cp.Channel.Samples[0].Value = -1
	cp.Layout.Blocks[0].Rows[0] = -1
	cp.Blocks[0].Knots[0] = -1
	require.NoError(t, cp.Blocks[0].Matrix.Set(0, 0, 0.25))
	require.NoError(t, cp.Bases[0].Set(0, 0, 0.25))
	cp.CyclesPerBlock[0] = -1
	next, err := cp.WithColumn("other", make([]float64, cp.Channel.Len()))
	require.NoError(t, err)

	assert.InDelta(t, 14, rec.Channel.Samples[0].Value, 0)
	assert.Equal(t, 2, rec.Layout.Blocks[0].Rows[0])
	assert.Equal(t, []int{0, 2, 3}, rec.Blocks[0].Knots)
	v, err := rec.Blocks[0].Matrix.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, v, 0)
	v, err = rec.Bases[0].At(0, 0)
	require.NoError(t, err)
	assert.NotEqual(t, 0.25, v)
	assert.Equal(t, []int{2, 2}, rec.CyclesPerBlock)
	assert.Equal(t, []string{"ratio"}, rec.DerivedNames())
	assert.Equal(t, []string{"ratio", "other"}, next.DerivedNames())
}

func TestReduce_SplineBases(t *testing.T) {
	t.Parallel()
	rec, _ := reduceFixture(t, reduce.WithSplineDegree(1))
	require.Len(t, rec.Bases, 2)
	for _, B := range rec.Bases {
		assert.Equal(t, 4, B.Rows())
		assert.Equal(t, 3, B.Cols())
	}
	s := rec.Summary()
	assert.Equal(t, 3, s.Blocks[0].BasisColumns)

	l, _ := test.NewNullLogger()
	_, err := reduce.Reduce(context.Background(), loadFixture(t), method.BurdickSynthetic(),
		reduce.WithLogger(l), reduce.WithSplineDegree(3))
	assert.ErrorIs(t, err, bspline.ErrInvalidSegments)
}

func TestRecord_Summary(t *testing.T) {
	t.Parallel()
	rec, _ := reduceFixture(t, reduce.WithConcurrency(1))
	s := rec.Summary()
	assert.Equal(t, fixedID.String(), s.RunID)
	assert.Equal(t, 24, s.Samples)
	assert.Equal(t, []int{2, 2}, s.CyclesPerBlock)
	require.Len(t, s.Signals, 5)
	first := s.Signals[0]
	assert.Equal(t, 1, first.Signal)
	assert.Equal(t, 1, first.Detector)
	assert.True(t, first.Baseline)
	assert.Equal(t, 4, first.Samples)
	assert.InDelta(t, 49, first.Mean, 1e-12)
	assert.Equal(t, 5, s.Signals[4].Signal)
	assert.Equal(t, 8, s.Signals[4].Samples)
	require.Len(t, s.Blocks, 2)
	assert.Equal(t, reduce.BlockSummary{Number: 2, Rows: 4, Knots: []int{0, 2, 3}}, s.Blocks[1])
	assert.Nil(t, s.Warnings)
	assert.Nil(t, s.Derived)
}

func TestReduce_Errors(t *testing.T) {
	t.Parallel()
	l, _ := test.NewNullLogger()
	ctx := context.Background()
	rows := loadFixture(t)

	_, err := reduce.Reduce(ctx, rows, nil, reduce.WithLogger(l))
	assert.ErrorIs(t, err, reduce.ErrNilMethod)

	bad := method.BurdickSynthetic()
	bad.Species = nil
	_, err = reduce.Reduce(ctx, rows, bad, reduce.WithLogger(l))
	assert.ErrorIs(t, err, method.ErrInvalidMethod)

	_, err = reduce.Reduce(ctx, rows[:2], method.BurdickSynthetic(), reduce.WithLogger(l))
	assert.ErrorIs(t, err, interp.ErrNoOnPeakRows)

	short := append([]ingest.Row(nil), rows...)
	short[3].Readings = short[3].Readings[:2]
	_, err = reduce.Reduce(ctx, short, method.BurdickSynthetic(), reduce.WithLogger(l))
	assert.ErrorIs(t, err, ingest.ErrMalformedInput)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = reduce.Reduce(cctx, rows, method.BurdickSynthetic(), reduce.WithLogger(l))
	assert.ErrorIs(t, err, context.Canceled)
}
