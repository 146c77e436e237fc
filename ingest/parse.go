// SPDX-License-Identifier: MIT

package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	markerStart = "#START"
	markerEnd   = "#END"
)

const (
	colTag = iota
	colBlock
	colCycle
	colIntegration
	colTime
	colMass
	// FirstReadingColumn is the field index of the first detector reading.
	FirstReadingColumn
)

// Row is one integration as read from the file. Immutable once parsed.
type Row struct {
	// Line is the 1-based source line.
	Line        int
	SequenceTag string
	Block       int
	// Cycle is 0 for baseline rows.
	Cycle       int
	Integration int
	Time        float64
	Mass        float64
	Readings    []float64
}

// Baseline reports whether the row belongs to the baseline (cycle 0).
func (r Row) Baseline() bool { return r.Cycle == 0 }

// File is a parsed export.
type File struct {
	// Header maps the first field of each header line to the remaining fields
	// joined by ",". Later duplicates win.
	Header map[string]string
	// Columns are the column names following the #START marker.
	Columns []string
	Rows    []Row
}

// DetectorColumns returns the names of the reading columns.
func (f *File) DetectorColumns() []string {
	if len(f.Columns) <= FirstReadingColumn {
		return nil
	}

	return append([]string(nil), f.Columns[FirstReadingColumn:]...)
}

type phase int

const (
	phaseHeader phase = iota
	phaseColumns
	phaseData
	phaseDone
)

// Read parses a whole export.
//
// Errors:
//   - *MalformedInputError (wrapping ErrMalformedInput) for a missing #START,
//     a missing column-name line, a row whose field count differs from the
//     column-name line, short rows, unparsable or non-finite numbers.
//   - the reader's own error for I/O failures.
func Read(r io.Reader) (*File, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	f := &File{Header: make(map[string]string)}
	state := phaseHeader
	lastLine := 0
	for state != phaseDone {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, Malformed(pe.Line, -1, "%v", pe.Err)
			}

			return nil, err
		}
		line, _ := cr.FieldPos(0)
		lastLine = line
		if blank(rec) {
			continue
		}
		first := strings.TrimSpace(rec[0])

		switch state {
		case phaseHeader:
			if strings.HasPrefix(first, markerStart) {
				state = phaseColumns

				continue
			}
			f.Header[first] = strings.TrimSpace(strings.Join(rec[1:], ","))
		case phaseColumns:
			f.Columns = trimAll(rec)
			state = phaseData
		case phaseData:
			if strings.HasPrefix(first, markerEnd) {
				state = phaseDone

				continue
			}
			if len(rec) != len(f.Columns) {
				return nil, Malformed(line, -1, "%d fields, column-name line has %d", len(rec), len(f.Columns))
			}
			row, err := parseRow(line, rec)
			if err != nil {
				return nil, err
			}
			f.Rows = append(f.Rows, row)
		}
	}

	switch state {
	case phaseHeader:
		return nil, Malformed(lastLine, -1, "missing %s marker", markerStart)
	case phaseColumns:
		return nil, Malformed(lastLine, -1, "missing column-name line after %s", markerStart)
	}

	return f, nil
}

// Parse is Read returning only the data rows.
func Parse(r io.Reader) ([]Row, error) {
	f, err := Read(r)
	if err != nil {
		return nil, err
	}

	return f.Rows, nil
}

func parseRow(line int, rec []string) (Row, error) {
	if len(rec) <= FirstReadingColumn {
		return Row{}, Malformed(line, -1, "%d fields, need at least %d", len(rec), FirstReadingColumn+1)
	}
	row := Row{Line: line, SequenceTag: strings.TrimSpace(rec[colTag])}
	if row.SequenceTag == "" {
		return Row{}, Malformed(line, colTag, "empty sequence tag")
	}

	ints := [...]struct {
		col int
		dst *int
	}{
		{colBlock, &row.Block},
		{colCycle, &row.Cycle},
		{colIntegration, &row.Integration},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(rec[f.col]))
		if err != nil {
			return Row{}, Malformed(line, f.col, "%q is not an integer", rec[f.col])
		}
		*f.dst = v
	}
	if row.Cycle < 0 {
		return Row{}, Malformed(line, colCycle, "negative cycle %d", row.Cycle)
	}

	var err error
	if row.Time, err = parseFloat(line, colTime, rec[colTime]); err != nil {
		return Row{}, err
	}
	if row.Mass, err = parseFloat(line, colMass, rec[colMass]); err != nil {
		return Row{}, err
	}
	row.Readings = make([]float64, len(rec)-FirstReadingColumn)
	for i := range row.Readings {
		c := FirstReadingColumn + i
		if row.Readings[i], err = parseFloat(line, c, rec[c]); err != nil {
			return Row{}, err
		}
	}

	return row, nil
}

func parseFloat(line, col int, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, Malformed(line, col, "%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, Malformed(line, col, "%q is not finite", s)
	}

	return v, nil
}

func blank(rec []string) bool {
	for _, s := range rec {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}

	return true
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, s := range rec {
		out[i] = strings.TrimSpace(s)
	}

	return out
}
