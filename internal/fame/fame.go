// Package fame converts evaluation output into the time format and
// file layout of the FAME-based agent simulation that consumes it.
package fame

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pommes-public/pommesevaluation/internal/timeseries"
)

// Frame is a named-column table over string time stamps, the working
// shape of the conversion routines.
type Frame struct {
	Index   []string
	Columns []string
	Rows    [][]float64
}

// Column returns the position of a named column, or -1.
func (f *Frame) Column(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AnnualToFameTime rewrites an annual index (plain years) into FAME time
// stamps of the form YYYY-01-01_00:00:00 and rounds all values to the
// given precision.
func AnnualToFameTime(f *Frame, precision int) *Frame {
	out := &Frame{
		Index:   make([]string, len(f.Index)),
		Columns: append([]string(nil), f.Columns...),
		Rows:    make([][]float64, len(f.Rows)),
	}
	for i, year := range f.Index {
		out.Index[i] = year + "-01-01_00:00:00"
		out.Rows[i] = roundRow(f.Rows[i], precision)
	}
	return out
}

// TimeSeriesToFameTime rewrites a timestamp index ("YYYY-MM-DD HH:MM:SS")
// into FAME form by replacing the date/time separator with an underscore
// and rounds all values.
func TimeSeriesToFameTime(f *Frame, precision int) *Frame {
	out := &Frame{
		Index:   make([]string, len(f.Index)),
		Columns: append([]string(nil), f.Columns...),
		Rows:    make([][]float64, len(f.Rows)),
	}
	for i, stamp := range f.Index {
		out.Index[i] = strings.ReplaceAll(stamp, " ", "_")
		out.Rows[i] = roundRow(f.Rows[i], precision)
	}
	return out
}

func roundRow(row []float64, precision int) []float64 {
	factor := math.Pow10(precision)
	out := make([]float64, len(row))
	for i, v := range row {
		if math.IsNaN(v) {
			out[i] = v
			continue
		}
		out[i] = math.Round(v*factor) / factor
	}
	return out
}

// SaveForFame writes one semicolon-separated file per column, without a
// header, named <prefix>_<column>.csv in dir. The consuming simulation
// reads exactly this shape.
func SaveForFame(f *Frame, dir, prefix string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir output dir: %w", err)
	}
	for c, col := range f.Columns {
		var b strings.Builder
		for i, stamp := range f.Index {
			b.WriteString(stamp)
			b.WriteByte(';')
			b.WriteString(strconv.FormatFloat(f.Rows[i][c], 'f', -1, 64))
			b.WriteByte('\n')
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, col))
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// NetOperation extracts the net flow of a component from a frame whose
// columns mix inflow and outflow directions: the sum of all columns
// matching the outflow substring minus the sum of those matching the
// inflow substring, restricted to columns containing filter.
func NetOperation(f *Frame, filter, outflow, inflow string) []float64 {
	var outCols, inCols []int
	for i, c := range f.Columns {
		if !strings.Contains(c, filter) {
			continue
		}
		switch {
		case strings.Contains(c, outflow):
			outCols = append(outCols, i)
		case strings.Contains(c, inflow):
			inCols = append(inCols, i)
		}
	}
	net := make([]float64, len(f.Rows))
	for r, row := range f.Rows {
		for _, i := range outCols {
			net[r] += row[i]
		}
		for _, i := range inCols {
			net[r] -= row[i]
		}
	}
	return net
}

// ResampleToHourly expands a coarser series to hourly resolution: each
// value is divided by the step multiplier and repeated for every hour of
// its step. The series is extended past its last observation to the
// start of endYear+1 and leap days are cut.
func ResampleToHourly(s timeseries.Series, multiplier int, endYear int) timeseries.Series {
	if len(s) == 0 || multiplier <= 0 {
		return nil
	}
	boundary := time.Date(endYear+1, 1, 1, 0, 0, 0, 0, time.UTC)
	var out timeseries.Series
	for i, p := range s {
		next := boundary
		if i+1 < len(s) {
			next = s[i+1].Time
		}
		v := p.Value / float64(multiplier)
		for t := p.Time; t.Before(next); t = t.Add(time.Hour) {
			out = append(out, timeseries.Point{Time: t, Value: v})
		}
	}
	return timeseries.CutLeapDays(out)
}
