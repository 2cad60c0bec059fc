package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// keyTrimSet covers the tuple decoration around the three key fields.
const keyTrimSet = "()',\""

// ParseVariableKey decodes a solver variable name of the form
// "('from_node', 'to_node', 'period')" into its three components.
func ParseVariableKey(raw string) (from, to, period string, err error) {
	fields := strings.Fields(raw)
	if len(fields) != 3 {
		return "", "", "", fmt.Errorf("variable key %q: want 3 fields, got %d", raw, len(fields))
	}
	from = strings.Trim(fields[0], keyTrimSet)
	to = strings.Trim(fields[1], keyTrimSet)
	period = strings.Trim(fields[2], keyTrimSet)
	if from == "" || period == "" {
		return "", "", "", fmt.Errorf("variable key %q: empty component after trimming", raw)
	}
	return from, to, period, nil
}

// LoadReport collects data-quality findings from reading a result dump.
type LoadReport struct {
	Rows     int
	Warnings []string
}

// ValueColumns returns the value column names of a result dump, in file
// order. The first column holds the variable key and is skipped.
func ValueColumns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("results file %s has no value columns", path)
	}
	cols := make([]string, len(header)-1)
	copy(cols, header[1:])
	return cols, nil
}

// LoadRows reads one value column of a raw result dump. Rows with
// missing or unparseable values are kept with a NaN value and reported
// as warnings rather than aborting the load.
func LoadRows(path, valueColumn string) ([]Row, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	valueIdx := 1
	if valueColumn != "" {
		valueIdx = -1
		for i, name := range header {
			if i > 0 && strings.TrimSpace(name) == valueColumn {
				valueIdx = i
				break
			}
		}
		if valueIdx < 0 {
			return nil, nil, fmt.Errorf("value column %q not found in %s", valueColumn, path)
		}
	}
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("results file %s has no value columns", path)
	}

	rep := &LoadReport{}
	var rows []Row
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", rep.Rows+1, err)
		}
		rep.Rows++

		from, to, period, err := ParseVariableKey(rec[0])
		if err != nil {
			rep.Warnings = append(rep.Warnings, err.Error())
			continue
		}
		value := math.NaN()
		if valueIdx < len(rec) {
			raw := strings.TrimSpace(rec[valueIdx])
			if raw == "" {
				rep.Warnings = append(rep.Warnings,
					fmt.Sprintf("row %d (%s): missing value", rep.Rows, from))
			} else if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
				value = v
			} else {
				rep.Warnings = append(rep.Warnings,
					fmt.Sprintf("row %d (%s): unparseable value %q", rep.Rows, from, raw))
			}
		} else {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("row %d (%s): missing value", rep.Rows, from))
		}
		rows = append(rows, Row{From: from, To: to, Period: period, Value: value})
	}
	return rows, rep, nil
}
