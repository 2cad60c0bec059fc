package dispatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// smardBorders maps the market data platform's per-border columns to
// signed net-export names. Export directions get the _pos suffix,
// imports _neg.
var smardBorders = map[string]string{
	"Nettoexport[MWh]":             "overall_net_export",
	"Dänemark 1 (Export)[MWh]":     "net_export_DK1_pos",
	"Dänemark 1 (Import)[MWh]":     "net_export_DK1_neg",
	"Dänemark 2 (Export)[MWh]":     "net_export_DK2_pos",
	"Dänemark 2 (Import)[MWh]":     "net_export_DK2_neg",
	"Niederlande (Export)[MWh]":    "net_export_NL_pos",
	"Niederlande (Import)[MWh]":    "net_export_NL_neg",
	"Italien Nord (Export)[MWh]":   "net_export_IT_pos",
	"Italien Nord (Import)[MWh]":   "net_export_IT_neg",
	"Schweiz (Export)[MWh]":        "net_export_CH_pos",
	"Schweiz (Import)[MWh]":        "net_export_CH_neg",
	"Tschechien (Export)[MWh]":     "net_export_CZ_pos",
	"Tschechien (Import)[MWh]":     "net_export_CZ_neg",
	"Frankreich (Export)[MWh]":     "net_export_FR_pos",
	"Frankreich (Import)[MWh]":     "net_export_FR_neg",
	"Schweden 4 (Export)[MWh]":     "net_export_SE4_pos",
	"Schweden 4 (Import)[MWh]":     "net_export_SE4_neg",
	"Ungarn (Export)[MWh]":         "net_export_HU_pos",
	"Ungarn (Import)[MWh]":         "net_export_HU_neg",
	"Slowenien (Export)[MWh]":      "net_export_SL_pos",
	"Slowenien (Import)[MWh]":      "net_export_SL_neg",
	"Polen (Export)[MWh]":          "net_export_PL_pos",
	"Polen (Import)[MWh]":          "net_export_PL_neg",
	"Österreich (Export)[MWh]":     "net_export_AT_pos",
	"Österreich (Import)[MWh]":     "net_export_AT_neg",
	"Norwegen 2 (Export)[MWh]":     "net_export_NO2_pos",
	"Norwegen 2 (Import)[MWh]":     "net_export_NO2_neg",
	"Belgien (Export)[MWh]":        "net_export_BE_pos",
	"Belgien (Import)[MWh]":        "net_export_BE_neg",
}

// dateColumns are the header names of the date and time-of-day columns;
// the platform localizes them depending on the download year.
var dateColumns = [][2]string{
	{"Datum", "Uhrzeit"},
	{"Date", "Time of day"},
}

// ReshapeImportsExports reads the cross-border exchange publication and
// reshapes it to hourly net exports per border.
//
// The publication repeats the clock hour of the October DST switch as
// two separate rows; rows sharing a timestamp are typed "a" and "b" so
// the duplicate survives grouping, and the result gets a sequential
// hourly index starting at January 1 of the given year.
func ReshapeImportsExports(path string, year int) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open imports/exports: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateIdx, timeIdx := -1, -1
	for _, names := range dateColumns {
		for i, h := range header {
			if h == names[0] {
				dateIdx = i
			}
			if h == names[1] {
				timeIdx = i
			}
		}
		if dateIdx >= 0 && timeIdx >= 0 {
			break
		}
	}
	if dateIdx < 0 || timeIdx < 0 {
		return nil, fmt.Errorf("date/time columns not found in %s", path)
	}

	type colRef struct {
		idx  int
		name string
	}
	var cols []colRef
	for i, h := range header {
		if name, ok := smardBorders[h]; ok {
			cols = append(cols, colRef{idx: i, name: name})
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no border columns found in %s", path)
	}

	frame := &Frame{Columns: make([]string, len(cols))}
	for i, c := range cols {
		frame.Columns[i] = c.name
	}

	// Group key: timestamp plus the duplicate counter of the repeated
	// DST hour. Sub-hourly rows of the same clock hour are summed.
	type groupKey struct {
		stamp    string
		hourType byte
	}
	seen := make(map[string]bool)
	sums := make(map[groupKey][]float64)
	var order []groupKey

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		stamp := strings.TrimSpace(rec[dateIdx]) + " " + strings.TrimSpace(rec[timeIdx])
		hourType := byte('a')
		if seen[stamp] {
			hourType = 'b'
		}
		seen[stamp] = true

		k := groupKey{stamp: hourStamp(stamp), hourType: hourType}
		row, ok := sums[k]
		if !ok {
			row = make([]float64, len(cols))
			sums[k] = row
			order = append(order, k)
		}
		for i, c := range cols {
			if c.idx >= len(rec) {
				continue
			}
			raw := strings.ReplaceAll(strings.TrimSpace(rec[c.idx]), ",", ".")
			if raw == "" || raw == "-" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: bad value %q", c.name, rec[c.idx])
			}
			row[i] += v
		}
	}

	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, k := range order {
		frame.Times = append(frame.Times, start.Add(time.Duration(i)*time.Hour))
		frame.Rows = append(frame.Rows, sums[k])
	}
	return frame, nil
}

// hourStamp truncates a "date HH:MM" stamp to its clock hour so that
// sub-hourly rows group together.
func hourStamp(stamp string) string {
	if i := strings.LastIndex(stamp, ":"); i >= 0 {
		return stamp[:i]
	}
	return stamp
}
