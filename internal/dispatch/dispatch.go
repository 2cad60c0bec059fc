// Package dispatch loads historical generation and cross-border
// exchange publications and reshapes them into the hourly carrier
// columns the model's dispatch results are validated against.
package dispatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Frame is an hourly table with one column per carrier or border.
type Frame struct {
	Columns []string
	Times   []time.Time
	Rows    [][]float64
}

// entsoeCarriers maps the transparency platform's production-type
// columns to the model's carrier names. Unmapped columns are dropped.
var entsoeCarriers = map[string]string{
	"Biomass  - Actual Aggregated [MW]":                         "biomass",
	"Nuclear  - Actual Aggregated [MW]":                         "uranium",
	"Fossil Brown coal/Lignite  - Actual Aggregated [MW]":       "lignite",
	"Fossil Hard coal  - Actual Aggregated [MW]":                "hardcoal",
	"Fossil Gas  - Actual Aggregated [MW]":                      "natgas",
	"Fossil Coal-derived gas  - Actual Aggregated [MW]":         "minegas",
	"Fossil Oil  - Actual Aggregated [MW]":                      "oil",
	"Fossil Oil shale  - Actual Aggregated [MW]":                "shale_oil",
	"Fossil Peat  - Actual Aggregated [MW]":                     "peat",
	"Geothermal  - Actual Aggregated [MW]":                      "geothermal",
	"Hydro Pumped Storage  - Actual Aggregated [MW]":            "storage_el_out",
	"Hydro Run-of-river and poundage  - Actual Aggregated [MW]": "ROR",
	"Hydro Water Reservoir  - Actual Aggregated [MW]":           "reservoir",
	"Other  - Actual Aggregated [MW]":                           "otherfossil",
	"Other renewable  - Actual Aggregated [MW]":                 "otherrenewables",
	"Solar  - Actual Aggregated [MW]":                           "solarPV",
	"Waste  - Actual Aggregated [MW]":                           "waste",
	"Wind Offshore  - Actual Aggregated [MW]":                   "windoffshore",
	"Wind Onshore  - Actual Aggregated [MW]":                    "windonshore",
}

// GenerationFileName returns the transparency platform export file name
// for the given year. Only 2017 through 2021 exports exist locally.
func GenerationFileName(year int) (string, error) {
	if year < 2017 || year > 2021 {
		return "", fmt.Errorf("year must be between 2017 and 2021, got %d", year)
	}
	return fmt.Sprintf("entsoe_generation_DE_%d0101-%d0101.csv", year, year+1), nil
}

// LoadENTSOEGeneration reads the German quarter-hourly generation export
// for a year and returns hourly means per carrier.
//
// The export duplicates the clock hour of the October DST switch and
// leaves the rows of the missing March hour empty; all-empty rows are
// dropped, after which the remaining rows are taken as a contiguous
// quarter-hourly sequence from January 1 on.
func LoadENTSOEGeneration(dir string, year int) (*Frame, error) {
	name, err := GenerationFileName(year)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("open generation export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// Keep only mapped carrier columns, in file order.
	type colRef struct {
		idx  int
		name string
	}
	var cols []colRef
	for i, h := range header {
		if carrier, ok := entsoeCarriers[h]; ok {
			cols = append(cols, colRef{idx: i, name: carrier})
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no known production-type columns in %s", name)
	}

	frame := &Frame{Columns: make([]string, len(cols))}
	for i, c := range cols {
		frame.Columns[i] = c.name
	}

	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	var sums []float64
	var counts []int
	quarter := 0
	flush := func() {
		if counts == nil {
			return
		}
		row := make([]float64, len(cols))
		for i := range cols {
			if counts[i] > 0 {
				row[i] = sums[i] / float64(counts[i])
			} else {
				row[i] = math.NaN()
			}
		}
		frame.Times = append(frame.Times,
			start.Add(time.Duration(len(frame.Rows))*time.Hour))
		frame.Rows = append(frame.Rows, row)
		sums, counts = nil, nil
	}

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read generation row: %w", err)
		}
		empty := true
		for _, c := range cols {
			if c.idx < len(rec) && strings.TrimSpace(rec[c.idx]) != "" {
				empty = false
				break
			}
		}
		// Quarter hours of the missing DST hour are published empty.
		if empty {
			continue
		}
		if sums == nil {
			sums = make([]float64, len(cols))
			counts = make([]int, len(cols))
		}
		for i, c := range cols {
			if c.idx >= len(rec) {
				continue
			}
			raw := strings.TrimSpace(rec[c.idx])
			if raw == "" || raw == "n/e" || raw == "N/A" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: bad value %q", c.name, raw)
			}
			sums[i] += v
			counts[i]++
		}
		quarter++
		if quarter%4 == 0 {
			flush()
		}
	}
	flush()
	return frame, nil
}
