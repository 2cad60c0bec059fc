package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pommes-public/pommesevaluation/internal/config"
)

// Table is a loaded input data set: an index column plus named value
// columns, kept as raw strings because most consumers only reshape.
type Table struct {
	Columns []string
	Index   []string
	Rows    [][]string
}

// Column returns the position of a named column, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

const timeLayout = "2006-01-02 15:04:05"

// LoadTable reads one input data set by its logical name. Rows are
// filtered to the configured countries when the set has a country
// column. NaN cells in time series sets are reported as warnings, not
// errors; the solver tolerates them and so does the evaluation.
func LoadTable(sc *config.Scenario, catalog map[string]string, name string) (*Table, []string, error) {
	file, ok := catalog[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown input data set %q", name)
	}
	path := filepath.Join(sc.PathInputs, file+".csv")

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	if len(header) < 1 {
		return nil, nil, fmt.Errorf("input %s has no columns", name)
	}

	t := &Table{Columns: header[1:]}
	countryCol := t.Column("country")
	allowed := make(map[string]bool, len(sc.Countries))
	for _, c := range sc.Countries {
		allowed[c] = true
	}

	var warnings []string
	line := 1
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read %s line %d: %w", name, line+1, err)
		}
		line++
		values := rec[1:]
		if countryCol >= 0 && len(sc.Countries) > 0 && !allowed[values[countryCol]] {
			continue
		}
		if strings.Contains(file, "_ts") {
			for i, v := range values {
				if strings.TrimSpace(v) == "" {
					warnings = append(warnings, fmt.Sprintf(
						"time series input %s contains NaN at %s, column %s",
						name, rec[0], t.Columns[i]))
				}
			}
		}
		t.Index = append(t.Index, rec[0])
		t.Rows = append(t.Rows, values)
	}
	return t, warnings, nil
}

// DemandResponseClusters reads the cluster names from the eligibility
// file so that cluster-specific input files need not be hard-coded.
func DemandResponseClusters(sc *config.Scenario) ([]string, error) {
	path := filepath.Join(sc.PathInputs, "demand_response_clusters_eligibility.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open demand response eligibility: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read eligibility header: %w", err)
	}
	var clusters []string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read eligibility rows: %w", err)
		}
		clusters = append(clusters, rec[0])
	}
	return clusters, nil
}

// LoadSeriesSlice reads the window of an hourly time series set that the
// run configuration covers, including the overlap steps past the end
// time. Reading the slice instead of the full horizon keeps the memory
// footprint of multi-decade hourly files down.
func LoadSeriesSlice(sc *config.Scenario, catalog map[string]string, name string) (*Table, error) {
	file, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown input data set %q", name)
	}
	start, err := time.Parse(timeLayout, sc.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}
	end, err := time.Parse(timeLayout, sc.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse end_time: %w", err)
	}
	step := time.Hour
	if sc.Freq != "" {
		if n, ok := strings.CutSuffix(sc.Freq, "H"); ok && n != "" {
			var hours int
			if _, err := fmt.Sscanf(n, "%d", &hours); err == nil && hours > 0 {
				step = time.Duration(hours) * time.Hour
			}
		}
	}
	end = end.Add(time.Duration(sc.OverlapInTimeSteps) * step)

	path := filepath.Join(sc.PathInputs, file+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}

	t := &Table{Columns: header[1:]}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		ts, err := time.Parse(timeLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("input %s: bad timestamp %q: %w", name, rec[0], err)
		}
		if ts.Before(start) {
			continue
		}
		if ts.After(end) {
			break
		}
		t.Index = append(t.Index, rec[0])
		t.Rows = append(t.Rows, rec[1:])
	}
	return t, nil
}
