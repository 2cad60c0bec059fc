// Package export writes aggregated result tables to disk: wide pivot
// CSVs for the downstream notebooks and a SQLite store that keeps runs
// comparable across scenario variants.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pommes-public/pommesevaluation/internal/labels"
	"github.com/pommes-public/pommesevaluation/internal/results"
)

// WritePivotCSV writes aggregated rows as a category-by-period wide
// table. Row and column order is deterministic: categories in first-seen
// order of the input (which the aggregation already sorts), periods
// sorted lexically. Display names follow the configured language.
func WritePivotCSV(path string, rows []results.AggregatedRow, language string) error {
	periodSet := make(map[string]bool)
	var categories []string
	values := make(map[string]map[string]float64)
	for _, r := range rows {
		label := r.Label()
		if _, ok := values[label]; !ok {
			categories = append(categories, label)
			values[label] = make(map[string]float64)
		}
		values[label][r.Period] = r.Value
		periodSet[r.Period] = true
	}
	periods := make([]string, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pivot: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{""}, periods...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, cat := range categories {
		rec := make([]string, 0, len(periods)+1)
		rec = append(rec, labels.Rename(cat, language))
		for _, p := range periods {
			if v, ok := values[cat][p]; ok {
				rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				rec = append(rec, "")
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", cat, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush pivot: %w", err)
	}
	return nil
}
