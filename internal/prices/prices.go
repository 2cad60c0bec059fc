// Package prices reshapes historical power price publications into
// hourly series comparable with model outcomes and computes the error
// metrics of the comparison.
package prices

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pommes-public/pommesevaluation/internal/timeseries"
)

// dayLayouts covers the delivery-day formats of the price publications.
var dayLayouts = []string{"2006-01-02", "02.01.2006", "2006/01/02"}

func parseDay(s string) (time.Time, error) {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized delivery day %q", s)
}

// ReshapeHourlyMatrix reads a day-by-hour price matrix and returns a
// long hourly series for the given year.
//
// The exchange publishes one row per delivery day with 25 hour columns:
// hours 1..24 plus the duplicated hour 3 of the October DST switch. The
// file carries a title line above the header. Empty cells (the DST
// column on all other days) are dropped; the drop count is reported as a
// single summary warning. The resulting series gets a sequential hourly
// index because the raw time stamps cannot represent the DST duplicate.
func ReshapeHourlyMatrix(path string, year int) (timeseries.Series, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open prices: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	// Title line, then the header row.
	if _, err := r.Read(); err != nil {
		return nil, nil, fmt.Errorf("read title line: %w", err)
	}
	if _, err := r.Read(); err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	// Hour labels of the 25 value columns; 3.1 is the DST duplicate and
	// shares the clock hour of column 3.
	hourOfColumn := func(col int) int {
		switch {
		case col <= 3:
			return col
		case col == 4:
			return 3
		default:
			return col - 1
		}
	}

	type dayRow struct {
		day    time.Time
		values []float64 // NaN for empty cells
	}
	var days []dayRow
	dropped := 0

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read price row: %w", err)
		}
		if len(rec) < 2 {
			continue
		}
		day, err := parseDay(rec[0])
		if err != nil {
			return nil, nil, err
		}
		if day.Year() != year {
			continue
		}
		n := len(rec) - 1
		if n > 25 {
			n = 25
		}
		values := make([]float64, n)
		for i := 0; i < n; i++ {
			raw := strings.TrimSpace(rec[i+1])
			if raw == "" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("day %s hour column %d: bad price %q", rec[0], i+1, raw)
			}
			values[i] = v
		}
		days = append(days, dayRow{day: day, values: values})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].day.Before(days[j].day) })

	var out timeseries.Series
	for _, d := range days {
		for i, v := range d.values {
			if math.IsNaN(v) {
				dropped++
				continue
			}
			hour := hourOfColumn(i+1) - 1
			out = append(out, timeseries.Point{
				Time:  d.day.Add(time.Duration(hour) * time.Hour),
				Value: v,
			})
		}
	}
	out = SequentialHourlyIndex(out)

	var warnings []string
	if dropped > 0 {
		warnings = append(warnings,
			fmt.Sprintf("dropped %d empty price cells (DST column)", dropped))
	}
	return out, warnings, nil
}

// SequentialHourlyIndex reassigns strictly hourly time stamps starting
// from the first observation. Duplicate or missing clock hours around
// the DST switches would otherwise break alignment with model output.
func SequentialHourlyIndex(s timeseries.Series) timeseries.Series {
	if len(s) == 0 {
		return s
	}
	out := make(timeseries.Series, len(s))
	for i, p := range s {
		out[i] = timeseries.Point{
			Time:  s[0].Time.Add(time.Duration(i) * time.Hour),
			Value: p.Value,
		}
	}
	return out
}

// ReshapeSMARD reads the German market data platform's price export
// (CSV form: date, interval start, zone price columns) and returns the
// hourly series of the Germany/Luxembourg zone for the given year.
func ReshapeSMARD(path string, year int) (timeseries.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prices: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	priceCol := -1
	for i, name := range header {
		if strings.Contains(name, "Deutschland/Luxemburg") {
			priceCol = i
			break
		}
	}
	if priceCol < 0 {
		return nil, fmt.Errorf("price column for Deutschland/Luxemburg not found in %s", path)
	}

	var out timeseries.Series
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read price row: %w", err)
		}
		day, err := parseDay(rec[0])
		if err != nil {
			return nil, err
		}
		if day.Year() != year {
			continue
		}
		start, err := time.Parse("15:04", strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("bad interval start %q: %w", rec[1], err)
		}
		raw := strings.ReplaceAll(strings.TrimSpace(rec[priceCol]), ",", ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("day %s: bad price %q", rec[0], rec[priceCol])
		}
		out = append(out, timeseries.Point{
			Time:  day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute),
			Value: v,
		})
	}
	return SequentialHourlyIndex(out), nil
}

// Metrics are the error measures of a model-vs-historical comparison.
type Metrics struct {
	MAE   float64
	RMSE  float64
	NRMSE float64
}

// ErrorMetrics compares model prices against historical prices over the
// same hours. NRMSE normalizes the RMSE by the historical price range.
func ErrorMetrics(historical, model []float64) (Metrics, error) {
	if len(historical) != len(model) {
		return Metrics{}, fmt.Errorf(
			"series length mismatch: %d historical vs %d model hours",
			len(historical), len(model))
	}
	if len(historical) == 0 {
		return Metrics{}, errors.New("empty price series")
	}

	var absSum, sqSum float64
	minH, maxH := historical[0], historical[0]
	for i := range historical {
		diff := model[i] - historical[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		if historical[i] < minH {
			minH = historical[i]
		}
		if historical[i] > maxH {
			maxH = historical[i]
		}
	}
	n := float64(len(historical))
	rmse := math.Sqrt(sqSum / n)
	m := Metrics{MAE: absSum / n, RMSE: rmse}
	if maxH > minH {
		m.NRMSE = rmse / (maxH - minH)
	}
	return m, nil
}

// DurationCurve returns the values sorted in descending order, i.e. the
// price duration curve over its rank index.
func DurationCurve(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
