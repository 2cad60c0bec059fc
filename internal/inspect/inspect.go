// Package inspect computes sanity statistics over the semicolon-
// separated, headerless series files handed to the agent simulation, so
// that conversion mistakes surface before a simulation run.
package inspect

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Stats is a describe-style summary of one value column.
type Stats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// SeriesFile is one loaded series: FAME time stamps plus values.
type SeriesFile struct {
	Index  []string
	Values []float64
}

// LoadSeries reads a semicolon-separated series file without header.
func LoadSeries(path string) (*SeriesFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series: %w", err)
	}
	defer f.Close()

	s := &SeriesFile{}
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		stamp, raw, ok := strings.Cut(text, ";")
		if !ok {
			return nil, fmt.Errorf("line %d: no value separator in %q", line, text)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad value %q", line, raw)
		}
		s.Index = append(s.Index, stamp)
		s.Values = append(s.Values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read series: %w", err)
	}
	return s, nil
}

// Describe summarizes a value slice the way the reference notebooks do:
// count, mean, sample standard deviation, min, quartiles and max.
func Describe(values []float64) (Stats, error) {
	if len(values) == 0 {
		return Stats{}, fmt.Errorf("empty series")
	}
	st := Stats{Count: len(values), Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Mean = sum / float64(len(values))

	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - st.Mean
			sq += d * d
		}
		st.Std = math.Sqrt(sq / float64(len(values)-1))
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	st.Q25 = quantile(sorted, 0.25)
	st.Q50 = quantile(sorted, 0.50)
	st.Q75 = quantile(sorted, 0.75)
	return st, nil
}

// quantile interpolates linearly between order statistics, matching the
// default of the tooling the output is compared against.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// CheckSeries loads a series file and returns its summary statistics.
func CheckSeries(path string) (Stats, error) {
	s, err := LoadSeries(path)
	if err != nil {
		return Stats{}, err
	}
	return Describe(s.Values)
}

// CheckAnnualChunks splits a series by the year prefix of its FAME time
// stamps and summarizes each year separately. Years appear in stamp
// order.
func CheckAnnualChunks(path string) ([]string, map[string]Stats, error) {
	s, err := LoadSeries(path)
	if err != nil {
		return nil, nil, err
	}
	chunks := make(map[string][]float64)
	var years []string
	for i, stamp := range s.Index {
		if len(stamp) < 4 {
			return nil, nil, fmt.Errorf("stamp %q too short for a year prefix", stamp)
		}
		year := stamp[:4]
		if _, ok := chunks[year]; !ok {
			years = append(years, year)
		}
		chunks[year] = append(chunks[year], s.Values[i])
	}
	stats := make(map[string]Stats, len(chunks))
	for year, values := range chunks {
		st, err := Describe(values)
		if err != nil {
			return nil, nil, err
		}
		stats[year] = st
	}
	return years, stats, nil
}

// ListCSVFiles returns the csv files of a folder, minus exceptions,
// sorted by name.
func ListCSVFiles(dir string, exceptions ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	skip := make(map[string]bool, len(exceptions))
	for _, e := range exceptions {
		skip[e] = true
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".csv" || skip[name] {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}
