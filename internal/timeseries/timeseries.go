// Package timeseries provides the time handling shared by the
// validation and conversion routines: frequency parsing, resampling
// between frequencies, and the synthetic 8760-hour year convention.
package timeseries

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Point is one observation of a time series.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is an ordered sequence of observations.
type Series []Point

// Freq is a sampling frequency. Annual frequencies have no fixed step
// length because of leap years and are flagged instead.
type Freq struct {
	Step   time.Duration
	Annual bool
}

// ParseFreq parses the frequency aliases used in the model's input
// files: "15min", "H", "4H", "D" and "AS" (annual, year start).
func ParseFreq(s string) (Freq, error) {
	switch s {
	case "15min":
		return Freq{Step: 15 * time.Minute}, nil
	case "H":
		return Freq{Step: time.Hour}, nil
	case "D":
		return Freq{Step: 24 * time.Hour}, nil
	case "AS":
		return Freq{Annual: true}, nil
	}
	if n, ok := strings.CutSuffix(s, "H"); ok {
		var hours int
		if _, err := fmt.Sscanf(n, "%d", &hours); err == nil && hours > 0 {
			return Freq{Step: time.Duration(hours) * time.Hour}, nil
		}
	}
	return Freq{}, fmt.Errorf("unknown frequency %q (use 15min, H, nH, D or AS)", s)
}

// Aggregation selects how values are combined when downsampling.
type Aggregation int

const (
	AggSum Aggregation = iota
	AggMean
)

// Step returns the distance between the first two observations. Series
// indices ignore time shifts, so only the leading observations are
// consulted; they are unaffected by the missing DST hour.
func (s Series) Step() (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("series too short to infer frequency (%d points)", len(s))
	}
	step := s[1].Time.Sub(s[0].Time)
	if step <= 0 {
		return 0, fmt.Errorf("series index not strictly increasing at %s", s[1].Time)
	}
	return step, nil
}

// Resample converts a series to the target frequency. Downsampling
// aggregates whole target buckets with the given rule; upsampling
// interpolates linearly between the original observations. Leap days
// are cut from the result to keep synthetic 8760-hour years.
func Resample(s Series, target Freq, agg Aggregation) (Series, error) {
	if target.Annual {
		return CutLeapDays(downsampleAnnual(s, agg)), nil
	}
	step, err := s.Step()
	if err != nil {
		return nil, err
	}
	var out Series
	switch {
	case target.Step > step:
		out = downsample(s, target.Step, agg)
	case target.Step < step:
		out = upsample(s, target.Step)
	default:
		out = append(Series(nil), s...)
	}
	return CutLeapDays(out), nil
}

func downsample(s Series, step time.Duration, agg Aggregation) Series {
	var out Series
	var sum float64
	var n int
	var bucket time.Time
	flush := func() {
		if n == 0 {
			return
		}
		v := sum
		if agg == AggMean {
			v = sum / float64(n)
		}
		out = append(out, Point{Time: bucket, Value: v})
	}
	for _, p := range s {
		b := p.Time.Truncate(step)
		if n == 0 || !b.Equal(bucket) {
			flush()
			bucket, sum, n = b, 0, 0
		}
		sum += p.Value
		n++
	}
	flush()
	return out
}

func downsampleAnnual(s Series, agg Aggregation) Series {
	var out Series
	var sum float64
	var n, year int
	flush := func() {
		if n == 0 {
			return
		}
		v := sum
		if agg == AggMean {
			v = sum / float64(n)
		}
		t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		out = append(out, Point{Time: t, Value: v})
	}
	for _, p := range s {
		if n == 0 || p.Time.Year() != year {
			flush()
			year, sum, n = p.Time.Year(), 0, 0
		}
		sum += p.Value
		n++
	}
	flush()
	return out
}

func upsample(s Series, step time.Duration) Series {
	if len(s) == 0 {
		return nil
	}
	var out Series
	for i := 0; i < len(s)-1; i++ {
		a, b := s[i], s[i+1]
		span := b.Time.Sub(a.Time)
		for t := a.Time; t.Before(b.Time); t = t.Add(step) {
			frac := float64(t.Sub(a.Time)) / float64(span)
			out = append(out, Point{Time: t, Value: a.Value + frac*(b.Value-a.Value)})
		}
	}
	out = append(out, s[len(s)-1])
	return out
}

// CutLeapDays drops December 31 observations of leap years so that every
// year of the series spans 8760 hours.
func CutLeapDays(s Series) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if IsLeapYear(p.Time.Year()) && p.Time.Month() == time.December && p.Time.Day() == 31 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsLeapYear reports whether the given year is a leap year.
func IsLeapYear(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	default:
		return year%4 == 0
	}
}

// Sort orders a series by time in place.
func Sort(s Series) {
	sort.Slice(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
}
