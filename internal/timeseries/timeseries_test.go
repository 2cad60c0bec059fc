package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourly(t0 time.Time, values ...float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Point{Time: t0.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return s
}

func TestParseFreq(t *testing.T) {
	cases := map[string]time.Duration{
		"15min": 15 * time.Minute,
		"H":     time.Hour,
		"4H":    4 * time.Hour,
		"D":     24 * time.Hour,
	}
	for alias, want := range cases {
		f, err := ParseFreq(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, f.Step, alias)
		assert.False(t, f.Annual, alias)
	}

	f, err := ParseFreq("AS")
	require.NoError(t, err)
	assert.True(t, f.Annual)

	_, err = ParseFreq("weekly")
	assert.Error(t, err)
}

func TestResampleDownSum(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s := hourly(t0, 1, 2, 3, 4, 5, 6, 7, 8)

	out, err := Resample(s, Freq{Step: 4 * time.Hour}, AggSum)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 10.0, out[0].Value)
	assert.Equal(t, 26.0, out[1].Value)
	assert.Equal(t, t0, out[0].Time)
}

func TestResampleDownMean(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		{Time: t0, Value: 2},
		{Time: t0.Add(15 * time.Minute), Value: 4},
		{Time: t0.Add(30 * time.Minute), Value: 6},
		{Time: t0.Add(45 * time.Minute), Value: 8},
	}
	out, err := Resample(s, Freq{Step: time.Hour}, AggMean)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 5.0, out[0].Value)
}

func TestResampleUpInterpolates(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		{Time: t0, Value: 0},
		{Time: t0.Add(4 * time.Hour), Value: 8},
	}
	out, err := Resample(s, Freq{Step: time.Hour}, AggSum)
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, []float64{0, 2, 4, 6, 8},
		[]float64{out[0].Value, out[1].Value, out[2].Value, out[3].Value, out[4].Value})
}

func TestResampleAnnual(t *testing.T) {
	t0 := time.Date(2020, 12, 30, 0, 0, 0, 0, time.UTC)
	s := hourly(t0, 1, 1, 1, 1)
	s = append(s, Point{Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Value: 7})

	out, err := Resample(s, Freq{Annual: true}, AggSum)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2020, out[0].Time.Year())
	assert.Equal(t, 4.0, out[0].Value)
	assert.Equal(t, 7.0, out[1].Value)
}

func TestCutLeapDays(t *testing.T) {
	s := Series{
		{Time: time.Date(2020, 12, 30, 12, 0, 0, 0, time.UTC), Value: 1},
		{Time: time.Date(2020, 12, 31, 12, 0, 0, 0, time.UTC), Value: 2},
		{Time: time.Date(2021, 12, 31, 12, 0, 0, 0, time.UTC), Value: 3},
	}
	out := CutLeapDays(s)
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].Value)
	// 2021 is no leap year; its Dec 31 stays.
	assert.Equal(t, 3.0, out[1].Value)
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2020))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(1900))
	assert.False(t, IsLeapYear(2021))
}

func TestSeriesStepErrors(t *testing.T) {
	_, err := Series{}.Step()
	assert.Error(t, err)

	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = Series{{Time: t0}, {Time: t0}}.Step()
	assert.Error(t, err)
}
