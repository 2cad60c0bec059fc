package fame

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pommes-public/pommesevaluation/internal/timeseries"
)

func TestAnnualToFameTime(t *testing.T) {
	f := &Frame{
		Index:   []string{"2025", "2030"},
		Columns: []string{"efficiency_min"},
		Rows:    [][]float64{{0.41237}, {0.4551}},
	}
	out := AnnualToFameTime(f, 3)
	assert.Equal(t, []string{"2025-01-01_00:00:00", "2030-01-01_00:00:00"}, out.Index)
	assert.Equal(t, 0.412, out.Rows[0][0])
	assert.Equal(t, 0.455, out.Rows[1][0])
	// Input untouched.
	assert.Equal(t, "2025", f.Index[0])
}

func TestTimeSeriesToFameTime(t *testing.T) {
	f := &Frame{
		Index:   []string{"2025-01-01 00:00:00", "2025-01-01 01:00:00"},
		Columns: []string{"price"},
		Rows:    [][]float64{{41.23456}, {38.9999}},
	}
	out := TimeSeriesToFameTime(f, 3)
	assert.Equal(t, "2025-01-01_00:00:00", out.Index[0])
	assert.Equal(t, 41.235, out.Rows[0][0])
	assert.Equal(t, 39.0, out.Rows[1][0])
}

func TestSaveForFame(t *testing.T) {
	dir := t.TempDir()
	f := &Frame{
		Index:   []string{"2025-01-01_00:00:00", "2025-01-01_01:00:00"},
		Columns: []string{"min", "max"},
		Rows:    [][]float64{{0.1, 0.5}, {0.2, 0.6}},
	}
	require.NoError(t, SaveForFame(f, dir, "natgas_CC"))

	b, err := os.ReadFile(filepath.Join(dir, "natgas_CC_min.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"2025-01-01_00:00:00;0.1\n2025-01-01_01:00:00;0.2\n", string(b))

	b, err = os.ReadFile(filepath.Join(dir, "natgas_CC_max.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"2025-01-01_00:00:00;0.5\n2025-01-01_01:00:00;0.6\n", string(b))
}

func TestNetOperation(t *testing.T) {
	f := &Frame{
		Index:   []string{"h0", "h1"},
		Columns: []string{"PHS_outflow", "PHS_inflow", "battery_outflow", "load"},
		Rows: [][]float64{
			{10, 4, 2, 99},
			{0, 8, 1, 99},
		},
	}
	net := NetOperation(f, "PHS", "outflow", "inflow")
	// Only PHS columns count: outflows minus inflows.
	assert.Equal(t, []float64{6, -8}, net)
}

func TestResampleToHourly(t *testing.T) {
	// Two 4-hour steps carrying energy totals; hourly expansion divides
	// by the multiplier and repeats.
	t0 := time.Date(2025, 12, 31, 16, 0, 0, 0, time.UTC)
	s := timeseries.Series{
		{Time: t0, Value: 40},
		{Time: t0.Add(4 * time.Hour), Value: 80},
	}
	out := ResampleToHourly(s, 4, 2025)
	require.Len(t, out, 8, "extends to the year boundary")
	assert.Equal(t, 10.0, out[0].Value)
	assert.Equal(t, 10.0, out[3].Value)
	assert.Equal(t, 20.0, out[4].Value)
	assert.Equal(t, 20.0, out[7].Value)
	assert.Equal(t, t0.Add(7*time.Hour), out[7].Time)
}

func TestResampleToHourlyCutsLeapDay(t *testing.T) {
	t0 := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	s := timeseries.Series{{Time: t0, Value: 24}}
	out := ResampleToHourly(s, 1, 2024)
	// 2024 is a leap year; its December 31 is cut entirely.
	assert.Empty(t, out)
}
