package dispatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationFileName(t *testing.T) {
	name, err := GenerationFileName(2019)
	require.NoError(t, err)
	assert.Equal(t, "entsoe_generation_DE_20190101-20200101.csv", name)

	for _, year := range []int{2016, 2022} {
		_, err := GenerationFileName(year)
		assert.Error(t, err, "year %d", year)
	}
}

func TestLoadENTSOEGeneration(t *testing.T) {
	dir := t.TempDir()
	content := "Area,MTU,Biomass  - Actual Aggregated [MW],Fossil Gas  - Actual Aggregated [MW],Unmapped [MW]\n" +
		// First hour: four quarter hours.
		"DE,q1,100,200,1\n" +
		"DE,q2,110,210,1\n" +
		"DE,q3,120,220,1\n" +
		"DE,q4,130,230,1\n" +
		// Empty rows of the missing DST hour are skipped entirely.
		"DE,q5,,,\n" +
		"DE,q6,,,\n" +
		"DE,q7,,,\n" +
		"DE,q8,,,\n" +
		// Second hour.
		"DE,q9,140,240,1\n" +
		"DE,q10,140,240,1\n" +
		"DE,q11,140,240,1\n" +
		"DE,q12,140,240,1\n"
	name, err := GenerationFileName(2019)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	frame, err := LoadENTSOEGeneration(dir, 2019)
	require.NoError(t, err)

	assert.Equal(t, []string{"biomass", "natgas"}, frame.Columns,
		"unmapped columns dropped, mapped ones renamed")
	require.Len(t, frame.Rows, 2)
	assert.Equal(t, 115.0, frame.Rows[0][0])
	assert.Equal(t, 215.0, frame.Rows[0][1])
	assert.Equal(t, 140.0, frame.Rows[1][0])
	assert.Equal(t, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), frame.Times[0])
	assert.Equal(t, time.Date(2019, 1, 1, 1, 0, 0, 0, time.UTC), frame.Times[1])
}

func TestReshapeImportsExports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imports_exports.csv")
	content := "Datum;Uhrzeit;Nettoexport[MWh];Frankreich (Export)[MWh];Frankreich (Import)[MWh]\n" +
		"01.01.2019;00:00;5;3;2\n" +
		"01.01.2019;01:00;6;4;2\n" +
		// The October DST switch repeats the 02:00 stamp; both rows must
		// survive as separate hours.
		"27.10.2019;02:00;7;5;2\n" +
		"27.10.2019;02:00;8;6;2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	frame, err := ReshapeImportsExports(path, 2019)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"overall_net_export", "net_export_FR_pos", "net_export_FR_neg"},
		frame.Columns)
	require.Len(t, frame.Rows, 4, "duplicate DST hour kept as its own row")
	assert.Equal(t, 5.0, frame.Rows[0][0])
	assert.Equal(t, 7.0, frame.Rows[2][0])
	assert.Equal(t, 8.0, frame.Rows[3][0])
	// Sequential hourly index from January 1.
	assert.Equal(t, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), frame.Times[0])
	assert.Equal(t, time.Date(2019, 1, 1, 3, 0, 0, 0, time.UTC), frame.Times[3])
}
