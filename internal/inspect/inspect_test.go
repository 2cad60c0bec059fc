package inspect

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeries(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write series: %v", err)
	}
	return path
}

func TestCheckSeries(t *testing.T) {
	dir := t.TempDir()
	path := writeSeries(t, dir, "load.csv", ""+
		"2025-01-01_00:00:00;1\n"+
		"2025-01-01_01:00:00;2\n"+
		"2025-01-01_02:00:00;3\n"+
		"2025-01-01_03:00:00;4\n")

	st, err := CheckSeries(path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if st.Count != 4 {
		t.Fatalf("count = %d, want 4", st.Count)
	}
	if st.Mean != 2.5 || st.Min != 1 || st.Max != 4 {
		t.Fatalf("stats = %+v", st)
	}
	if st.Q50 != 2.5 || st.Q25 != 1.75 || st.Q75 != 3.25 {
		t.Fatalf("quartiles = %v %v %v", st.Q25, st.Q50, st.Q75)
	}
}

func TestCheckSeriesRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := writeSeries(t, dir, "bad.csv", "2025-01-01_00:00:00;abc\n")
	if _, err := CheckSeries(path); err == nil {
		t.Fatal("want error on unparseable value")
	}
}

func TestCheckAnnualChunks(t *testing.T) {
	dir := t.TempDir()
	path := writeSeries(t, dir, "two_years.csv", ""+
		"2025-12-31_22:00:00;1\n"+
		"2025-12-31_23:00:00;3\n"+
		"2026-01-01_00:00:00;10\n")

	years, stats, err := CheckAnnualChunks(path)
	if err != nil {
		t.Fatalf("check chunks: %v", err)
	}
	if len(years) != 2 || years[0] != "2025" || years[1] != "2026" {
		t.Fatalf("years = %v", years)
	}
	if stats["2025"].Count != 2 || stats["2025"].Mean != 2 {
		t.Fatalf("2025 stats = %+v", stats["2025"])
	}
	if stats["2026"].Count != 1 || stats["2026"].Mean != 10 {
		t.Fatalf("2026 stats = %+v", stats["2026"])
	}
}

func TestListCSVFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "skip.csv", "notes.txt"} {
		writeSeries(t, dir, name, "2025-01-01_00:00:00;1\n")
	}
	files, err := ListCSVFiles(dir, "skip.csv")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 2 || files[0] != "a.csv" || files[1] != "b.csv" {
		t.Fatalf("files = %v", files)
	}
}
