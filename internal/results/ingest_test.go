package results

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParseVariableKey(t *testing.T) {
	from, to, period, err := ParseVariableKey("('DE_bus_el', 'DE_storage_el_PHS', '2025')")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if from != "DE_bus_el" || to != "DE_storage_el_PHS" || period != "2025" {
		t.Fatalf("parsed (%q, %q, %q)", from, to, period)
	}
}

func TestParseVariableKeyRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "('a', 'b')", "('a', 'b', 'c', 'd')"} {
		if _, _, _, err := ParseVariableKey(raw); err == nil {
			t.Fatalf("key %q: want error", raw)
		}
	}
}

func TestLoadRows(t *testing.T) {
	path := writeTempCSV(t, ""+
		"variable,total\n"+
		"\"('DE_storage_el_PHS', 'None', '2025')\",50\n"+
		"\"('DE_bus_el', 'DE_storage_el_PHS', '2025')\",10.5\n")

	rows, rep, err := LoadRows(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rep.Rows != 2 || len(rows) != 2 {
		t.Fatalf("rows = %d (report %d), want 2", len(rows), rep.Rows)
	}
	if len(rep.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", rep.Warnings)
	}
	if rows[0].From != "DE_storage_el_PHS" || rows[0].To != "None" || rows[0].Value != 50 {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Value != 10.5 {
		t.Fatalf("row 1 value = %v, want 10.5", rows[1].Value)
	}
}

func TestLoadRowsSelectsValueColumn(t *testing.T) {
	path := writeTempCSV(t, ""+
		"variable,2025,2030\n"+
		"\"('DE_storage_el_PHS', 'None', '2030')\",50,60\n")

	rows, _, err := LoadRows(path, "2030")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rows[0].Value != 60 {
		t.Fatalf("value = %v, want 60 (column 2030)", rows[0].Value)
	}

	if _, _, err := LoadRows(path, "2040"); err == nil {
		t.Fatal("missing value column must error")
	}
}

func TestLoadRowsKeepsBadValuesAsNaN(t *testing.T) {
	path := writeTempCSV(t, ""+
		"variable,total\n"+
		"\"('DE_storage_el_PHS', 'None', '2025')\",\n"+
		"\"('DE_bus_el', 'DE_storage_el_PHS', '2025')\",oops\n")

	rows, rep, err := LoadRows(path, "")
	if err != nil {
		t.Fatalf("load must not abort on bad values: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (bad values kept)", len(rows))
	}
	for i, r := range rows {
		if !math.IsNaN(r.Value) {
			t.Fatalf("row %d value = %v, want NaN", i, r.Value)
		}
	}
	if len(rep.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", rep.Warnings)
	}
}

func TestValueColumns(t *testing.T) {
	path := writeTempCSV(t, "variable,2025,2030\n")
	cols, err := ValueColumns(path)
	if err != nil {
		t.Fatalf("value columns: %v", err)
	}
	if len(cols) != 2 || cols[0] != "2025" || cols[1] != "2030" {
		t.Fatalf("cols = %v, want [2025 2030]", cols)
	}
}
