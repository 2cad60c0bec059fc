package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	// Reset bound variables so state does not leak across invocations
	aggregateMode = "investment"
	aggregateBy = "energy_carrier"
	aggregateColumn = ""
	aggregateOut = ""
	aggregateStore = ""
	aggregateIncludeCHP = false
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func TestCLI_AggregateInvestmentResults(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	work := t.TempDir()
	dump := filepath.Join(work, "investments.csv")
	content := "variable,total\n" +
		"\"('DE_storage_el_PHS_new_built', 'None', '2025')\",50\n" +
		"\"('DE_bus_el', 'DE_storage_el_PHS_new_built', '2025')\",10\n" +
		"\"('DE_source_natgas_GT', 'DE_bus_el', '2025')\",0\n"
	if err := os.WriteFile(dump, []byte(content), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	out := filepath.Join(work, "out")
	runCmd(t, "aggregate", dump, "--mode", "investment", "--out", out)

	b, err := os.ReadFile(filepath.Join(out, "investments_storages.csv"))
	if err != nil {
		t.Fatalf("read storages table: %v", err)
	}
	got := string(b)
	if !strings.Contains(got, "PHS_capacity,50") {
		t.Fatalf("storages table missing PHS_capacity:\n%s", got)
	}
	if !strings.Contains(got, "PHS_inflow,10") {
		t.Fatalf("storages table missing PHS_inflow:\n%s", got)
	}

	if _, err := os.Stat(filepath.Join(out, "investments_aggregated.csv")); err != nil {
		t.Fatalf("aggregated table not written: %v", err)
	}
}

func TestCLI_AggregateRejectsBadMode(t *testing.T) {
	aggregateMode = "investment"
	rootCmd.SetArgs([]string{"aggregate", "nosuchfile.csv", "--mode", "hourly"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("want error for unknown mode")
	}
}

func TestCLI_AggregateStoreRecordsRun(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	work := t.TempDir()
	dump := filepath.Join(work, "investments.csv")
	content := "variable,total\n" +
		"\"('DE_storage_el_battery', 'None', '2030')\",12\n"
	if err := os.WriteFile(dump, []byte(content), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	out := filepath.Join(work, "out")
	db := filepath.Join(work, "runs.db")
	runCmd(t, "aggregate", dump, "--out", out, "--store", db)

	if _, err := os.Stat(db); err != nil {
		t.Fatalf("store not created: %v", err)
	}
}
