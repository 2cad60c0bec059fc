package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pommes-public/pommesevaluation/internal/export"
	"github.com/pommes-public/pommesevaluation/internal/results"
)

var (
	aggregateMode       string
	aggregateBy         string
	aggregateColumn     string
	aggregateOut        string
	aggregateStore      string
	aggregateIncludeCHP bool
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <results.csv>",
	Short: "Relabel and aggregate a raw results dump",
	Long: `Relabels the solver's (from_node, to_node, period) edges into canonical
unit labels and aggregates the values by energy carrier and/or
technology. Storage rows are written to a separate detail table because
their units differ.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := results.ParseMode(aggregateMode)
		if err != nil {
			return err
		}

		rows, loadRep, err := results.LoadRows(args[0], aggregateColumn)
		if err != nil {
			return err
		}
		printWarnings(loadRep.Warnings)

		relabeled := results.Relabel(rows, mode)
		printWarnings(relabeled.Warnings)

		var carriers []string
		if cfg != nil {
			carriers = cfg.EnergyCarriers
		}
		agg, err := results.Aggregate(relabeled.Rows, results.AggregateOptions{
			By:             results.GroupBy(aggregateBy),
			EnergyCarriers: carriers,
			Investments:    mode == results.ModeInvestment,
			IncludeCHP:     aggregateIncludeCHP,
		})
		if err != nil {
			return err
		}

		language := ""
		if cfg != nil {
			language = cfg.Language
		}
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		outDir := aggregateOut
		if outDir == "" && cfg != nil {
			outDir = cfg.PathOut
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("mkdir output dir: %w", err)
		}

		resultsPath := filepath.Join(outDir, base+"_aggregated.csv")
		if err := export.WritePivotCSV(resultsPath, agg.Results, language); err != nil {
			return err
		}
		storagesPath := filepath.Join(outDir, base+"_storages.csv")
		if err := export.WritePivotCSV(storagesPath, agg.Storages, ""); err != nil {
			return err
		}

		if aggregateStore != "" {
			store, err := export.OpenStore(aggregateStore)
			if err != nil {
				return err
			}
			defer store.Close()
			scenario := ""
			if cfg != nil {
				scenario = cfg.FlexibilityOptionsScenario
			}
			id, err := store.SaveRun(export.Run{
				Mode:       mode.String(),
				GroupBy:    aggregateBy,
				Scenario:   scenario,
				SourceFile: args[0],
			}, agg)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Run %s recorded in %s\n", id, aggregateStore)
		}

		fmt.Printf("✓ Aggregated %d rows into %d result and %d storage groups\n",
			len(rows), len(agg.Results), len(agg.Storages))
		fmt.Printf("  %s\n  %s\n", resultsPath, storagesPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	aggregateCmd.Flags().StringVar(&aggregateMode, "mode", "investment", "results mode: investment or dispatch")
	aggregateCmd.Flags().StringVar(&aggregateBy, "by", "energy_carrier", "grouping: energy_carrier, technology or both")
	aggregateCmd.Flags().StringVar(&aggregateColumn, "column", "", "value column to aggregate (default: first value column)")
	aggregateCmd.Flags().StringVar(&aggregateOut, "out", "", "output directory (default: path_out from config)")
	aggregateCmd.Flags().StringVar(&aggregateStore, "store", "", "also record the run in this SQLite store")
	aggregateCmd.Flags().BoolVar(&aggregateIncludeCHP, "include-chp", false, "keep full technology strings to distinguish CHP variants")
}
