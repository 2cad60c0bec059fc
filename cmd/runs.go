package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pommes-public/pommesevaluation/internal/export"
)

var runsStore string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded aggregation runs",
	Long:  `Lists the aggregation runs recorded in a SQLite store, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := export.OpenStore(runsStore)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Runs()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %-10s  %-14s  scenario=%s  %s  (%s)\n",
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.Mode, r.GroupBy, r.Scenario, r.SourceFile, r.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVar(&runsStore, "store", "runs.db", "SQLite store to read")
}
