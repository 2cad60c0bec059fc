package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pommes-public/pommesevaluation/internal/inspect"
)

var (
	checkAnnual bool
	checkDir    bool
	checkExcept []string
)

var checkCmd = &cobra.Command{
	Use:   "check <series.csv | dir>",
	Short: "Sanity-check converted FAME series",
	Long: `Computes describe-style statistics over a semicolon-separated FAME
series file so conversion mistakes surface before a simulation run.
With --dir the argument is a folder and every csv file in it is checked;
with --annual each year is summarized separately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkDir {
			files, err := inspect.ListCSVFiles(args[0], checkExcept...)
			if err != nil {
				return err
			}
			for _, name := range files {
				if err := checkOne(filepath.Join(args[0], name)); err != nil {
					return err
				}
			}
			fmt.Printf("✓ Checked %d files\n", len(files))
			return nil
		}
		return checkOne(args[0])
	},
}

func checkOne(path string) error {
	if checkAnnual {
		years, stats, err := inspect.CheckAnnualChunks(path)
		if err != nil {
			return err
		}
		fmt.Printf("%s:\n", path)
		for _, year := range years {
			printStats("  "+year, stats[year])
		}
		return nil
	}
	st, err := inspect.CheckSeries(path)
	if err != nil {
		return err
	}
	printStats(path, st)
	return nil
}

func printStats(label string, st inspect.Stats) {
	fmt.Printf("%s: count=%d mean=%.4f std=%.4f min=%.4f 25%%=%.4f 50%%=%.4f 75%%=%.4f max=%.4f\n",
		label, st.Count, st.Mean, st.Std, st.Min, st.Q25, st.Q50, st.Q75, st.Max)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkAnnual, "annual", false, "summarize each year separately")
	checkCmd.Flags().BoolVar(&checkDir, "dir", false, "check every csv file in a folder")
	checkCmd.Flags().StringSliceVar(&checkExcept, "except", nil, "file names to skip with --dir")
}
