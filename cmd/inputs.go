package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pommes-public/pommesevaluation/internal/model"
)

var inputsVerify bool

var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "Resolve the scenario's input file catalog",
	Long: `Resolves the logical-name to file-name catalog of the configured
scenario, including the demand response cluster files discovered from
the eligibility file. With --verify, each resolved file is checked for
existence in path_inputs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("no configuration loaded; run 'pommeseval config init' first")
		}

		var clusters []string
		if cfg.ActivateDemandResponse {
			var err error
			clusters, err = model.DemandResponseClusters(cfg)
			if err != nil {
				// The catalog is still useful without cluster files.
				fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
			}
		}
		catalog := model.InputCatalog(cfg, clusters)

		names := make([]string, 0, len(catalog))
		for name := range catalog {
			names = append(names, name)
		}
		sort.Strings(names)

		missing := 0
		for _, name := range names {
			file := catalog[name]
			if inputsVerify {
				path := filepath.Join(cfg.PathInputs, file+".csv")
				if _, err := os.Stat(path); err != nil {
					fmt.Printf("✗ %-45s %s.csv (missing)\n", name, file)
					missing++
					continue
				}
				fmt.Printf("✓ %-45s %s.csv\n", name, file)
				continue
			}
			fmt.Printf("%-45s %s.csv\n", name, file)
		}
		if inputsVerify && missing > 0 {
			return fmt.Errorf("%d of %d input files missing in %s", missing, len(names), cfg.PathInputs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inputsCmd)
	inputsCmd.Flags().BoolVar(&inputsVerify, "verify", false, "check that every resolved file exists")
}
