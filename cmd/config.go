package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/pommes-public/pommesevaluation/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set evaluation configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("path_inputs: %s\n", cfg.PathInputs)
		fmt.Printf("path_results: %s\n", cfg.PathResults)
		fmt.Printf("path_out: %s\n", cfg.PathOut)
		fmt.Printf("countries: %s\n", strings.Join(cfg.Countries, ","))
		fmt.Printf("start_time: %s\n", cfg.StartTime)
		fmt.Printf("end_time: %s\n", cfg.EndTime)
		fmt.Printf("freq: %s\n", cfg.Freq)
		fmt.Printf("overlap_in_time_steps: %d\n", cfg.OverlapInTimeSteps)
		fmt.Printf("fuel_cost_pathway: %s\n", cfg.FuelCostPathway)
		fmt.Printf("emissions_cost_pathway: %s\n", cfg.EmissionsCostPathway)
		fmt.Printf("flexibility_options_scenario: %s\n", cfg.FlexibilityOptionsScenario)
		fmt.Printf("activate_emissions_pathway_limit: %t\n", cfg.ActivateEmissionsPathwayLimit)
		fmt.Printf("activate_emissions_budget_limit: %t\n", cfg.ActivateEmissionsBudgetLimit)
		fmt.Printf("activate_demand_response: %t\n", cfg.ActivateDemandResponse)
		fmt.Printf("demand_response_scenario: %s\n", cfg.DemandResponseScenario)
		fmt.Printf("energy_carriers: %s\n", strings.Join(cfg.EnergyCarriers, ","))
		fmt.Printf("language: %s\n", cfg.Language)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "path_inputs":
			cfg.PathInputs = val
		case "path_results":
			cfg.PathResults = val
		case "path_out":
			cfg.PathOut = val
		case "countries":
			cfg.Countries = splitList(val)
		case "start_time":
			cfg.StartTime = val
		case "end_time":
			cfg.EndTime = val
		case "freq":
			cfg.Freq = val
		case "overlap_in_time_steps":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for overlap_in_time_steps: %v", val)
			}
			cfg.OverlapInTimeSteps = i
		case "fuel_cost_pathway":
			cfg.FuelCostPathway = val
		case "emissions_cost_pathway":
			cfg.EmissionsCostPathway = val
		case "flexibility_options_scenario":
			cfg.FlexibilityOptionsScenario = val
		case "activate_emissions_pathway_limit":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			cfg.ActivateEmissionsPathwayLimit = b
		case "activate_emissions_budget_limit":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			cfg.ActivateEmissionsBudgetLimit = b
		case "activate_demand_response":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			cfg.ActivateDemandResponse = b
		case "demand_response_scenario":
			cfg.DemandResponseScenario = val
		case "energy_carriers":
			cfg.EnergyCarriers = splitList(val)
		case "language":
			switch val {
			case "English", "German", "":
				cfg.Language = val
			default:
				return fmt.Errorf("invalid language: %s (use English or German)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Wrote config with defaults")
		return nil
	},
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
}
