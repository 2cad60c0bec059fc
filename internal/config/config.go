package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Scenario holds the evaluation run configuration: where the model's
// input and result files live and which scenario variant was solved.
// The scenario knobs select the cost and demand response input files,
// so they must match the solver run that produced the results.
type Scenario struct {
	PathInputs  string `mapstructure:"path_inputs" yaml:"path_inputs"`
	PathResults string `mapstructure:"path_results" yaml:"path_results"`
	PathOut     string `mapstructure:"path_out" yaml:"path_out"`

	Countries []string `mapstructure:"countries" yaml:"countries"`

	StartTime          string `mapstructure:"start_time" yaml:"start_time"`
	EndTime            string `mapstructure:"end_time" yaml:"end_time"`
	Freq               string `mapstructure:"freq" yaml:"freq"`
	OverlapInTimeSteps int    `mapstructure:"overlap_in_time_steps" yaml:"overlap_in_time_steps"`

	FuelCostPathway            string `mapstructure:"fuel_cost_pathway" yaml:"fuel_cost_pathway"`
	EmissionsCostPathway       string `mapstructure:"emissions_cost_pathway" yaml:"emissions_cost_pathway"`
	FlexibilityOptionsScenario string `mapstructure:"flexibility_options_scenario" yaml:"flexibility_options_scenario"`

	ActivateEmissionsPathwayLimit bool `mapstructure:"activate_emissions_pathway_limit" yaml:"activate_emissions_pathway_limit"`
	ActivateEmissionsBudgetLimit  bool `mapstructure:"activate_emissions_budget_limit" yaml:"activate_emissions_budget_limit"`

	ActivateDemandResponse bool   `mapstructure:"activate_demand_response" yaml:"activate_demand_response"`
	DemandResponseScenario string `mapstructure:"demand_response_scenario" yaml:"demand_response_scenario"`

	// EnergyCarriers is the closed set of recognized fuels used when
	// aggregating results by energy carrier.
	EnergyCarriers []string `mapstructure:"energy_carriers" yaml:"energy_carriers"`

	// Language selects the rename map applied on export ("English" or
	// "German"); raw carrier codes are kept when empty.
	Language string `mapstructure:"language" yaml:"language"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.pommeseval/config.yaml, creating the directory
// if necessary.
func Save(c *Scenario, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".pommeseval")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Scenario, error) {
	v := viper.New()
	v.SetEnvPrefix("POMMESEVAL")
	v.AutomaticEnv()

	v.SetDefault("path_inputs", "./inputs/")
	v.SetDefault("path_results", "./results/")
	v.SetDefault("path_out", "./data_out/")
	v.SetDefault("countries", []string{"DE"})
	v.SetDefault("start_time", "2020-01-01 00:00:00")
	v.SetDefault("end_time", "2045-12-31 23:00:00")
	v.SetDefault("freq", "H")
	v.SetDefault("overlap_in_time_steps", 0)
	v.SetDefault("fuel_cost_pathway", "NZE")
	v.SetDefault("emissions_cost_pathway", "long-term")
	v.SetDefault("flexibility_options_scenario", "50")
	v.SetDefault("activate_emissions_pathway_limit", true)
	v.SetDefault("activate_emissions_budget_limit", false)
	v.SetDefault("activate_demand_response", true)
	v.SetDefault("demand_response_scenario", "50")
	v.SetDefault("energy_carriers", []string{
		"biomass", "uranium", "lignite", "hardcoal", "natgas",
		"hydrogen", "mixedfuels", "otherfossil", "waste", "oil",
	})
	v.SetDefault("language", "English")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".pommeseval")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Scenario
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
