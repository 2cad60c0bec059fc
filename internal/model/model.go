// Package model resolves and loads the optimization model's input data
// sets. Input file names encode the scenario variant (cost pathways,
// flexibility share, demand response scenario), so the catalog is built
// from the run configuration rather than hard-coded.
package model

import (
	"fmt"

	"github.com/pommes-public/pommesevaluation/internal/config"
)

// InputCatalog maps logical data-set names to input file names (without
// the .csv extension) for the given scenario. Demand response cluster
// files are discovered from the eligibility file rather than hard-coded;
// the caller passes the cluster names read via DemandResponseClusters.
func InputCatalog(sc *config.Scenario, drClusters []string) map[string]string {
	files := map[string]string{
		"buses": "buses",

		"sinks_excess":           "sinks_excess",
		"sinks_demand_el":        "sinks_demand_el",
		"sources_shortage":       "sources_shortage",
		"sources_commodity":      "sources_commodity",
		"sources_renewables":     "sources_renewables_investment_model",
		"exogenous_storages_el":  "storages_el_exogenous",
		"new_built_storages_el":  "storages_el_investment_options",
		"exogenous_transformers": "transformers_exogenous",
		"new_built_transformers": "transformers_investment_options",

		"sinks_demand_el_ts":           "sinks_demand_el_ts_hourly",
		"sources_renewables_ts":        "sources_renewables_ts_hourly",
		"transformers_minload_ts":      "transformers_minload_ts_hourly",
		"transformers_availability_ts": "transformers_availability_ts_hourly",
		"linking_transformers_ts":      "linking_transformers_ts",

		"transformers_exogenous_max_ts": "transformers_exogenous_max_ts",
		"costs_fuel_ts": fmt.Sprintf(
			"costs_fuel_%s_nominal_indexed_ts", sc.FuelCostPathway),
		"costs_emissions_ts": fmt.Sprintf(
			"costs_emissions_%s_nominal_indexed_ts", sc.EmissionsCostPathway),
		"costs_operation_ts": fmt.Sprintf(
			"variable_costs_%s%%_nominal", sc.FlexibilityOptionsScenario),
		"costs_operation_storages_ts": fmt.Sprintf(
			"variable_costs_storages_%s%%_nominal", sc.FlexibilityOptionsScenario),
		"costs_investment": fmt.Sprintf(
			"investment_expenses_%s%%_nominal", sc.FlexibilityOptionsScenario),
		"costs_storages_investment_capacity": fmt.Sprintf(
			"investment_expenses_storages_capacity_%s%%_nominal", sc.FlexibilityOptionsScenario),
		"costs_storages_investment_power": fmt.Sprintf(
			"investment_expenses_storages_power_%s%%_nominal", sc.FlexibilityOptionsScenario),
		"linking_transformers_annual_ts": "linking_transformers_annual_ts",
		"storages_el_exogenous_max_ts":   "storages_el_exogenous_max_ts",

		"emission_limits": "emission_limits",
		"wacc":            "wacc",
		"interest_rate":   "interest_rate",
		"fixed_costs": fmt.Sprintf(
			"fixed_costs_%s%%_nominal", sc.FlexibilityOptionsScenario),
		"fixed_costs_storages": fmt.Sprintf(
			"fixed_costs_storages_%s%%_nominal", sc.FlexibilityOptionsScenario),
		"hydrogen_investment_maxima": "hydrogen_investment_maxima",
		"linking_transformers":       "linking_transformers",
	}

	// Emission development factors scale minimum loads and only exist
	// for runs with an emissions limit.
	if sc.ActivateEmissionsPathwayLimit || sc.ActivateEmissionsBudgetLimit {
		files["emission_development_factors"] = "emission_development_factors"
	}

	if sc.ActivateDemandResponse {
		// Overall demand excludes the demand response baseline, which
		// enters through its own cluster files instead.
		files["sinks_demand_el"] = fmt.Sprintf(
			"sinks_demand_el_excl_demand_response_%s", sc.DemandResponseScenario)
		files["sinks_demand_el_ts"] = fmt.Sprintf(
			"sinks_demand_el_excl_demand_response_ts_%s_hourly", sc.DemandResponseScenario)
		files["demand_response_clusters_eligibility"] = "demand_response_clusters_eligibility"

		for _, cluster := range drClusters {
			files["sinks_dr_el_"+cluster] = fmt.Sprintf(
				"%s_potential_parameters_%s%%", cluster, sc.DemandResponseScenario)
			files["sinks_dr_el_"+cluster+"_variable_costs"] = fmt.Sprintf(
				"%s_variable_costs_parameters_%s%%", cluster, sc.DemandResponseScenario)
			files["sinks_dr_el_"+cluster+"_fixed_costs_and_investments"] = fmt.Sprintf(
				"%s_fixed_costs_and_investments_parameters_%s%%", cluster, sc.DemandResponseScenario)
		}

		files["sinks_dr_el_ts"] = fmt.Sprintf(
			"sinks_demand_response_el_ts_%s", sc.DemandResponseScenario)
		files["sinks_dr_el_ava_pos_ts"] = fmt.Sprintf(
			"sinks_demand_response_el_ava_pos_ts_%s", sc.DemandResponseScenario)
		files["sinks_dr_el_ava_neg_ts"] = fmt.Sprintf(
			"sinks_demand_response_el_ava_neg_ts_%s", sc.DemandResponseScenario)
	}

	return files
}
