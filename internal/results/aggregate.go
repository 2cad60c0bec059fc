package results

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// GroupBy selects the categorical key(s) used for aggregation.
type GroupBy string

const (
	ByEnergyCarrier GroupBy = "energy_carrier"
	ByTechnology    GroupBy = "technology"
	ByBoth          GroupBy = "both"
)

// InvalidAggregationModeError reports an unrecognized GroupBy value.
type InvalidAggregationModeError struct {
	Mode string
}

func (e *InvalidAggregationModeError) Error() string {
	return fmt.Sprintf("aggregation mode %q not defined; must be %q, %q or %q",
		e.Mode, ByEnergyCarrier, ByTechnology, ByBoth)
}

// technologyCodes are the plant-type tokens recognized in unit labels.
var technologyCodes = []string{"GT", "ST", "CC", "FC"}

// storageTechnologies are measured in energy rather than power and are
// therefore reported in a separate table.
var storageTechnologies = []string{"PHS", "battery"}

// Category is a tagged classification outcome. Recognized categories map
// to a known carrier or technology code; unclassified ones keep the full
// unit label so that no row silently disappears into a wrong bucket.
type Category struct {
	Name       string
	Recognized bool
}

// AggregateOptions controls one aggregation pass.
type AggregateOptions struct {
	By             GroupBy
	EnergyCarriers []string
	// Investments groups additionally by period (capacity decisions per
	// year); when false a single total per category is produced.
	Investments bool
	// IncludeCHP keeps the full technology string instead of the bare
	// code so that CHP variants stay distinguishable.
	IncludeCHP bool
}

// AggregatedRow is one output cell. Unused key parts stay zero-valued.
type AggregatedRow struct {
	EnergyCarrier Category
	Technology    Category
	Period        string
	Value         float64
}

// Label renders the categorical key of a row for table output.
func (r AggregatedRow) Label() string {
	switch {
	case r.EnergyCarrier.Name != "" && r.Technology.Name != "":
		return r.EnergyCarrier.Name + "/" + r.Technology.Name
	case r.EnergyCarrier.Name != "":
		return r.EnergyCarrier.Name
	default:
		return r.Technology.Name
	}
}

// Aggregation is the result of one Aggregate call. Results and Storages
// partition the input rows: every relabeled row contributes to exactly
// one cell of exactly one of the two tables.
type Aggregation struct {
	Results  []AggregatedRow
	Storages []AggregatedRow
}

// Aggregate groups relabeled rows by carrier and/or technology and sums
// their values. Storage capacity rows and the charging-direction rows of
// PHS and battery units are split into the Storages table because they
// are measured in MWh and must not be summed with MW quantities.
func Aggregate(rows []RelabeledRow, opts AggregateOptions) (*Aggregation, error) {
	switch opts.By {
	case ByEnergyCarrier, ByTechnology, ByBoth:
	default:
		return nil, &InvalidAggregationModeError{Mode: string(opts.By)}
	}

	carriers := make(map[string]bool, len(opts.EnergyCarriers))
	for _, c := range opts.EnergyCarriers {
		carriers[c] = true
	}

	type key struct {
		carrierName string
		carrierRec  bool
		techName    string
		techRec     bool
		period      string
	}
	sums := make(map[key]float64)
	order := make([]key, 0)

	for _, r := range rows {
		var k key
		if opts.By == ByEnergyCarrier || opts.By == ByBoth {
			c := classifyCarrier(r.Unit, carriers)
			k.carrierName = c.Name
			k.carrierRec = c.Recognized
		}
		if opts.By == ByTechnology || opts.By == ByBoth {
			t := classifyTechnology(r.Unit, opts.IncludeCHP)
			k.techName = t.Name
			k.techRec = t.Recognized
		}
		if opts.Investments {
			k.period = r.Period
		}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
			sums[k] = 0
		}
		// NaN marks a missing observation already reported at load time.
		if !math.IsNaN(r.Value) {
			sums[k] += r.Value
		}
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.carrierName != b.carrierName {
			return a.carrierName < b.carrierName
		}
		if a.techName != b.techName {
			return a.techName < b.techName
		}
		return a.period < b.period
	})

	storages := storageDetailSet(opts.Investments)
	agg := &Aggregation{}
	for _, k := range order {
		row := AggregatedRow{
			EnergyCarrier: Category{Name: k.carrierName, Recognized: k.carrierRec},
			Technology:    Category{Name: k.techName, Recognized: k.techRec},
			Period:        k.period,
			Value:         sums[k],
		}
		if storages[k.carrierName] || storages[k.techName] {
			agg.Storages = append(agg.Storages, row)
		} else {
			agg.Results = append(agg.Results, row)
		}
	}
	return agg, nil
}

// splitUnit separates a unit label into its fuel and technology parts.
func splitUnit(unit string) (fuel, tech string) {
	parts := strings.SplitN(unit, "_", 2)
	fuel = parts[0]
	if len(parts) > 1 {
		tech = parts[1]
	}
	// Exogenous units keep a leading "transformer" token; the fuel is
	// the second token then.
	if fuel == "transformer" {
		sub := strings.SplitN(unit, "_", 3)
		if len(sub) > 1 {
			fuel = sub[1]
		}
	}
	return fuel, tech
}

// classifyCarrier maps a unit to its energy carrier. Units whose fuel is
// not a known carrier stay unclassified under their full label.
func classifyCarrier(unit string, carriers map[string]bool) Category {
	fuel, tech := splitUnit(unit)
	// Electrolyzers are a compound of carrier and conversion process;
	// splitting them apart would file hydrogen production under the
	// hydrogen fuel and lose the distinction.
	if fuel == "hydrogen" && strings.Contains(tech, "electrolyzer") {
		return Category{Name: "hydrogen_electrolyzer", Recognized: carriers["hydrogen"]}
	}
	if carriers[fuel] {
		return Category{Name: fuel, Recognized: true}
	}
	return Category{Name: unit}
}

// classifyTechnology maps a unit to its plant-type code. Units without a
// recognized code stay unclassified under their full label.
func classifyTechnology(unit string, includeCHP bool) Category {
	_, tech := splitUnit(unit)
	for _, code := range technologyCodes {
		if strings.Contains(tech, code) {
			if includeCHP {
				return Category{Name: tech, Recognized: true}
			}
			name := tech
			if i := strings.Index(tech, "_"); i >= 0 {
				name = tech[:i]
			}
			return Category{Name: name, Recognized: true}
		}
	}
	return Category{Name: unit}
}

// storageDetailSet lists the group labels routed to the Storages table.
// Investment results name the charging direction _inflow; dispatch
// results use the mirrored convention and additionally keep the vintage
// suffix on new-built units.
func storageDetailSet(investments bool) map[string]bool {
	techs := append([]string(nil), storageTechnologies...)
	element := "_inflow"
	if !investments {
		element = "_outflow"
		for _, t := range storageTechnologies {
			techs = append(techs, t+"_new_built")
		}
	}
	set := make(map[string]bool, 2*len(techs))
	for _, t := range techs {
		set[t+"_capacity"] = true
		set[t+element] = true
	}
	return set
}
