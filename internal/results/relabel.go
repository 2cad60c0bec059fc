package results

import (
	"fmt"
	"strings"
)

// NoDestination is the sentinel the solver writes for variables without a
// target node (storage capacity variables).
const NoDestination = "None"

// Node-name tokens of the solver's labeling convention.
const (
	tokenStorage      = "storage"
	tokenBusEl        = "DE_bus_el"
	tokenBusEV        = "DE_bus_ev"
	tokenSinkEl       = "DE_sink_el"
	tokenElectrolyzer = "DE_transformer_hydrogen_electrolyzer"
	tokenEVCharging   = "DE_transformer_ev_uncontrolled"
	tokenLink         = "DE_link_"
)

// dsmStates are the demand-response state variables the solver reports as
// pseudo target nodes.
var dsmStates = map[string]bool{
	"dsm_up":            true,
	"dsm_do_shift":      true,
	"dsm_do_shed":       true,
	"dsm_storage_level": true,
}

// structuralPrefixes carry no information once a unit label is formed.
var structuralPrefixes = []string{"DE_storage_el_", "DE_transformer_"}

func isElectricityBus(node string) bool {
	return strings.Contains(node, tokenBusEl) || strings.Contains(node, tokenBusEV)
}

// chargeSuffix tags edges feeding a storage (bus -> storage).
// The two solver output formats use mirrored direction conventions.
func chargeSuffix(m Mode) string {
	if m == ModeInvestment {
		return "_inflow"
	}
	return "_outflow"
}

// dischargeSuffix tags edges draining a storage (storage -> bus).
func dischargeSuffix(m Mode) string {
	if m == ModeInvestment {
		return "_outflow"
	}
	return "_inflow"
}

// rule is one relabeling step. Rules run in order against the current
// label; a later matching rule overwrites the outcome of an earlier one.
type rule struct {
	name    string
	applies func(unit, to string, m Mode) bool
	rewrite func(unit, to string, m Mode) string
}

var relabelRules = []rule{
	{
		name: "storage capacity",
		applies: func(unit, to string, _ Mode) bool {
			return strings.Contains(unit, tokenStorage) && strings.Contains(to, NoDestination)
		},
		rewrite: func(unit, _ string, _ Mode) string { return unit + "_capacity" },
	},
	{
		name: "storage to bus",
		applies: func(unit, to string, _ Mode) bool {
			return strings.Contains(unit, tokenStorage) && isElectricityBus(to)
		},
		rewrite: func(unit, _ string, m Mode) string { return unit + dischargeSuffix(m) },
	},
	{
		name: "bus to storage",
		applies: func(unit, to string, _ Mode) bool {
			return isElectricityBus(unit) && strings.Contains(to, tokenStorage)
		},
		rewrite: func(_, to string, m Mode) string { return to + chargeSuffix(m) },
	},
	{
		name: "bus to demand sink",
		applies: func(unit, to string, _ Mode) bool {
			return isElectricityBus(unit) && strings.Contains(to, tokenSinkEl)
		},
		rewrite: func(_, to string, _ Mode) string { return to },
	},
	{
		name: "bus to electrolyzer",
		applies: func(unit, to string, _ Mode) bool {
			return isElectricityBus(unit) && strings.Contains(to, tokenElectrolyzer)
		},
		rewrite: func(_, to string, _ Mode) string { return to },
	},
	{
		name: "bus to uncontrolled ev charging",
		applies: func(unit, to string, _ Mode) bool {
			return isElectricityBus(unit) && strings.Contains(to, tokenEVCharging)
		},
		rewrite: func(_, to string, _ Mode) string { return to },
	},
	{
		name: "bus to cross-border link",
		applies: func(unit, to string, _ Mode) bool {
			return isElectricityBus(unit) && strings.Contains(to, tokenLink)
		},
		rewrite: func(_, to string, _ Mode) string { return to },
	},
	{
		// Any remaining bus outflow feeds a demand response cluster;
		// it is the demand remainder after load shifting.
		name: "demand response remainder",
		applies: func(unit, _ string, _ Mode) bool {
			return isElectricityBus(unit)
		},
		rewrite: func(_, to string, _ Mode) string { return to + "_demand_after" },
	},
	{
		name: "demand response state variable",
		applies: func(_, to string, _ Mode) bool { return dsmStates[to] },
		rewrite: func(unit, to string, _ Mode) string { return unit + "_" + to },
	},
}

// RelabelReport holds the relabeled rows plus data-quality findings.
type RelabelReport struct {
	Rows []RelabeledRow
	// Warnings lists units that still carry raw structural tokens after
	// all rules ran, which indicates an unhandled node-name pattern.
	Warnings []string
}

// Relabel rewrites raw solver edges into canonical unit labels.
//
// Rules are applied in fixed order against the current label, so a later
// applicable rule overrides an earlier one; this ordering is part of the
// labeling contract. Rows matched by no rule pass through unchanged and
// are reported as warnings when they still look like raw node names.
func Relabel(rows []Row, mode Mode) *RelabelReport {
	rep := &RelabelReport{Rows: make([]RelabeledRow, 0, len(rows))}
	warned := make(map[string]bool)

	for _, r := range rows {
		unit := r.From
		for _, rl := range relabelRules {
			if rl.applies(unit, r.To, mode) {
				unit = rl.rewrite(unit, r.To, mode)
			}
		}
		unit = StripStructuralTokens(unit, mode)

		if hasRawTokens(unit) && !warned[unit] {
			warned[unit] = true
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("unit %q still carries raw node tokens; no relabel rule matched (%s -> %s)", unit, r.From, r.To))
		}
		rep.Rows = append(rep.Rows, RelabeledRow{Unit: unit, Period: r.Period, Value: r.Value})
	}
	return rep
}

// StripStructuralTokens removes label decoration that carries no
// information for grouping: component-class prefixes always, and the
// vintage suffix in investment mode. Stripping an already stripped label
// is a no-op.
func StripStructuralTokens(unit string, mode Mode) string {
	for _, p := range structuralPrefixes {
		unit = strings.ReplaceAll(unit, p, "")
	}
	if mode == ModeInvestment {
		unit = strings.ReplaceAll(unit, "_new_built", "")
	}
	return unit
}

func hasRawTokens(unit string) bool {
	return strings.Contains(unit, tokenBusEl) || strings.Contains(unit, NoDestination)
}
