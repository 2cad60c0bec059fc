// Package results turns raw solver result dumps into aggregated tables.
//
// The optimization model labels every decision variable with an edge
// (from node, to node, period). Node identifiers encode several concerns
// at once (country, component class, fuel, technology, vintage), so the
// raw labels are first rewritten into canonical unit identifiers and the
// values are then grouped by energy carrier and/or technology.
package results

import "fmt"

// Mode selects between the two result-table conventions of the solver.
type Mode int

const (
	// ModeInvestment analyses capacity decision variables (MW by year).
	ModeInvestment Mode = iota
	// ModeDispatch analyses hourly operational variables (MWh by hour).
	ModeDispatch
)

func (m Mode) String() string {
	switch m {
	case ModeInvestment:
		return "investment"
	case ModeDispatch:
		return "dispatch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a CLI/config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "investment":
		return ModeInvestment, nil
	case "dispatch":
		return ModeDispatch, nil
	default:
		return 0, fmt.Errorf("unknown results mode %q (use 'investment' or 'dispatch')", s)
	}
}

// Row is one raw observation from the solver's result dump.
type Row struct {
	From   string
	To     string
	Period string
	Value  float64
}

// RelabeledRow carries a canonical unit label instead of the raw edge.
type RelabeledRow struct {
	Unit   string
	Period string
	Value  float64
}
