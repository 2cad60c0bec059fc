// Package meritorder turns plant cost data into merit order step
// curves and derives per-fuel efficiency bands by linear regression.
package meritorder

import (
	"math"
	"sort"
	"time"

	"github.com/pommes-public/pommesevaluation/internal/timeseries"
)

// Block is one generator in merit order position: its fuel, marginal
// cost and the capacity cumulated up to and including this generator.
type Block struct {
	Fuel              string
	MarginalCost      float64
	CumulatedCapacity float64
}

// ReshapeBlocks prepares merit order data for step plotting. At every
// fuel boundary the boundary point is duplicated under the next fuel so
// that adjacent fill areas meet without gaps.
func ReshapeBlocks(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for i, b := range blocks {
		out = append(out, b)
		if i+1 < len(blocks) && blocks[i+1].Fuel != b.Fuel {
			dup := b
			dup.Fuel = blocks[i+1].Fuel
			out = append(out, dup)
		}
	}
	return out
}

// PrepareMarketValues expands monthly market values into an hourly
// series for the simulation year by forward filling. The series covers
// January 1 00:00 through the first hour of the following year so that
// December keeps its value to the year boundary.
func PrepareMarketValues(monthly map[int]float64, simulationYear int) timeseries.Series {
	if len(monthly) == 0 {
		return nil
	}
	months := make([]int, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Ints(months)

	var out timeseries.Series
	value := monthly[months[0]]
	end := time.Date(simulationYear+1, 1, 1, 0, 0, 0, 0, time.UTC)
	for t := time.Date(simulationYear, 1, 1, 0, 0, 0, 0, time.UTC); !t.After(end); t = t.Add(time.Hour) {
		if v, ok := monthly[int(t.Month())]; ok && t.Year() == simulationYear {
			value = v
		}
		out = append(out, timeseries.Point{Time: t, Value: value})
	}
	return out
}

// Plant is one generator entering the efficiency regression: its
// electrical efficiency and its installed capacity per year.
type Plant struct {
	Efficiency float64
	Capacity   map[int]float64
}

// RegressionRow is the efficiency band of one fuel group in one year.
type RegressionRow struct {
	Year          int
	EfficiencyMin float64
	EfficiencyMax float64
	InstalledCap  float64
}

// EfficiencyRegression fits, per year, a linear model of electrical
// efficiency over cumulated capacity and evaluates it at zero and at the
// total installed capacity. The fitted minimum is clamped at 0.1; with a
// single plant or identical efficiencies both bounds collapse to the
// observed efficiency.
func EfficiencyRegression(plants []Plant, startYear, endYear int) []RegressionRow {
	sorted := append([]Plant(nil), plants...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Efficiency < sorted[j].Efficiency
	})

	var out []RegressionRow
	for year := startYear; year <= endYear; year++ {
		x := make([]float64, len(sorted))
		y := make([]float64, len(sorted))
		var cum float64
		for i, p := range sorted {
			cum += p.Capacity[year]
			x[i] = cum
			y[i] = p.Efficiency
		}

		row := RegressionRow{Year: year, InstalledCap: cum}
		intercept, slope, ok := fitLine(x, y)
		if ok {
			row.EfficiencyMin = math.Max(0.1, round4(intercept))
			row.EfficiencyMax = round4(intercept + slope*cum)
		} else if len(y) > 0 {
			row.EfficiencyMin = round4(y[0])
			row.EfficiencyMax = round4(y[0])
		}
		out = append(out, row)
	}
	return out
}

// fitLine computes the closed form OLS coefficients of y over x. It
// reports ok=false when the fit degenerates (fewer than two points,
// constant x, or constant y).
func fitLine(x, y []float64) (intercept, slope float64, ok bool) {
	n := float64(len(x))
	if len(x) < 2 {
		return 0, 0, false
	}
	var sumX, sumY, sumXX, sumXY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXX += x[i] * x[i]
		sumXY += x[i] * y[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, false
	}
	allEqual := true
	for i := 1; i < len(y); i++ {
		if y[i] != y[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return intercept, slope, true
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
