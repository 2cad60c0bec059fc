package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pommes-public/pommesevaluation/internal/fame"
	"github.com/pommes-public/pommesevaluation/internal/meritorder"
)

var (
	meritOrderOut string

	efficiencyStartYear int
	efficiencyEndYear   int
	efficiencyOut       string
)

var meritOrderCmd = &cobra.Command{
	Use:   "meritorder <blocks.csv>",
	Short: "Prepare merit order step-curve data",
	Long: `Reads generator blocks (fuel, marginal cost, cumulated capacity) in
merit order position and writes the step-curve points with duplicated
fuel boundaries that the plotting notebooks expect.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blocks, err := readBlocks(args[0])
		if err != nil {
			return err
		}
		reshaped := meritorder.ReshapeBlocks(blocks)
		if err := writeBlocks(meritOrderOut, reshaped); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d step points (%d generators) to %s\n",
			len(reshaped), len(blocks), meritOrderOut)
		return nil
	},
}

var efficiencyCmd = &cobra.Command{
	Use:   "efficiency <plants.csv>",
	Short: "Derive per-fuel efficiency bands by regression",
	Long: `Reads plants (tech_fuel, efficiency_el, capacity per year), fits a
linear model of efficiency over cumulated capacity per tech_fuel group
and year, and writes the resulting bands per group in FAME time format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, years, err := readPlants(args[0])
		if err != nil {
			return err
		}
		start, end := efficiencyStartYear, efficiencyEndYear
		if start == 0 || end == 0 {
			if len(years) == 0 {
				return errors.New("no capacity year columns found; use --start-year/--end-year")
			}
			start, end = years[0], years[len(years)-1]
		}

		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			rows := meritorder.EfficiencyRegression(groups[name], start, end)
			frame := &fame.Frame{
				Columns: []string{"efficiency_min", "efficiency_max", "exogenous_installed_cap"},
			}
			for _, r := range rows {
				frame.Index = append(frame.Index, strconv.Itoa(r.Year))
				frame.Rows = append(frame.Rows,
					[]float64{r.EfficiencyMin, r.EfficiencyMax, r.InstalledCap})
			}
			converted := fame.AnnualToFameTime(frame, 3)
			if err := fame.SaveForFame(converted, efficiencyOut, name); err != nil {
				return err
			}
		}
		fmt.Printf("✓ Wrote efficiency bands for %d groups (%d-%d) to %s\n",
			len(names), start, end, efficiencyOut)
		return nil
	},
}

func readBlocks(path string) ([]meritorder.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blocks: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		return -1
	}
	fuelIdx := col("fuel")
	costIdx := col("costs_marginal")
	capIdx := col("capacity_cumulated")
	if fuelIdx < 0 || costIdx < 0 || capIdx < 0 {
		return nil, fmt.Errorf("blocks file needs fuel, costs_marginal and capacity_cumulated columns")
	}

	var blocks []meritorder.Block
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read block row: %w", err)
		}
		cost, err := strconv.ParseFloat(rec[costIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("bad marginal cost %q", rec[costIdx])
		}
		capacity, err := strconv.ParseFloat(rec[capIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("bad cumulated capacity %q", rec[capIdx])
		}
		blocks = append(blocks, meritorder.Block{
			Fuel:              rec[fuelIdx],
			MarginalCost:      cost,
			CumulatedCapacity: capacity,
		})
	}
	return blocks, nil
}

func writeBlocks(path string, blocks []meritorder.Block) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"fuel", "costs_marginal", "capacity_cumulated"}); err != nil {
		return err
	}
	for _, b := range blocks {
		rec := []string{
			b.Fuel,
			strconv.FormatFloat(b.MarginalCost, 'f', -1, 64),
			strconv.FormatFloat(b.CumulatedCapacity, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// readPlants groups plant rows by tech_fuel. Year columns are detected
// by their four-digit names; every other column except tech_fuel and
// efficiency_el is ignored.
func readPlants(path string) (map[string][]meritorder.Plant, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open plants: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	techIdx, effIdx := -1, -1
	yearCols := make(map[int]int)
	var years []int
	for i, h := range header {
		switch h {
		case "tech_fuel":
			techIdx = i
		case "efficiency_el":
			effIdx = i
		default:
			if y, err := strconv.Atoi(h); err == nil && y >= 1900 && y <= 2200 {
				yearCols[i] = y
				years = append(years, y)
			}
		}
	}
	if techIdx < 0 || effIdx < 0 {
		return nil, nil, fmt.Errorf("plants file needs tech_fuel and efficiency_el columns")
	}
	sort.Ints(years)

	groups := make(map[string][]meritorder.Plant)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read plant row: %w", err)
		}
		eff, err := strconv.ParseFloat(rec[effIdx], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad efficiency %q", rec[effIdx])
		}
		plant := meritorder.Plant{
			Efficiency: eff,
			Capacity:   make(map[int]float64, len(yearCols)),
		}
		for i, year := range yearCols {
			if i >= len(rec) || rec[i] == "" {
				continue
			}
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad capacity %q in year %d", rec[i], year)
			}
			plant.Capacity[year] = v
		}
		groups[rec[techIdx]] = append(groups[rec[techIdx]], plant)
	}
	return groups, years, nil
}

func init() {
	rootCmd.AddCommand(meritOrderCmd)
	meritOrderCmd.Flags().StringVar(&meritOrderOut, "out", "merit_order.csv", "output CSV")

	meritOrderCmd.AddCommand(efficiencyCmd)
	efficiencyCmd.Flags().IntVar(&efficiencyStartYear, "start-year", 0, "first regression year (default: first capacity column)")
	efficiencyCmd.Flags().IntVar(&efficiencyEndYear, "end-year", 0, "last regression year (default: last capacity column)")
	efficiencyCmd.Flags().StringVar(&efficiencyOut, "out", "./data_out/amiris/", "output directory for FAME files")
}
