package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pommes-public/pommesevaluation/internal/prices"
	"github.com/pommes-public/pommesevaluation/internal/timeseries"
)

var (
	pricesYear       int
	pricesHistorical string
	pricesSMARD      bool
	pricesDuration   string
)

var pricesCmd = &cobra.Command{
	Use:   "prices <model_prices.csv>",
	Short: "Validate model power prices against historical prices",
	Long: `Reads hourly model prices and a historical price publication, aligns
both on a sequential hourly index and reports MAE, RMSE and NRMSE.
Optionally writes both duration curves for plotting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := readValueColumn(args[0])
		if err != nil {
			return err
		}

		var hist timeseries.Series
		if pricesSMARD {
			hist, err = prices.ReshapeSMARD(pricesHistorical, pricesYear)
		} else {
			var warnings []string
			hist, warnings, err = prices.ReshapeHourlyMatrix(pricesHistorical, pricesYear)
			printWarnings(warnings)
		}
		if err != nil {
			return err
		}

		n := len(model)
		if len(hist) < n {
			n = len(hist)
		}
		if n == 0 {
			return fmt.Errorf("no overlapping hours between model and historical prices")
		}
		histValues := make([]float64, n)
		for i := 0; i < n; i++ {
			histValues[i] = hist[i].Value
		}
		metrics, err := prices.ErrorMetrics(histValues, model[:n])
		if err != nil {
			return err
		}
		fmt.Printf("✓ Compared %d hours for %d\n", n, pricesYear)
		fmt.Printf("  MAE:   %.4f\n  RMSE:  %.4f\n  NRMSE: %.4f\n",
			metrics.MAE, metrics.RMSE, metrics.NRMSE)

		if pricesDuration != "" {
			if err := writeDurationCurves(pricesDuration, histValues, model[:n]); err != nil {
				return err
			}
			fmt.Printf("  duration curves: %s\n", pricesDuration)
		}
		return nil
	},
}

// readValueColumn reads the first value column of a two-column hourly
// CSV (timestamp, value) with a header line.
func readValueColumn(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prices: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read prices: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("prices file %s has no data rows", path)
	}
	values := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("row %q has no value column", rec)
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad price %q: %w", rec[1], err)
		}
		values = append(values, v)
	}
	return values, nil
}

func writeDurationCurves(path string, historical, model []float64) error {
	histCurve := prices.DurationCurve(historical)
	modelCurve := prices.DurationCurve(model)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create duration curves: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rank", "historical_price", "model_price"}); err != nil {
		return err
	}
	for i := range histCurve {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(histCurve[i], 'f', -1, 64),
			strconv.FormatFloat(modelCurve[i], 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func init() {
	rootCmd.AddCommand(pricesCmd)
	pricesCmd.Flags().IntVar(&pricesYear, "year", 2019, "year to compare")
	pricesCmd.Flags().StringVar(&pricesHistorical, "historical", "", "historical price file (required)")
	pricesCmd.Flags().BoolVar(&pricesSMARD, "smard", false, "historical file is a SMARD export instead of an exchange matrix")
	pricesCmd.Flags().StringVar(&pricesDuration, "duration-curves", "", "write sorted duration curves to this CSV")
	_ = pricesCmd.MarkFlagRequired("historical")
}
