package cmd

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pommes-public/pommesevaluation/internal/dispatch"
)

var (
	generationYear int
	generationOut  string
	generationImEx bool
)

var generationCmd = &cobra.Command{
	Use:   "generation <dir-or-file>",
	Short: "Reshape historical generation or cross-border exchange data",
	Long: `Reads the transparency platform's quarter-hourly generation export for
a year and writes hourly means per carrier. With --imports-exports the
argument is a SMARD cross-border exchange file instead, reshaped to
hourly net exports per border.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var frame *dispatch.Frame
		var err error
		if generationImEx {
			frame, err = dispatch.ReshapeImportsExports(args[0], generationYear)
		} else {
			frame, err = dispatch.LoadENTSOEGeneration(args[0], generationYear)
		}
		if err != nil {
			return err
		}
		if err := writeFrame(generationOut, frame); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d hourly rows, %d columns to %s\n",
			len(frame.Rows), len(frame.Columns), generationOut)
		return nil
	},
}

func writeFrame(path string, frame *dispatch.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"time"}, frame.Columns...)); err != nil {
		return err
	}
	for i, row := range frame.Rows {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, frame.Times[i].Format("2006-01-02 15:04:05"))
		for _, v := range row {
			if math.IsNaN(v) {
				rec = append(rec, "")
			} else {
				rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func init() {
	rootCmd.AddCommand(generationCmd)
	generationCmd.Flags().IntVar(&generationYear, "year", 2019, "year to evaluate (2017-2021)")
	generationCmd.Flags().StringVar(&generationOut, "out", "generation_hourly.csv", "output CSV")
	generationCmd.Flags().BoolVar(&generationImEx, "imports-exports", false, "reshape a cross-border exchange file instead of generation")
}
