package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pommes-public/pommesevaluation/internal/fame"
)

var (
	fameAnnual    bool
	fameOut       string
	famePrecision int
	fameNetFilter string
)

var fameCmd = &cobra.Command{
	Use:   "fame <table.csv>",
	Short: "Convert a result table to FAME time format",
	Long: `Rewrites a table's time index into FAME time stamps and writes one
semicolon-separated file per column, the input shape of the AMIRIS
simulation. Annual tables (--annual) use plain years as index; time
series tables use full time stamps.

With --net-flows the table's columns are reduced to a single net flow
series before conversion: outflow columns minus inflow columns of the
component matching the filter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := readFameFrame(args[0])
		if err != nil {
			return err
		}

		if fameNetFilter != "" {
			net := fame.NetOperation(frame, fameNetFilter, "outflow", "inflow")
			reduced := &fame.Frame{
				Index:   frame.Index,
				Columns: []string{fameNetFilter + "_net_flows"},
				Rows:    make([][]float64, len(net)),
			}
			for i, v := range net {
				reduced.Rows[i] = []float64{v}
			}
			frame = reduced
		}

		var converted *fame.Frame
		if fameAnnual {
			converted = fame.AnnualToFameTime(frame, famePrecision)
		} else {
			converted = fame.TimeSeriesToFameTime(frame, famePrecision)
		}

		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		if err := fame.SaveForFame(converted, fameOut, base); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d FAME series (%d rows each) to %s\n",
			len(converted.Columns), len(converted.Index), fameOut)
		return nil
	},
}

func readFameFrame(path string) (*fame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("table %s has no value columns", path)
	}
	frame := &fame.Frame{Columns: header[1:]}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read table row: %w", err)
		}
		row := make([]float64, len(rec)-1)
		for i, raw := range rec[1:] {
			if strings.TrimSpace(raw) == "" {
				row[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %s: bad value %q", rec[0], raw)
			}
			row[i] = v
		}
		frame.Index = append(frame.Index, rec[0])
		frame.Rows = append(frame.Rows, row)
	}
	return frame, nil
}

func init() {
	rootCmd.AddCommand(fameCmd)
	fameCmd.Flags().BoolVar(&fameAnnual, "annual", false, "table index is plain years")
	fameCmd.Flags().StringVar(&fameOut, "out", "./data_out/amiris/", "output directory for FAME files")
	fameCmd.Flags().IntVar(&famePrecision, "precision", 3, "decimal digits for rounding")
	fameCmd.Flags().StringVar(&fameNetFilter, "net-flows", "", "reduce to net flows of the component matching this substring")
}
