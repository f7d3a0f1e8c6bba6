package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codekriti/deepsea/internal/telemetry"
)

var reportCmd = &cobra.Command{
	Use:   "report <csv>",
	Short: "Summarize telemetry written by simulate --csv",
	Long: `Read window stats written by 'codekriti simulate --csv' and print one
line per window followed by a summary of the window means.

Examples:
  codekriti simulate brickbreaker --frames 36000 --window 600 --csv run.csv
  codekriti report run.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var errEmptyReport = errors.New("no windows recorded")

func runReport(_ *cobra.Command, args []string) error {
	records, err := telemetry.ReadCSV(args[0])
	if err != nil {
		return err
	}
	return writeReport(os.Stdout, records)
}

// writeReport prints the per-window table and the spread of window means.
func writeReport(w io.Writer, records []telemetry.WindowStats) error {
	if len(records) == 0 {
		return errEmptyReport
	}
	last := records[len(records)-1]

	fmt.Fprintf(w, "%s: %d windows, %d frames\n\n", last.Game, len(records), last.WindowEnd)
	fmt.Fprintf(w, "  %-8s  %-10s  %-10s  %-7s  %s\n", "Frame", "Mean", "P90", "Score", "Events")

	means := make([]float64, len(records))
	var events uint64
	for i, r := range records {
		fmt.Fprintf(w, "  %-8d  %-10.3f  %-10.3f  %-7d  %d\n", r.WindowEnd, r.MetricMean, r.MetricP90, r.Score, r.Events)
		means[i] = r.MetricMean
		events += r.Events
	}

	s := telemetry.Summarize(means)
	fmt.Fprintf(w, "\nWindow means: mean %.3f  std %.3f  min %.3f  max %.3f\n", s.Mean, s.StdDev, s.Min, s.Max)
	fmt.Fprintf(w, "Events: %d  Final score: %d  Level: %d\n", events, last.Score, last.Level)
	return nil
}
