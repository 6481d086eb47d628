// Package main implements flarereport, which prints a colored summary of a
// flare diary export.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/blaisecz/flare-tracker/internal/analytics"
	"github.com/blaisecz/flare-tracker/internal/report"
	"github.com/fatih/color"
)

var (
	file      = flag.String("file", "", "Export file, a JSON object keyed by YYYY-MM-DD (default stdin)")
	days      = flag.Int("days", 30, "Days covered by the statistics")
	delay     = flag.Int("delay", analytics.DefaultDelayDays, "Days after a trigger searched for a flare (0-14)")
	threshold = flag.Int("threshold", analytics.DefaultSeverityThreshold, "Severity from which a day counts as a flare (1-5)")
	noColor   = flag.Bool("no-color", false, "Disable colored output")
)

func main() {
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "flarereport: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *days < 1 {
		return fmt.Errorf("-days must be at least 1, got %d", *days)
	}
	if *delay < 0 || *delay > 14 {
		return fmt.Errorf("-delay must be between 0 and 14, got %d", *delay)
	}
	if *threshold < 1 || *threshold > 5 {
		return fmt.Errorf("-threshold must be between 1 and 5, got %d", *threshold)
	}

	var in io.Reader = os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	entries, err := report.LoadExport(in)
	if err != nil {
		return err
	}

	r := report.Build(entries, report.Options{Days: *days, DelayDays: *delay, Threshold: *threshold})
	return report.Render(color.Output, r)
}
