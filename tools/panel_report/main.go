package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"circuit-load/internal/config"
	loadapp "circuit-load/internal/loadcalc/application"
	loadmemory "circuit-load/internal/loadcalc/infrastructure/memory"
	"circuit-load/internal/loadcalc/interfaces/export"
)

type options struct {
	panelPath string
	outDir    string
	xlsx      bool
	pdf       bool
	verbose   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.panelPath, "panel", "", "path to a YAML panel file")
	flag.StringVar(&opts.outDir, "out", ".", "output directory for exports")
	flag.BoolVar(&opts.xlsx, "xlsx", false, "write panel.xlsx")
	flag.BoolVar(&opts.pdf, "pdf", false, "write panel.pdf")
	flag.BoolVar(&opts.verbose, "v", false, "log load model mutations")
	flag.Parse()

	if opts.panelPath == "" {
		fmt.Fprintln(os.Stderr, "usage: panel_report -panel panel.yaml [-xlsx] [-pdf] [-out dir]")
		os.Exit(2)
	}
	overloaded, err := run(context.Background(), opts, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "panel report: %v\n", err)
		os.Exit(1)
	}
	if overloaded {
		os.Exit(3)
	}
}

// run evaluates the panel and reports whether any circuit is overloaded.
func run(ctx context.Context, opts options, out io.Writer) (bool, error) {
	circuits, err := config.LoadPanel(opts.panelPath)
	if err != nil {
		return false, err
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	service, err := loadapp.NewService(loadmemory.NewCircuitRepository(), loadapp.WithLogger(logger))
	if err != nil {
		return false, err
	}
	if err := service.Seed(ctx, config.Seeds(circuits)); err != nil {
		return false, err
	}
	reports, err := service.Reports(ctx)
	if err != nil {
		return false, err
	}

	overloaded := false
	for _, item := range reports {
		report := item.Report
		if report.IsOverloaded {
			overloaded = true
		}
		fmt.Fprintf(out, "%-24s %6.0fV %5.0fA  %8.0fW  %6.2fA  %6.1f%%  %-10s  remaining %.0fW / %.2fA\n",
			item.Circuit.Name, item.Circuit.Voltage, item.Circuit.BreakerRating,
			report.TotalWatts, report.TotalAmps, report.UsagePercent, export.StatusLabel(report.Status),
			report.AvailableWatts, report.AvailableAmps)
	}

	if opts.xlsx {
		data, err := export.BuildPanelXLSX(reports)
		if err != nil {
			return overloaded, err
		}
		if err := writeFile(opts.outDir, "panel.xlsx", data); err != nil {
			return overloaded, err
		}
	}
	if opts.pdf {
		data, err := export.BuildPanelPDF(reports, time.Now())
		if err != nil {
			return overloaded, err
		}
		if err := writeFile(opts.outDir, "panel.pdf", data); err != nil {
			return overloaded, err
		}
	}
	return overloaded, nil
}

func writeFile(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}
