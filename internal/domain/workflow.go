package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"aigcap.dev/pkg/aigcap/internal/adapter"
	"aigcap.dev/pkg/aigcap/internal/controller"
	m "aigcap.dev/pkg/aigcap/internal/model"
)

// ScanArgs carries the options of a project scan.
type ScanArgs struct {
	Root      m.Path
	Exclude   []string
	Parallel  int
	ReportDir m.Path
	HTMLPath  m.Path // empty: write into ReportDir
	JSONPath  m.Path // empty: skip the standalone JSON copy
	CI        bool
	NoOpen    bool
	Quiet     bool
}

// ViewArgs carries the options for re-displaying a stored report.
type ViewArgs struct {
	ReportDir m.Path
}

// Workflow wires scanning, aggregation, persistence and display together.
type Workflow interface {
	// Scan walks the tree, writes the report artifacts and returns the
	// aggregated report. The gate decision is left to the caller.
	Scan(ctx context.Context, args ScanArgs) (m.ProjectReport, error)

	// View loads the most recent report and displays it.
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.BrowserOpener
	controller.UI
	Scanner
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	scanner Scanner,
	reportStore adapter.ReportStore,
	browser adapter.BrowserOpener,
	ui controller.UI,
) Workflow {
	return &workflow{
		ReportStore:   reportStore,
		BrowserOpener: browser,
		UI:            ui,
		Scanner:       scanner,
	}
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) (m.ProjectReport, error) {
	if !args.Quiet {
		w.ScanStarted(ctx, args.Root)
	}

	records, err := w.Scanner.Scan(ctx, args.Root, args.Exclude, args.Parallel)
	if err != nil {
		slog.Error("Scan failed", "root", args.Root, "error", err)
		return m.ProjectReport{}, fmt.Errorf("scan %s: %w", args.Root, err)
	}

	report := Aggregate(args.Root, records)

	// Artifacts are written even when the gate fails so CI keeps the
	// evidence of what failed.
	htmlPath, err := w.persist(report, args)
	if err != nil {
		return m.ProjectReport{}, err
	}

	if !args.Quiet {
		if err := w.DisplaySummary(ctx, report); err != nil {
			return m.ProjectReport{}, fmt.Errorf("display: %w", err)
		}
	}

	if !args.NoOpen && !args.CI {
		if err := w.Open(htmlPath); err != nil {
			// The report is on disk either way.
			slog.Warn("Could not open report in browser", "path", htmlPath, "error", err)
		}
	}

	return report, nil
}

func (w *workflow) persist(report m.ProjectReport, args ScanArgs) (m.Path, error) {
	if err := w.SaveLatest(args.ReportDir, report); err != nil {
		slog.Error("Failed to store report", "dir", args.ReportDir, "error", err)
		return "", fmt.Errorf("store report: %w", err)
	}

	htmlPath := args.HTMLPath
	if htmlPath == "" {
		htmlPath = m.Path(filepath.Join(string(args.ReportDir), "index.html"))
	}

	if err := w.SaveHTML(htmlPath, report); err != nil {
		slog.Error("Failed to write HTML report", "path", htmlPath, "error", err)
		return "", fmt.Errorf("write html report: %w", err)
	}

	if args.JSONPath != "" {
		if err := w.SaveJSON(args.JSONPath, report); err != nil {
			slog.Error("Failed to write JSON report", "path", args.JSONPath, "error", err)
			return "", fmt.Errorf("write json report: %w", err)
		}
	}

	return htmlPath, nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadLatest(args.ReportDir)
	if err != nil {
		slog.Error("Failed to load stored report", "dir", args.ReportDir, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	return w.DisplayReport(ctx, report)
}
