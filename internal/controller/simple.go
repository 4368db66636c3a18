package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

var (
	styleReviewed   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleUnreviewed = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleMalformed  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	styleMuted      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	stylePass       = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	styleFail       = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// SimpleUI implements UI using cobra Command's output writer with static
// tables.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// ScanStarted announces the scan root.
func (s *SimpleUI) ScanStarted(ctx context.Context, root m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Scanning %s ...\n", root)
}

// DisplaySummary prints classification and directory tables plus the
// unreviewed action list.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.ProjectReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderClassificationTable(report))
	s.printf("\n%s", renderDirectoryTable(report))

	if report.Totals.Lines > 0 {
		pct := float64(report.Totals.AILines) / float64(report.Totals.Lines) * 100
		s.printf("\nAI coverage: %.1f%% (%d / %d lines)\n", pct, report.Totals.AILines, report.Totals.Lines)
	}

	s.printUnreviewed(report)
	s.printIOErrors(report)

	return nil
}

// DisplayGate reports the CI decision loudly.
func (s *SimpleUI) DisplayGate(ctx context.Context, pass bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	if pass {
		s.printf("%s\n", stylePass.Render("CI gate: PASS"))
		return
	}

	s.printf("%s\n", styleFail.Render("CI gate: FAIL (unreviewed AI-generated files present)"))
}

// DisplayReport renders a stored report the same way as a fresh summary.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.ProjectReport) error {
	return s.DisplaySummary(ctx, report)
}

func (s *SimpleUI) printUnreviewed(report m.ProjectReport) {
	if len(report.UnreviewedFiles) == 0 {
		return
	}

	s.printf("\n%s\n", styleUnreviewed.Render(fmt.Sprintf("Needs human review (%d):", len(report.UnreviewedFiles))))

	for _, path := range report.UnreviewedFiles {
		s.printf("  %s\n", path)
	}
}

func (s *SimpleUI) printIOErrors(report m.ProjectReport) {
	if len(report.IOErrors) == 0 {
		return
	}

	s.printf("\n%s\n", styleMalformed.Render(fmt.Sprintf("Unreadable files (%d):", len(report.IOErrors))))

	for _, ioErr := range report.IOErrors {
		s.printf("  %s: %s\n", ioErr.Path, ioErr.Error)
	}
}

func renderClassificationTable(report m.ProjectReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Classification", "Files", "Lines", "AI Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, class := range m.Classifications {
		stats, ok := report.ByClassification[class]
		if !ok {
			continue
		}

		table.Append([]string{
			classBadge(class),
			fmt.Sprintf("%d", stats.Files),
			fmt.Sprintf("%d", stats.Lines),
			fmt.Sprintf("%d", stats.AILines),
		})
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", report.Totals.Files),
		fmt.Sprintf("%d", report.Totals.Lines),
		fmt.Sprintf("%d", report.Totals.AILines),
	})

	table.Render()

	return buf.String()
}

func renderDirectoryTable(report m.ProjectReport) string {
	dirs := make([]string, 0, len(report.ByDirectory))
	for dir := range report.ByDirectory {
		dirs = append(dirs, dir)
	}

	sort.Strings(dirs)

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Directory", "Files", "Lines", "AI Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, dir := range dirs {
		stats := report.ByDirectory[dir]
		table.Append([]string{
			dir,
			fmt.Sprintf("%d", stats.Files),
			fmt.Sprintf("%d", stats.Lines),
			fmt.Sprintf("%d", stats.AILines),
		})
	}

	table.Render()

	return buf.String()
}

func classBadge(class m.Classification) string {
	switch class {
	case m.ClassReviewed:
		return styleReviewed.Render(string(class))
	case m.ClassUnreviewed:
		return styleUnreviewed.Render(string(class))
	case m.ClassMalformed:
		return styleMalformed.Render(string(class))
	default:
		return styleMuted.Render(string(class))
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
