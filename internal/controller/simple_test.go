package controller

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

func captureUI(t *testing.T) (*SimpleUI, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	return NewSimpleUI(cmd), &buf
}

func summaryReport() m.ProjectReport {
	return m.ProjectReport{
		Root:        "proj",
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Totals:      m.Totals{Files: 3, Lines: 200, Bytes: 4000, AILines: 120},
		ByClassification: map[m.Classification]m.Totals{
			m.ClassUnreviewed: {Files: 1, Lines: 120, AILines: 110},
			m.ClassReviewed:   {Files: 1, Lines: 60, AILines: 10},
			m.ClassNoHeader:   {Files: 1, Lines: 20},
		},
		ByDirectory: map[string]m.Totals{
			"src": {Files: 2, Lines: 180, AILines: 120},
			".":   {Files: 1, Lines: 20},
		},
		UnreviewedFiles: []m.Path{"src/gen.py"},
	}
}

func TestSimpleUI_ScanStarted(t *testing.T) {
	ui, buf := captureUI(t)

	ui.ScanStarted(context.Background(), "proj")
	assert.Contains(t, buf.String(), "Scanning proj")
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, buf := captureUI(t)

	require.NoError(t, ui.DisplaySummary(context.Background(), summaryReport()))

	out := buf.String()
	assert.Contains(t, out, "unreviewed")
	assert.Contains(t, out, "reviewed")
	assert.Contains(t, out, "AI coverage: 60.0%")
	assert.Contains(t, out, "Needs human review (1):")
	assert.Contains(t, out, "src/gen.py")
	assert.Contains(t, out, "TOTAL")
}

func TestSimpleUI_DisplaySummary_IOErrors(t *testing.T) {
	ui, buf := captureUI(t)

	report := summaryReport()
	report.IOErrors = []m.IOError{{Path: "src/locked.py", Error: "permission denied"}}

	require.NoError(t, ui.DisplaySummary(context.Background(), report))

	out := buf.String()
	assert.Contains(t, out, "Unreadable files (1):")
	assert.Contains(t, out, "permission denied")
}

func TestSimpleUI_DisplayGate(t *testing.T) {
	ui, buf := captureUI(t)

	ui.DisplayGate(context.Background(), true)
	assert.Contains(t, buf.String(), "PASS")

	buf.Reset()

	ui.DisplayGate(context.Background(), false)
	assert.Contains(t, buf.String(), "FAIL")
}

func TestSimpleUI_CanceledContext(t *testing.T) {
	ui, buf := captureUI(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.ScanStarted(ctx, "proj")
	assert.Empty(t, buf.String())

	err := ui.DisplaySummary(ctx, summaryReport())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestSimpleUI_DisplayReportMatchesSummary(t *testing.T) {
	uiA, bufA := captureUI(t)
	uiB, bufB := captureUI(t)

	report := summaryReport()

	require.NoError(t, uiA.DisplaySummary(context.Background(), report))
	require.NoError(t, uiB.DisplayReport(context.Background(), report))

	assert.Equal(t, bufA.String(), bufB.String())
}
