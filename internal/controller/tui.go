package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

const (
	// ANSI color codes for muted rows (dark gray, faint).
	grayColor  = "\033[2;90m" // Faint + dark gray
	resetColor = "\033[0m"    // Reset
)

// TUI implements UI using Bubble Tea for interactive report display. Scan
// progress and summaries fall through to the plain renderer.
type TUI struct {
	*SimpleUI

	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(simple *SimpleUI, output io.Writer) *TUI {
	return &TUI{SimpleUI: simple, output: output}
}

// DisplayReport shows the report in an interactive pager. Small reports are
// printed directly without entering the alternate screen.
func (p *TUI) DisplayReport(ctx context.Context, report m.ProjectReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newCoverageModel(report)

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// fileLine holds the rendered state of a single scanned file.
type fileLine struct {
	path           string
	classification m.Classification
	lines          int
	aiLines        int
}

// coverageModel represents the Bubble Tea model for paging through a report.
type coverageModel struct {
	generatedAt string
	root        string
	files       []fileLine
	totals      m.Totals
	unreviewed  int
	reviewed    int
	malformed   int
	height      int
	width       int
	offset      int // Current scroll offset
	quitting    bool
}

func newCoverageModel(report m.ProjectReport) coverageModel {
	files := make([]fileLine, 0, len(report.Files))
	for _, rec := range report.Files {
		files = append(files, fileLine{
			path:           string(rec.Path),
			classification: rec.Classification,
			lines:          rec.Lines,
			aiLines:        rec.AILines,
		})
	}

	return coverageModel{
		generatedAt: report.GeneratedAt.Format("2006-01-02 15:04:05"),
		root:        string(report.Root),
		files:       files,
		totals:      report.Totals,
		unreviewed:  report.Count(m.ClassUnreviewed),
		reviewed:    report.Count(m.ClassReviewed),
		malformed:   report.Count(m.ClassMalformed),
		height:      0, // Will be set on first WindowSizeMsg
		width:       0,
		offset:      0,
		quitting:    false,
	}
}

func (cm coverageModel) Init() tea.Cmd {
	return nil
}

func (cm coverageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.height = msg.Height
		cm.width = msg.Width

		return cm, nil

	case tea.KeyMsg:
		return cm.handleKeyPress(msg)
	}

	return cm, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (cm coverageModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cm.quitting = true
		return cm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		cm.quitting = true
		return cm, tea.Quit

	case "down", "j":
		return cm.scrollDown(), nil

	case "up", "k":
		return cm.scrollUp(), nil

	case "g", "home":
		cm.offset = 0
		return cm, nil

	case "G", "end":
		cm.offset = cm.maxOffset()
		return cm, nil

	case "d", "pgdown":
		return cm.scrollPageDown(), nil

	case "u", "pgup":
		return cm.scrollPageUp(), nil
	}

	return cm, nil
}

func (cm coverageModel) scrollDown() coverageModel {
	cm.offset++

	maxOffset := cm.maxOffset()
	if cm.offset > maxOffset {
		cm.offset = maxOffset
	}

	return cm
}

func (cm coverageModel) scrollUp() coverageModel {
	cm.offset--
	if cm.offset < 0 {
		cm.offset = 0
	}

	return cm
}

func (cm coverageModel) scrollPageDown() coverageModel {
	cm.offset += cm.itemsPerPage()

	maxOffset := cm.maxOffset()
	if cm.offset > maxOffset {
		cm.offset = maxOffset
	}

	return cm
}

func (cm coverageModel) scrollPageUp() coverageModel {
	cm.offset -= cm.itemsPerPage()
	if cm.offset < 0 {
		cm.offset = 0
	}

	return cm
}

// itemsPerPage calculates how many file rows fit on screen.
func (cm coverageModel) itemsPerPage() int {
	if cm.height == 0 {
		return 10 // Default
	}
	// Reserved lines:
	// - Header box: 4 lines
	// - Scan line + blank: 2 lines
	// - Summary: 3 lines
	// - Footer (pagination): 3 lines
	reserved := 12

	available := cm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (cm coverageModel) maxOffset() int {
	itemCount := len(cm.files)

	perPage := cm.itemsPerPage()
	if perPage <= 0 {
		return 0
	}

	maxOff := itemCount - perPage
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination returns true if the file list is too large to fit on screen.
func (cm coverageModel) needsPagination() bool {
	totalFiles := len(cm.files)
	if totalFiles == 0 {
		return false
	}

	return totalFiles > cm.itemsPerPage() && cm.height > 0
}

func (cm coverageModel) View() string {
	var b strings.Builder

	cm.renderHeader(&b)

	if len(cm.files) == 0 {
		b.WriteString("  📭 No source files found\n")
		return b.String()
	}

	cm.renderFileList(&b)

	return b.String()
}

func (cm coverageModel) renderHeader(b *strings.Builder) {
	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║                 aigcap - AI Code Review Coverage               ║\n")
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n")
	fmt.Fprintf(b, "  🗂  %s — scanned %s\n\n", cm.root, cm.generatedAt)
}

func (cm coverageModel) renderFileList(b *strings.Builder) {
	totalFiles := len(cm.files)
	needsPagination := cm.needsPagination()

	itemsPerPage := cm.itemsPerPage()

	start := cm.offset
	if start >= totalFiles {
		start = totalFiles - 1
		if start < 0 {
			start = 0
		}
	}

	end := start + itemsPerPage
	if end > totalFiles {
		end = totalFiles
	}

	displayFiles := cm.files
	if needsPagination {
		displayFiles = cm.files[start:end]
	}

	for _, fl := range displayFiles {
		color := ""
		if fl.classification == m.ClassUnsupported || fl.classification == m.ClassNoHeader {
			color = grayColor
		}

		fmt.Fprintf(b, "  %s %s%s: %d lines, %d AI%s\n",
			classIcon(fl.classification), color, fl.path, fl.lines, fl.aiLines, resetColor)
	}

	cm.writeSummary(b)
	cm.writeFooter(b, needsPagination, start, end, totalFiles, itemsPerPage)
}

func (cm coverageModel) writeSummary(b *strings.Builder) {
	b.WriteString("\n")
	fmt.Fprintf(b, "  📊 Reviewed: %d | Unreviewed: %d | Malformed: %d\n",
		cm.reviewed, cm.unreviewed, cm.malformed)
	fmt.Fprintf(b, "  📊 Estimated AI lines: %d of %d across %d file(s)\n",
		cm.totals.AILines, cm.totals.Lines, cm.totals.Files)
}

func (cm coverageModel) writeFooter(b *strings.Builder, needsPagination bool, start, end, totalFiles, itemsPerPage int) {
	if !needsPagination {
		return
	}

	b.WriteString("\n")

	currentPage := (cm.offset / itemsPerPage) + 1
	totalPages := (totalFiles + itemsPerPage - 1) / itemsPerPage
	fmt.Fprintf(b, "  Page %d/%d | Showing %d-%d of %d\n",
		currentPage, totalPages, start+1, end, totalFiles)
	b.WriteString("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")
}

func classIcon(c m.Classification) string {
	switch c {
	case m.ClassReviewed:
		return "✓"
	case m.ClassUnreviewed:
		return "✗"
	case m.ClassMalformed:
		return "⚠"
	default:
		return "·"
	}
}
