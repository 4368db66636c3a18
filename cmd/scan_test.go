package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aigcap.dev/pkg/aigcap/internal/domain"
	m "aigcap.dev/pkg/aigcap/internal/model"
)

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)

		// Flag values stick to the package-level vars between executions.
		quietFlag = false
		scanHTMLFlag = ""
		scanJSONFlag = ""
		scanCIFlag = false
		scanNoOpenFlag = false
	})

	err := rootCmd.Execute()

	return buf.String(), err
}

func inTempDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })

	return dir
}

func seedTree(t *testing.T, dir string, reviewed bool) {
	t.Helper()

	dialect, ok := m.DialectForPath("x.py")
	require.True(t, ok)

	header := m.Header{
		Coverage:        m.CoverageWhole,
		ReviewedByHuman: reviewed,
		Methods:         []m.SymbolEntry{{Name: "main", Whole: true}},
	}

	content := domain.Upsert([]byte("print('hi')\n"), header, dialect)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "app.py"), content, 0o644))
}

func TestScanCmd_WritesReportsAndJSON(t *testing.T) {
	dir := inTempDir(t)
	seedTree(t, dir, true)

	jsonPath := filepath.Join(dir, "report.json")
	htmlPath := filepath.Join(dir, "report.html")

	out, err := execRoot(t, "scan", dir,
		"--no-open", "--json", jsonPath, "-o", htmlPath)
	require.NoError(t, err, out)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var report m.ProjectReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 1, report.Totals.Files)
	assert.Empty(t, report.UnreviewedFiles)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "src/app.py")

	// The latest-run store is written alongside the explicit outputs.
	_, err = os.Stat(filepath.Join(defaultReportsDir, "latest.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(defaultReportsDir, "manifest.yaml"))
	assert.NoError(t, err)
}

func TestScanCmd_CIGateFailsOnUnreviewed(t *testing.T) {
	dir := inTempDir(t)
	seedTree(t, dir, false)

	out, err := execRoot(t, "scan", dir, "--no-open", "--ci")
	require.ErrorIs(t, err, domain.ErrUnreviewedFiles)
	assert.Contains(t, out, "FAIL")

	// Artifacts still land for the failed gate.
	_, statErr := os.Stat(filepath.Join(defaultReportsDir, "latest.json"))
	assert.NoError(t, statErr)
}

func TestScanCmd_CIGatePassesWhenReviewed(t *testing.T) {
	dir := inTempDir(t)
	seedTree(t, dir, true)

	out, err := execRoot(t, "scan", dir, "--no-open", "--ci")
	require.NoError(t, err, out)
	assert.Contains(t, out, "PASS")
}

func TestScanCmd_QuietStillWritesReports(t *testing.T) {
	dir := inTempDir(t)
	seedTree(t, dir, true)

	out, err := execRoot(t, "scan", dir, "--no-open", "-q")
	require.NoError(t, err)
	assert.NotContains(t, out, "AI coverage")

	_, statErr := os.Stat(filepath.Join(defaultReportsDir, "latest.json"))
	assert.NoError(t, statErr)
}
