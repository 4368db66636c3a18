package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"slices"

	"gopkg.in/yaml.v3"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

// ReportStore persists scan reports so CI artifacts and the view command can
// pick up the latest run.
type ReportStore interface {
	SaveJSON(path m.Path, report m.ProjectReport) error
	SaveHTML(path m.Path, report m.ProjectReport) error
	SaveLatest(dir m.Path, report m.ProjectReport) error
	LoadLatest(dir m.Path) (m.ProjectReport, error)
}

const (
	latestReportName   = "latest.json"
	latestManifestName = "manifest.yaml"

	reportFilePerm = 0o644
	reportDirPerm  = 0o750
)

type localReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore constructs a ReportStore backed by the local filesystem.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &localReportStore{fs: fs}
}

// SaveJSON writes the machine-readable export.
func (s *localReportStore) SaveJSON(path m.Path, report m.ProjectReport) error {
	data, err := RenderJSON(report)
	if err != nil {
		return err
	}

	if err := s.fs.WriteFile(path, data, reportFilePerm); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}

	return nil
}

// SaveHTML writes the dashboard.
func (s *localReportStore) SaveHTML(path m.Path, report m.ProjectReport) error {
	data, err := RenderHTML(report)
	if err != nil {
		return err
	}

	if err := s.fs.WriteFile(path, data, reportFilePerm); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}

	return nil
}

// scanManifest is the small YAML companion of the latest report, summarizing
// one run at a glance without loading the full JSON.
type scanManifest struct {
	Root        m.Path `yaml:"root"`
	GeneratedAt string `yaml:"generatedAt"`
	Files       int    `yaml:"files"`
	Unreviewed  int    `yaml:"unreviewed"`
	Reviewed    int    `yaml:"reviewed"`
	Malformed   int    `yaml:"malformed"`
}

// SaveLatest stores the report and its manifest in the reports directory.
func (s *localReportStore) SaveLatest(dir m.Path, report m.ProjectReport) error {
	if err := s.fs.MkdirAll(dir, reportDirPerm); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	if err := s.SaveJSON(s.fs.JoinPath(string(dir), latestReportName), report); err != nil {
		return err
	}

	manifest := scanManifest{
		Root:        report.Root,
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Files:       report.Totals.Files,
		Unreviewed:  report.Count(m.ClassUnreviewed),
		Reviewed:    report.Count(m.ClassReviewed),
		Malformed:   report.Count(m.ClassMalformed),
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := s.fs.WriteFile(s.fs.JoinPath(string(dir), latestManifestName), data, reportFilePerm); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// LoadLatest reads back the most recent report saved with SaveLatest.
func (s *localReportStore) LoadLatest(dir m.Path) (m.ProjectReport, error) {
	data, err := s.fs.ReadFile(s.fs.JoinPath(string(dir), latestReportName))
	if err != nil {
		return m.ProjectReport{}, fmt.Errorf("load latest report: %w", err)
	}

	var report m.ProjectReport
	if err := json.Unmarshal(data, &report); err != nil {
		return m.ProjectReport{}, fmt.Errorf("decode latest report: %w", err)
	}

	return report, nil
}

// RenderJSON is a pure function of the report data.
func RenderJSON(report m.ProjectReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	return append(data, '\n'), nil
}

// dashboardView precomputes everything the template shows so the template
// itself stays logic-free.
type dashboardView struct {
	Report     m.ProjectReport
	AIPercent  float64
	Rows       []dashboardRow
	Languages  []languageRow
	Unreviewed []m.Path
}

type dashboardRow struct {
	Class m.Classification
	Stats m.Totals
}

type languageRow struct {
	Name  string
	Stats m.Totals
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>AIGCAP Coverage Dashboard</title>
<style>
  body { font-family: monospace; margin: 2em; background: #0a0a0f; color: #e8e8f0; }
  h1 { color: #4d8eff; }
  table { border-collapse: collapse; margin-bottom: 2em; }
  th, td { border: 1px solid #2a2a40; padding: 6px 12px; text-align: left; }
  th { background: #12121a; color: #8888a8; }
  .warn { color: #fbbf24; }
  .bad { color: #f87171; }
  .ok { color: #34d399; }
</style>
</head>
<body>
<h1>AIGCAP Coverage Dashboard</h1>
<p>{{.Report.Root}} &mdash; {{.Report.GeneratedAt.Format "2006-01-02 15:04:05"}} UTC</p>
<p>{{.Report.Totals.AILines}} AI-generated lines / {{.Report.Totals.Lines}} total lines
across {{.Report.Totals.Files}} files ({{printf "%.1f" .AIPercent}}%)</p>

<h2>By classification</h2>
<table>
<tr><th>Classification</th><th>Files</th><th>Lines</th><th>AI lines</th></tr>
{{range .Rows}}<tr><td>{{.Class}}</td><td>{{.Stats.Files}}</td><td>{{.Stats.Lines}}</td><td>{{.Stats.AILines}}</td></tr>
{{end}}</table>

{{if .Languages}}<h2>By language</h2>
<table>
<tr><th>Language</th><th>Files</th><th>Lines</th><th>AI lines</th></tr>
{{range .Languages}}<tr><td>{{.Name}}</td><td>{{.Stats.Files}}</td><td>{{.Stats.Lines}}</td><td>{{.Stats.AILines}}</td></tr>
{{end}}</table>{{end}}

{{if .Report.Libraries}}<h2>AI-selected libraries</h2>
<table>
<tr><th>Library</th><th>Reasons</th><th>Files</th></tr>
{{range .Report.Libraries}}<tr><td>{{.Name}}</td><td>{{range $i, $r := .Reasons}}{{if $i}}; {{end}}{{$r}}{{end}}</td><td>{{len .Files}}</td></tr>
{{end}}</table>{{end}}

{{if .Unreviewed}}<h2 class="warn">Needs human review ({{len .Unreviewed}})</h2>
<table><tr><th>File</th></tr>
{{range .Unreviewed}}<tr><td class="warn">{{.}}</td></tr>
{{end}}</table>{{else}}<h2 class="ok">All AI-generated files reviewed</h2>{{end}}

<h2>Files</h2>
<table>
<tr><th>File</th><th>Language</th><th>Classification</th><th>Lines</th><th>AI lines</th></tr>
{{range .Report.Files}}<tr><td>{{.Path}}</td><td>{{.Language}}</td><td>{{.Classification}}</td><td>{{.Lines}}</td><td>{{.AILines}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// RenderHTML is a pure function of the report data. The markup stays minimal:
// the dashboard's look is an external concern, the report content is not.
func RenderHTML(report m.ProjectReport) ([]byte, error) {
	view := dashboardView{
		Report:     report,
		Unreviewed: report.UnreviewedFiles,
	}

	if report.Totals.Lines > 0 {
		view.AIPercent = float64(report.Totals.AILines) / float64(report.Totals.Lines) * 100
	}

	for _, class := range m.Classifications {
		if stats, ok := report.ByClassification[class]; ok {
			view.Rows = append(view.Rows, dashboardRow{Class: class, Stats: stats})
		}
	}

	languageNames := make([]string, 0, len(report.ByLanguage))
	for name := range report.ByLanguage {
		languageNames = append(languageNames, name)
	}
	slices.Sort(languageNames)
	for _, name := range languageNames {
		view.Languages = append(view.Languages, languageRow{Name: name, Stats: report.ByLanguage[name]})
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render dashboard: %w", err)
	}

	return buf.Bytes(), nil
}
