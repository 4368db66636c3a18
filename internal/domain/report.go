package domain

import (
	"errors"
	"slices"
	"sort"
	"strings"
	"time"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

// ErrUnreviewedFiles is returned by the CI gate when any file still carries
// REVIEWED-BY-HUMAN: NO. It is a deliberate, loud signal: the caller turns it
// into a non-zero exit code after the report has been written.
var ErrUnreviewedFiles = errors.New("unreviewed AI-generated files present")

// Aggregate reduces one scan run's records into a project report. Everything
// is recomputed from the records; nothing is carried over from earlier runs.
func Aggregate(root m.Path, records []m.FileRecord) m.ProjectReport {
	report := m.ProjectReport{
		Root:             root,
		GeneratedAt:      time.Now().UTC(),
		ByClassification: make(map[m.Classification]m.Totals),
		ByDirectory:      make(map[string]m.Totals),
		ByLanguage:       make(map[string]m.Totals),
		ByCoverageType:   make(map[m.CoverageType]int),
		UnreviewedFiles:  []m.Path{},
		MalformedFiles:   []m.Path{},
		Libraries:        []m.LibrarySummary{},
		Files:            records,
	}

	libraries := make(map[string]*m.LibrarySummary)

	for _, rec := range records {
		if rec.Err != "" {
			report.IOErrors = append(report.IOErrors, m.IOError{Path: rec.Path, Error: rec.Err})
			continue
		}

		report.Totals.Add(rec)

		byClass := report.ByClassification[rec.Classification]
		byClass.Add(rec)
		report.ByClassification[rec.Classification] = byClass

		dir := topLevelDir(rec.Path)
		byDir := report.ByDirectory[dir]
		byDir.Add(rec)
		report.ByDirectory[dir] = byDir

		if rec.Language != "" {
			byLang := report.ByLanguage[rec.Language]
			byLang.Add(rec)
			report.ByLanguage[rec.Language] = byLang
		}

		if rec.Header != nil {
			report.ByCoverageType[rec.Header.Coverage]++

			for _, lib := range rec.Header.Libraries {
				summary := libraries[lib.Name]
				if summary == nil {
					summary = &m.LibrarySummary{Name: lib.Name}
					libraries[lib.Name] = summary
				}

				if lib.Reason != "" && !slices.Contains(summary.Reasons, lib.Reason) {
					summary.Reasons = append(summary.Reasons, lib.Reason)
				}

				summary.Files = append(summary.Files, rec.Path)
			}
		}

		switch rec.Classification {
		case m.ClassUnreviewed:
			report.UnreviewedFiles = append(report.UnreviewedFiles, rec.Path)
		case m.ClassMalformed:
			report.MalformedFiles = append(report.MalformedFiles, rec.Path)
		}
	}

	// Path lists are sorted for reproducible output.
	sortPaths(report.UnreviewedFiles)
	sortPaths(report.MalformedFiles)
	sort.Slice(report.IOErrors, func(i, j int) bool {
		return report.IOErrors[i].Path < report.IOErrors[j].Path
	})

	for _, summary := range libraries {
		sortPaths(summary.Files)
		report.Libraries = append(report.Libraries, *summary)
	}

	sort.Slice(report.Libraries, func(i, j int) bool {
		return report.Libraries[i].Name < report.Libraries[j].Name
	})

	return report
}

// CIDecision is the whole gating logic: pass iff no file is unreviewed. No
// partial-credit thresholds.
func CIDecision(report m.ProjectReport) bool {
	return len(report.UnreviewedFiles) == 0
}

func sortPaths(paths []m.Path) {
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
}

// topLevelDir buckets a relative path by its first directory segment; files
// at the scan root fall under ".".
func topLevelDir(path m.Path) string {
	slashed := strings.ReplaceAll(string(path), "\\", "/")
	if idx := strings.Index(slashed, "/"); idx >= 0 {
		return slashed[:idx]
	}

	return "."
}
