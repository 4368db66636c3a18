package model

import "time"

// Totals accumulates count and size figures over a set of file records.
type Totals struct {
	Files   int   `json:"files"`
	Lines   int   `json:"lines"`
	Bytes   int64 `json:"bytes"`
	AILines int   `json:"aiLines"`
}

// Add folds a single record into the totals.
func (t *Totals) Add(rec FileRecord) {
	t.Files++
	t.Lines += rec.Lines
	t.Bytes += rec.Bytes
	t.AILines += rec.AILines
}

// LibrarySummary rolls one AI-selected library up across every file whose
// header declares it. Reasons are deduplicated, files sorted.
type LibrarySummary struct {
	Name    string   `json:"name"`
	Reasons []string `json:"reasons,omitempty"`
	Files   []Path   `json:"files"`
}

// IOError records a file that could not be read. The scan continues for the
// remaining files; the report notes the failure separately.
type IOError struct {
	Path  Path   `json:"path"`
	Error string `json:"error"`
}

// ProjectReport is the aggregate of one scan run, recomputed from scratch on
// every run and never incrementally updated.
type ProjectReport struct {
	Root             Path                      `json:"root"`
	GeneratedAt      time.Time                 `json:"generatedAt"`
	Totals           Totals                    `json:"totals"`
	ByClassification map[Classification]Totals `json:"byClassification"`
	ByDirectory      map[string]Totals         `json:"byDirectory"`
	ByLanguage       map[string]Totals         `json:"byLanguage"`
	ByCoverageType   map[CoverageType]int      `json:"byCoverageType"`
	Libraries        []LibrarySummary          `json:"libraries"`
	UnreviewedFiles  []Path                    `json:"unreviewedFiles"`
	MalformedFiles   []Path                    `json:"malformedFiles"`
	IOErrors         []IOError                 `json:"ioErrors,omitempty"`
	Files            []FileRecord              `json:"files"`
}

// Count returns how many files fell into the given classification.
func (r ProjectReport) Count(c Classification) int {
	return r.ByClassification[c].Files
}
