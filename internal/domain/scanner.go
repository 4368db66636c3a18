package domain

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"aigcap.dev/pkg/aigcap/internal/adapter"
	m "aigcap.dev/pkg/aigcap/internal/model"
	"aigcap.dev/pkg/aigcap/pkg"
)

// defaultExcludes are directory names never worth scanning, matching the
// protocol's own exclude set. User excludes are added on top.
var defaultExcludes = []string{
	"node_modules", ".git", ".svn", "__pycache__", ".mypy_cache",
	".pytest_cache", "target", "build", "dist", ".next", ".nuxt",
	"vendor", ".venv", "venv", "env", ".env", ".idea", ".vscode",
	"coverage", ".coverage", "htmlcov",
}

// Scanner walks a project tree and classifies every file against the header
// convention. Each scan run owns its own fresh records; nothing is persisted
// or cached between runs.
type Scanner interface {
	Scan(ctx context.Context, root m.Path, exclude []string, parallel int) ([]m.FileRecord, error)
}

type scanner struct {
	fs adapter.SourceFSAdapter
}

// NewScanner constructs a Scanner backed by the provided filesystem adapter.
func NewScanner(fs adapter.SourceFSAdapter) Scanner {
	return &scanner{fs: fs}
}

// Scan enumerates files under root, skipping excluded path segments at any
// depth, and classifies each file. Files are processed in parallel; results
// are reduced into a single sorted slice. A file that cannot be read is
// recorded with its error and the scan continues.
func (s *scanner) Scan(ctx context.Context, root m.Path, exclude []string, parallel int) ([]m.FileRecord, error) {
	info, err := s.fs.FileInfo(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	excludeSet := pkg.NewSegmentSet(defaultExcludes...)
	excludeSet.Add(exclude...)

	paths, err := s.collectPaths(root, excludeSet)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	if parallel < 1 {
		parallel = 1
	}

	records := make([]m.FileRecord, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			records[i] = s.classify(root, path)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	return records, nil
}

// collectPaths gathers every regular file under root that is not excluded.
// Excluded directories are pruned so the walk never descends into them.
func (s *scanner) collectPaths(root m.Path, excludeSet *pkg.SegmentSet) ([]m.Path, error) {
	var paths []m.Path

	err := s.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := s.fs.RelPath(root, m.Path(path))
		if relErr != nil {
			return relErr
		}

		if info.IsDir() {
			if path != string(root) && excludeSet.Matches(string(rel)) {
				return adapter.SkipDir
			}

			return nil
		}

		if excludeSet.Matches(string(rel)) {
			return nil
		}

		paths = append(paths, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

// classify resolves the dialect, parses the header and derives the record for
// one file. rel paths keep aggregates stable regardless of where the scan was
// started from.
func (s *scanner) classify(root, path m.Path) m.FileRecord {
	rel, err := s.fs.RelPath(root, path)
	if err != nil {
		rel = path
	}

	record := m.FileRecord{Path: rel}

	dialect, supported := m.DialectForPath(path)
	if !supported {
		record.Classification = m.ClassUnsupported
		if info, infoErr := s.fs.FileInfo(path); infoErr == nil {
			record.Bytes = info.Size()
		}

		return record
	}

	record.Language = dialect.Language

	content, err := s.fs.ReadFile(path)
	if err != nil {
		record.Err = err.Error()
		return record
	}

	record.Bytes = int64(len(content))
	record.Lines = countLines(content)

	result := Parse(content, dialect)
	switch result.Status {
	case StatusNoHeader:
		record.Classification = m.ClassNoHeader
	case StatusMalformed:
		record.Classification = m.ClassMalformed
		record.MalformReason = result.Reason
	default:
		record.Header = result.Header
		record.AILines = estimateAILines(record.Lines, *result.Header)

		if result.Header.ReviewedByHuman {
			record.Classification = m.ClassReviewed
		} else {
			record.Classification = m.ClassUnreviewed
		}
	}

	return record
}

// countLines counts non-blank lines, the same measure the protocol's
// dashboard uses.
func countLines(content []byte) int {
	count := 0
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}

	return count
}

// estimateAILines turns the self-reported coverage into a line estimate:
// WHOLE takes every line; otherwise partial symbol ranges are summed (plus a
// flat 20 lines per whole-symbol entry) when present, else 75%/25% of the
// file for ABOVE/DOWN.
func estimateAILines(totalLines int, header m.Header) int {
	if header.Coverage == m.CoverageWhole {
		return totalLines
	}

	partial := 0
	wholeSymbols := 0

	for _, section := range [][]m.SymbolEntry{header.Methods, header.Structs, header.Traits} {
		for _, entry := range section {
			if entry.Whole {
				wholeSymbols++
			} else {
				partial += entry.EndLine - entry.StartLine + 1
			}
		}
	}

	if partial > 0 {
		estimate := partial + wholeSymbols*20
		if estimate > totalLines {
			return totalLines
		}

		return estimate
	}

	if header.Coverage == m.CoverageAboveHalf {
		return totalLines * 3 / 4
	}

	return totalLines / 4
}
