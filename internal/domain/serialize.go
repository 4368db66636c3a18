package domain

import (
	"fmt"
	"strings"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

// Serialize renders a header into dialect-correct comment text. The output is
// canonical: serializing the same header twice produces identical bytes, and
// parsing the output reproduces the header exactly.
func Serialize(header m.Header, dialect m.Dialect) []byte {
	content := contentLines(header)
	wrapped := wrapLines(content, dialect)

	return []byte(strings.Join(wrapped, "\n") + "\n")
}

func contentLines(header m.Header) []string {
	lines := []string{
		separatorLine,
		Banner,
		separatorLine,
		"TYPE: " + coveragePhrase(header.Coverage),
		"REVIEWED-BY-HUMAN: " + reviewedWord(header.ReviewedByHuman),
	}

	lines = appendSymbolSection(lines, sectionMethods, m.KindMethod, header.Methods)
	lines = appendSymbolSection(lines, sectionStructs, m.KindStruct, header.Structs)
	lines = appendSymbolSection(lines, sectionTraits, m.KindTrait, header.Traits)

	if len(header.Libraries) > 0 {
		lines = append(lines, "", sectionLibraries)
		for _, lib := range header.Libraries {
			lines = append(lines, fmt.Sprintf("- %s: %s", lib.Name, lib.Reason))
		}
	}

	return append(lines, separatorLine)
}

// appendSymbolSection emits one detail section, omitting it entirely when
// empty.
func appendSymbolSection(lines []string, title string, kind m.SymbolKind, entries []m.SymbolEntry) []string {
	if len(entries) == 0 {
		return lines
	}

	lines = append(lines, "", title)
	for _, entry := range entries {
		lines = append(lines, "- "+symbolPhrase(kind, entry))
	}

	return lines
}

func symbolPhrase(kind m.SymbolKind, entry m.SymbolEntry) string {
	if entry.Whole {
		return fmt.Sprintf("WHOLE CODE IN THE %s %s", kind, entry.Name)
	}

	return fmt.Sprintf("%d~%d LINE CODE IN THE %s %s", entry.StartLine, entry.EndLine, kind, entry.Name)
}

func coveragePhrase(coverage m.CoverageType) string {
	switch coverage {
	case m.CoverageWhole:
		return phraseWhole
	case m.CoverageAboveHalf:
		return phraseAboveHalf
	default:
		return phraseBelowHalf
	}
}

func reviewedWord(reviewed bool) string {
	if reviewed {
		return "YES"
	}

	return "NO"
}

// wrapLines applies the dialect's comment decoration to the content lines.
func wrapLines(content []string, dialect m.Dialect) []string {
	switch dialect.Family {
	case m.FamilyBlock:
		wrapped := make([]string, 0, len(content)+2)
		wrapped = append(wrapped, dialect.Open)

		for _, line := range content {
			wrapped = append(wrapped, prefixed(" * ", line))
		}

		return append(wrapped, dialect.Close)

	case m.FamilyHTML:
		wrapped := make([]string, 0, len(content)+2)
		wrapped = append(wrapped, dialect.Open)
		wrapped = append(wrapped, content...)

		return append(wrapped, dialect.Close)

	default:
		wrapped := make([]string, 0, len(content))
		for _, line := range content {
			wrapped = append(wrapped, prefixed(dialect.LinePrefix, line))
		}

		return wrapped
	}
}

// prefixed joins prefix and line, trimming the trailing space on blank lines.
func prefixed(prefix, line string) string {
	if line == "" {
		return strings.TrimRight(prefix, " ")
	}

	return prefix + line
}
