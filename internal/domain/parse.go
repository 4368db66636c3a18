// Package domain implements the AIGCAP header grammar, the write/edit
// enforcement rules, and the project coverage scanner.
package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

// Banner is the literal line that identifies an AIGCAP header.
const Banner = "THIS FILE INCLUDES AI GENERATED CODE"

// separatorLine frames the banner and closes the header block.
var separatorLine = strings.Repeat("=", 64)

// Section titles, in the fixed order they are serialized.
const (
	sectionMethods   = "METHOD(FUNCTIONS):"
	sectionStructs   = "STRUCTS(OBJECTS):"
	sectionTraits    = "TRAIT(INTERFACE):"
	sectionLibraries = "IMPORTED LIBRARY:"
)

// Coverage type phrases as they appear on the TYPE line.
const (
	phraseWhole     = "WHOLE CODE IN THIS FILE"
	phraseAboveHalf = "ABOVE 50% IN THIS FILE"
	phraseBelowHalf = "DOWN 50% IN THIS FILE"
)

// ParseStatus tags the outcome of parsing a file's leading text.
type ParseStatus int

const (
	// StatusNoHeader means no header-shaped comment block was found.
	StatusNoHeader ParseStatus = iota
	// StatusHeader means a well-formed header was extracted.
	StatusHeader
	// StatusMalformed means a header-shaped block violates the grammar.
	// Never folded into NoHeader: a broken header must not pass as
	// "no header required yet".
	StatusMalformed
)

// ParseResult is the outcome of Parse. Diagnostics carry low-severity notes
// about entry lines that were dropped without failing the parse.
type ParseResult struct {
	Status      ParseStatus
	Header      *m.Header
	Reason      string
	Diagnostics []string
}

// State maps a parse result onto the enforcement state machine's states.
type State int

const (
	StateUnheadered State = iota
	StateUnreviewed
	StateReviewed
	StateMalformed
)

// State derives the enforcement state from the parse result.
func (r ParseResult) State() State {
	switch r.Status {
	case StatusNoHeader:
		return StateUnheadered
	case StatusMalformed:
		return StateMalformed
	default:
		if r.Header.ReviewedByHuman {
			return StateReviewed
		}

		return StateUnreviewed
	}
}

var (
	reType = regexp.MustCompile(
		`(?i)TYPE\s*:\s*(WHOLE\s+CODE\s+IN\s+THIS\s+FILE|ABOVE\s+50%?\s+IN\s+THIS\s+FILE|DOWN\s+50%?\s+IN\s+THIS\s+FILE)`)
	reReviewed = regexp.MustCompile(`(?i)REVIEWED-BY-HUMAN\s*:\s*(YES|NO)`)
	reWhole    = regexp.MustCompile(`(?i)^WHOLE\s+CODE\s+IN\s+THE\s+(METHOD|STRUCT|TRAIT)\s+(\S+)$`)
	rePartial  = regexp.MustCompile(`(?i)^(\d+)\s*~\s*(\d+)\s+LINE\s+CODE\s+IN\s+THE\s+(METHOD|STRUCT|TRAIT)\s+(\S+)$`)
	reLibrary  = regexp.MustCompile(`^(\S+?)\s*:\s*(.+)$`)
)

// Parse extracts the AIGCAP header from fileText, if any. The dialect decides
// how the leading comment block is delimited. A leading comment that carries
// neither the banner nor a separator line is ordinary code documentation and
// yields NoHeader.
func Parse(fileText []byte, dialect m.Dialect) ParseResult {
	block := extractLeadingBlock(fileText, dialect)
	if block == nil {
		return ParseResult{Status: StatusNoHeader}
	}

	lines := block.cleanLines(dialect)

	if !containsLine(lines, Banner) {
		if containsSeparator(lines) {
			return malformed("missing banner")
		}

		return ParseResult{Status: StatusNoHeader}
	}

	return parseGrammar(lines)
}

func malformed(reason string) ParseResult {
	return ParseResult{Status: StatusMalformed, Reason: reason}
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == want {
			return true
		}
	}

	return false
}

func containsSeparator(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, "====") {
			return true
		}
	}

	return false
}

// parseGrammar matches the cleaned header lines against the grammar.
func parseGrammar(lines []string) ParseResult {
	joined := strings.Join(lines, "\n")

	typeMatch := reType.FindStringSubmatch(joined)
	if typeMatch == nil {
		return malformed("missing type")
	}

	reviewedMatch := reReviewed.FindStringSubmatch(joined)
	if reviewedMatch == nil {
		return malformed("missing review flag")
	}

	header := &m.Header{
		Coverage:        coverageFromPhrase(typeMatch[1]),
		ReviewedByHuman: strings.EqualFold(reviewedMatch[1], "YES"),
	}

	diags := parseSections(lines, header)

	if err := header.Validate(); err != nil {
		return malformed(err.Error())
	}

	return ParseResult{Status: StatusHeader, Header: header, Diagnostics: diags}
}

func coverageFromPhrase(phrase string) m.CoverageType {
	upper := strings.ToUpper(phrase)

	switch {
	case strings.Contains(upper, "WHOLE"):
		return m.CoverageWhole
	case strings.Contains(upper, "ABOVE"):
		return m.CoverageAboveHalf
	default:
		return m.CoverageBelowHalf
	}
}

// parseSections walks the header lines, tracking the current section and
// collecting bulleted entries. An unparseable entry inside a recognized
// section is dropped with a diagnostic; the section and document still parse.
func parseSections(lines []string, header *m.Header) []string {
	var diags []string

	var section m.SymbolKind

	inLibraries := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "METHOD") || strings.HasPrefix(line, "FUNCTION"):
			section, inLibraries = m.KindMethod, false
			continue
		case strings.HasPrefix(line, "STRUCT") || strings.HasPrefix(line, "OBJECT"):
			section, inLibraries = m.KindStruct, false
			continue
		case strings.HasPrefix(line, "TRAIT") || strings.HasPrefix(line, "INTERFACE"):
			section, inLibraries = m.KindTrait, false
			continue
		case strings.HasPrefix(line, "IMPORTED"):
			section, inLibraries = "", true
			continue
		}

		if !strings.HasPrefix(line, "-") {
			continue
		}

		entry := strings.TrimSpace(strings.TrimPrefix(line, "-"))

		if inLibraries {
			if lib := reLibrary.FindStringSubmatch(entry); lib != nil {
				header.Libraries = append(header.Libraries, m.LibraryEntry{Name: lib[1], Reason: strings.TrimSpace(lib[2])})
			} else {
				diags = append(diags, fmt.Sprintf("dropped library entry %q", entry))
			}

			continue
		}

		if section == "" {
			continue
		}

		symbol, ok := parseSymbolEntry(entry, section)
		if !ok {
			diags = append(diags, fmt.Sprintf("dropped %s entry %q", strings.ToLower(string(section)), entry))
			continue
		}

		appendSymbol(header, section, symbol)
	}

	return diags
}

func parseSymbolEntry(entry string, section m.SymbolKind) (m.SymbolEntry, bool) {
	if match := reWhole.FindStringSubmatch(entry); match != nil {
		if !strings.EqualFold(match[1], string(section)) {
			return m.SymbolEntry{}, false
		}

		return m.SymbolEntry{Name: match[2], Whole: true}, true
	}

	match := rePartial.FindStringSubmatch(entry)
	if match == nil {
		return m.SymbolEntry{}, false
	}

	if !strings.EqualFold(match[3], string(section)) {
		return m.SymbolEntry{}, false
	}

	start, err := strconv.Atoi(match[1])
	if err != nil {
		return m.SymbolEntry{}, false
	}

	end, err := strconv.Atoi(match[2])
	if err != nil {
		return m.SymbolEntry{}, false
	}

	if start < 1 || end < start {
		return m.SymbolEntry{}, false
	}

	return m.SymbolEntry{Name: match[4], StartLine: start, EndLine: end}, true
}

func appendSymbol(header *m.Header, section m.SymbolKind, entry m.SymbolEntry) {
	switch section {
	case m.KindMethod:
		header.Methods = append(header.Methods, entry)
	case m.KindStruct:
		header.Structs = append(header.Structs, entry)
	case m.KindTrait:
		header.Traits = append(header.Traits, entry)
	}
}
