package model

import "fmt"

// CoverageType is the self-reported estimate of how much of a file is
// AI-authored.
type CoverageType string

const (
	// CoverageWhole marks a file written entirely by the agent.
	CoverageWhole CoverageType = "WHOLE"
	// CoverageAboveHalf marks a file that is more than half AI-authored.
	CoverageAboveHalf CoverageType = "ABOVE_50"
	// CoverageBelowHalf marks a file that is less than half AI-authored.
	CoverageBelowHalf CoverageType = "DOWN_50"
)

// SymbolKind names the header section a symbol entry belongs to.
type SymbolKind string

const (
	KindMethod SymbolKind = "METHOD"
	KindStruct SymbolKind = "STRUCT"
	KindTrait  SymbolKind = "TRAIT"
)

// SymbolEntry declares AI authorship over one named symbol, either wholly or
// for a 1-based line range within the symbol's own body.
type SymbolEntry struct {
	Name      string `json:"name"`
	Whole     bool   `json:"whole"`
	StartLine int    `json:"startLine,omitempty"`
	EndLine   int    `json:"endLine,omitempty"`
}

// LibraryEntry records a dependency the agent chose on its own, with the
// agent's free-text reason.
type LibraryEntry struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Header is the parsed or to-be-written AIGCAP header of one file. A file has
// at most one, always at the top, before any other content. Instances are
// ephemeral: parsed on read, mutated only immediately before a re-serialize,
// and discarded after each operation.
type Header struct {
	Coverage        CoverageType   `json:"coverage"`
	ReviewedByHuman bool           `json:"reviewedByHuman"`
	Methods         []SymbolEntry  `json:"methods,omitempty"`
	Structs         []SymbolEntry  `json:"structs,omitempty"`
	Traits          []SymbolEntry  `json:"traits,omitempty"`
	Libraries       []LibraryEntry `json:"libraries,omitempty"`
}

// Validate checks the header invariants: a known coverage type, at least one
// non-empty detail section, and sane line ranges on partial entries.
func (h Header) Validate() error {
	switch h.Coverage {
	case CoverageWhole, CoverageAboveHalf, CoverageBelowHalf:
	default:
		return fmt.Errorf("unknown coverage type %q", h.Coverage)
	}

	if len(h.Methods)+len(h.Structs)+len(h.Traits)+len(h.Libraries) == 0 {
		return fmt.Errorf("missing detail sections")
	}

	for _, section := range [][]SymbolEntry{h.Methods, h.Structs, h.Traits} {
		for _, entry := range section {
			if entry.Name == "" {
				return fmt.Errorf("symbol entry without a name")
			}

			if entry.Whole {
				continue
			}

			if entry.StartLine < 1 || entry.EndLine < entry.StartLine {
				return fmt.Errorf("symbol %s: invalid line range %d~%d", entry.Name, entry.StartLine, entry.EndLine)
			}
		}
	}

	return nil
}
