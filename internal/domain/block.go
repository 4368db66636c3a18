package domain

import (
	"bytes"
	"regexp"
	"strings"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// headerBlock is the leading comment block of a file, located by byte offsets
// so Upsert can splice a replacement in place.
type headerBlock struct {
	start int
	end   int
	lines []string
}

// bomLen returns the length of the UTF-8 BOM prefix, if any.
func bomLen(text []byte) int {
	if bytes.HasPrefix(text, utf8BOM) {
		return len(utf8BOM)
	}

	return 0
}

// preambleEnd returns the byte offset past an optional BOM and shebang line.
// Both are preserved and re-emitted ahead of the header on write.
func preambleEnd(text []byte) int {
	offset := bomLen(text)

	rest := text[offset:]
	if bytes.HasPrefix(rest, []byte("#!")) {
		if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
			offset += nl + 1
		} else {
			offset = len(text)
		}
	}

	return offset
}

// extractLeadingBlock finds the first comment block after the preamble,
// tolerating blank lines in between. Returns nil when the file does not open
// with a comment in the given dialect.
func extractLeadingBlock(text []byte, dialect m.Dialect) *headerBlock {
	offset := preambleEnd(text)

	for offset < len(text) {
		lineEnd := lineEndAt(text, offset)
		line := strings.TrimSpace(string(text[offset:trimNewline(text, offset, lineEnd)]))

		if line == "" {
			offset = lineEnd
			continue
		}

		if dialect.IsBlock() {
			if !strings.HasPrefix(line, dialect.Open) {
				return nil
			}

			return collectDelimited(text, offset, dialect.Open, closeToken(dialect))
		}

		marker := lineMarker(dialect)
		if !strings.HasPrefix(line, marker) {
			return nil
		}

		return collectPrefixed(text, offset, marker)
	}

	return nil
}

func closeToken(dialect m.Dialect) string {
	return strings.TrimSpace(dialect.Close)
}

func lineMarker(dialect m.Dialect) string {
	if dialect.Family == m.FamilyDash {
		return "--"
	}

	return "#"
}

// collectDelimited consumes lines until one contains the closing token. An
// unterminated comment runs to end of file; the grammar check downstream
// decides whether it is header-shaped.
func collectDelimited(text []byte, start int, opening, closing string) *headerBlock {
	block := &headerBlock{start: start}
	offset := start

	for offset < len(text) {
		lineEnd := lineEndAt(text, offset)
		line := string(text[offset:trimNewline(text, offset, lineEnd)])
		block.lines = append(block.lines, line)

		first := offset == start
		offset = lineEnd

		closeIdx := strings.Index(line, closing)
		if closeIdx < 0 {
			continue
		}

		if first {
			// On the opening line the closing token only counts when it
			// appears after the opener (a one-line comment).
			openIdx := strings.Index(line, opening)
			if closeIdx < openIdx+len(opening) {
				continue
			}
		}

		break
	}

	block.end = offset

	return block
}

// collectPrefixed consumes consecutive lines carrying the per-line marker.
func collectPrefixed(text []byte, start int, marker string) *headerBlock {
	block := &headerBlock{start: start}
	offset := start

	for offset < len(text) {
		lineEnd := lineEndAt(text, offset)
		line := string(text[offset:trimNewline(text, offset, lineEnd)])

		if !strings.HasPrefix(strings.TrimSpace(line), marker) {
			break
		}

		block.lines = append(block.lines, line)
		offset = lineEnd
	}

	block.end = offset

	return block
}

func lineEndAt(text []byte, offset int) int {
	if nl := bytes.IndexByte(text[offset:], '\n'); nl >= 0 {
		return offset + nl + 1
	}

	return len(text)
}

// trimNewline returns the end offset of the line content, excluding \n and \r.
func trimNewline(text []byte, start, lineEnd int) int {
	end := lineEnd
	if end > start && text[end-1] == '\n' {
		end--
	}

	if end > start && text[end-1] == '\r' {
		end--
	}

	return end
}

var (
	reBlockOpen  = regexp.MustCompile(`^/\*+\s?`)
	reBlockClose = regexp.MustCompile(`\*+/\s*$`)
	reBlockLine  = regexp.MustCompile(`^\*+\s?`)
	reHashLine   = regexp.MustCompile(`^#+\s?`)
	reDashLine   = regexp.MustCompile(`^-{2,}\s?`)
	reHTMLOpen   = regexp.MustCompile(`^<!--\s?`)
	reHTMLClose  = regexp.MustCompile(`\s?-->\s*$`)
)

// cleanLines strips the dialect's comment decoration from every block line so
// the grammar sees plain header text.
func (b *headerBlock) cleanLines(dialect m.Dialect) []string {
	cleaned := make([]string, 0, len(b.lines))

	for _, raw := range b.lines {
		line := strings.TrimSpace(raw)

		switch dialect.Family {
		case m.FamilyBlock:
			line = reBlockOpen.ReplaceAllString(line, "")
			line = reBlockClose.ReplaceAllString(line, "")
			line = reBlockLine.ReplaceAllString(line, "")
		case m.FamilyHash:
			line = reHashLine.ReplaceAllString(line, "")
		case m.FamilyDash:
			line = reDashLine.ReplaceAllString(line, "")
		case m.FamilyHTML:
			line = reHTMLOpen.ReplaceAllString(line, "")
			line = reHTMLClose.ReplaceAllString(line, "")
		}

		cleaned = append(cleaned, strings.TrimSpace(line))
	}

	return cleaned
}
