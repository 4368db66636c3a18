package domain

import (
	m "aigcap.dev/pkg/aigcap/internal/model"
)

// Upsert replaces the file's leading header block with the serialized header,
// or prepends one when the file has none. The BOM/shebang preamble stays
// ahead of the header; the rest of the file is untouched. Calling Upsert
// twice with the same header is byte-identical to calling it once, and a file
// never ends up with more than one header block.
func Upsert(fileText []byte, header m.Header, dialect m.Dialect) []byte {
	serialized := Serialize(header, dialect)

	result := Parse(fileText, dialect)
	if result.Status != StatusNoHeader {
		block := extractLeadingBlock(fileText, dialect)

		out := make([]byte, 0, len(fileText)-(block.end-block.start)+len(serialized))
		out = append(out, fileText[:block.start]...)
		out = append(out, serialized...)
		out = append(out, fileText[block.end:]...)

		return out
	}

	// No header: prepend after the preamble with the required blank-line
	// separator before the original content.
	preEnd := preambleEnd(fileText)

	out := make([]byte, 0, len(fileText)+len(serialized)+2)
	out = append(out, fileText[:preEnd]...)

	// A shebang without a trailing newline would otherwise merge with the
	// header's first line. A bare BOM stays glued to the header.
	if preEnd > bomLen(fileText) && fileText[preEnd-1] != '\n' {
		out = append(out, '\n')
	}

	out = append(out, serialized...)

	if len(fileText) > preEnd {
		out = append(out, '\n')
		out = append(out, fileText[preEnd:]...)
	}

	return out
}
