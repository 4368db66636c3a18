package model

// Classification is the scanner's per-file bucket.
type Classification string

const (
	// ClassUnsupported covers files whose extension has no dialect mapping.
	ClassUnsupported Classification = "unsupported"
	// ClassNoHeader covers supported files without an AIGCAP header.
	ClassNoHeader Classification = "no_aigcap_header"
	// ClassUnreviewed covers headered files with REVIEWED-BY-HUMAN: NO.
	ClassUnreviewed Classification = "unreviewed"
	// ClassReviewed covers headered files with REVIEWED-BY-HUMAN: YES.
	ClassReviewed Classification = "reviewed"
	// ClassMalformed covers files whose header-shaped block violates the grammar.
	ClassMalformed Classification = "malformed"
)

// Classifications lists every bucket in stable display order.
var Classifications = []Classification{
	ClassReviewed,
	ClassUnreviewed,
	ClassNoHeader,
	ClassMalformed,
	ClassUnsupported,
}

// FileRecord is the per-file result of one scan run. Records are created
// fresh on every scan and never persisted; all cross-run state lives in the
// file's own header text.
type FileRecord struct {
	Path           Path           `json:"path"`
	Language       string         `json:"language,omitempty"`
	Classification Classification `json:"classification"`
	Header         *Header        `json:"header,omitempty"`
	MalformReason  string         `json:"malformReason,omitempty"`
	Lines          int            `json:"lines"`
	Bytes          int64          `json:"bytes"`
	AILines        int            `json:"aiLines"`
	Err            string         `json:"error,omitempty"`
}
