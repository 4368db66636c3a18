package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

func headeredText(t *testing.T, path string, reviewed bool) []byte {
	t.Helper()

	dialect := dialectFor(t, path)

	header := sampleHeader()
	header.ReviewedByHuman = reviewed

	return Upsert([]byte("body\n"), header, dialect)
}

func TestShouldEnforce(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "supported source file", path: "internal/service.go", want: true},
		{name: "unsupported extension", path: "README.txt", want: false},
		{name: "skip-listed file name", path: "pkg/go.mod", want: false},
		{name: "skip-listed directory at depth", path: "web/node_modules/lib/a.js", want: false},
		{name: "python module init", path: "app/__init__.py", want: false},
		{name: "markdown docs", path: "docs/guide.md", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldEnforce(m.Path(tt.path)))
		})
	}
}

func TestPreWrite(t *testing.T) {
	path := m.Path("service/handler.py")

	tests := []struct {
		name    string
		text    []byte
		want    Action
		message string
	}{
		{
			name:    "unheadered write is blocked",
			text:    []byte("print('hi')\n"),
			want:    ActionBlock,
			message: "header required",
		},
		{
			name:    "malformed header is blocked with the reason",
			text:    []byte("# ====================\n# " + Banner + "\n# TYPE: WHOLE CODE IN THIS FILE\n"),
			want:    ActionBlock,
			message: "malformed",
		},
		{
			name:    "pre-reviewed write is blocked",
			text:    headeredText(t, string(path), true),
			want:    ActionBlock,
			message: "must start unreviewed",
		},
		{
			name: "unreviewed header is allowed",
			text: headeredText(t, string(path), false),
			want: ActionAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := PreWrite(path, tt.text)
			require.Equal(t, tt.want, decision.Action)

			if tt.message != "" {
				assert.Contains(t, decision.Message, tt.message)
			}

			if tt.want != ActionAllow {
				assert.NotEmpty(t, decision.Message, "a block must always carry a reason")
			}
		})
	}
}

func TestPreWrite_SkipListedPathAllowed(t *testing.T) {
	decision := PreWrite(m.Path("scripts/node_modules/x.js"), []byte("anything"))
	assert.Equal(t, ActionAllow, decision.Action)
}

func TestPostEdit(t *testing.T) {
	path := m.Path("service/handler.py")

	unreviewed := headeredText(t, string(path), false)
	reviewed := headeredText(t, string(path), true)

	tests := []struct {
		name    string
		prior   []byte
		next    []byte
		want    Action
		message string
	}{
		{
			name:    "header removed by edit",
			prior:   unreviewed,
			next:    []byte("print('hi')\n"),
			want:    ActionWarn,
			message: "missing or broken",
		},
		{
			name:    "reviewed flag not flipped back",
			prior:   reviewed,
			next:    reviewed,
			want:    ActionWarn,
			message: "REVIEWED-BY-HUMAN: YES",
		},
		{
			name:  "edit flipped the flag back",
			prior: reviewed,
			next:  unreviewed,
			want:  ActionAllow,
		},
		{
			name:  "unreviewed stays unreviewed",
			prior: unreviewed,
			next:  unreviewed,
			want:  ActionAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := PostEdit(path, tt.prior, tt.next)
			require.Equal(t, tt.want, decision.Action)

			if tt.message != "" {
				assert.Contains(t, decision.Message, tt.message)
			}
		})
	}
}

func TestPostEdit_NeverBlocks(t *testing.T) {
	path := m.Path("a.go")

	// Even the worst input can only warn once the edit has landed.
	decision := PostEdit(path, nil, nil)
	assert.NotEqual(t, ActionBlock, decision.Action)
}
