package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentSetMatches(t *testing.T) {
	set := NewSegmentSet("node_modules", "vendor", ".git")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"top level", "vendor/lib.go", true},
		{"nested", "src/app/node_modules/pkg/index.js", true},
		{"base name", "src/.git", true},
		{"no match", "src/app/main.go", false},
		{"substring is not a segment", "src/vendored/main.go", false},
		{"windows separators", `src\vendor\lib.go`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Matches(tt.path))
		})
	}
}

func TestSegmentSetAdd(t *testing.T) {
	set := NewSegmentSet()
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Matches("dist/app.js"))

	set.Add("dist", "", "  ")
	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Matches("dist/app.js"))
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		list string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "vendor", []string{"vendor"}},
		{"multiple with spaces", " vendor , dist,node_modules ", []string{"vendor", "dist", "node_modules"}},
		{"trailing comma", "vendor,", []string{"vendor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.list))
		})
	}
}
