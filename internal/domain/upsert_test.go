package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert_PrependsWhenFileHasNoHeader(t *testing.T) {
	dialect := dialectFor(t, "main.go")
	header := sampleHeader()

	body := "package main\n\nfunc main() {}\n"

	out := Upsert([]byte(body), header, dialect)

	result := Parse(out, dialect)
	require.Equal(t, StatusHeader, result.Status, "reason: %s", result.Reason)
	assert.Equal(t, header, *result.Header)

	// Original content survives, after a blank-line separator.
	assert.True(t, strings.HasSuffix(string(out), "\n"+body))
}

func TestUpsert_ReplacesExistingHeader(t *testing.T) {
	dialect := dialectFor(t, "main.go")

	original := sampleHeader()
	body := "package main\n"

	withHeader := Upsert([]byte(body), original, dialect)

	updated := original
	updated.ReviewedByHuman = true

	out := Upsert(withHeader, updated, dialect)

	result := Parse(out, dialect)
	require.Equal(t, StatusHeader, result.Status)
	assert.True(t, result.Header.ReviewedByHuman)

	// Exactly one banner line in the file.
	assert.Equal(t, 1, strings.Count(string(out), Banner))
	assert.True(t, strings.HasSuffix(string(out), "\n"+body))
}

func TestUpsert_Idempotent(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "block dialect", path: "a.go", body: "package a\n"},
		{name: "hash dialect", path: "a.py", body: "print('hi')\n"},
		{name: "dash dialect", path: "a.sql", body: "SELECT 1;\n"},
		{name: "html dialect", path: "a.html", body: "<p>hi</p>\n"},
		{name: "shebang without trailing newline", path: "a.sh", body: "#!/bin/sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect := dialectFor(t, tt.path)
			header := sampleHeader()

			once := Upsert([]byte(tt.body), header, dialect)
			twice := Upsert(once, header, dialect)

			if !assert.Equal(t, string(once), string(twice)) {
				t.Log(unifiedDiff(t, string(once), string(twice)))
			}
		})
	}
}

func TestUpsert_KeepsShebangFirst(t *testing.T) {
	dialect := dialectFor(t, "deploy.sh")
	header := sampleHeader()

	body := "#!/bin/sh\nset -e\n"

	out := Upsert([]byte(body), header, dialect)

	assert.True(t, strings.HasPrefix(string(out), "#!/bin/sh\n"))
	assert.True(t, strings.HasSuffix(string(out), "\nset -e\n"))

	result := Parse(out, dialect)
	require.Equal(t, StatusHeader, result.Status, "reason: %s", result.Reason)
}

func TestUpsert_TerminatesBareShebangLine(t *testing.T) {
	dialect := dialectFor(t, "deploy.sh")
	header := sampleHeader()

	// No trailing newline: the header must still land on its own line.
	out := Upsert([]byte("#!/bin/sh"), header, dialect)

	assert.True(t, strings.HasPrefix(string(out), "#!/bin/sh\n# "))

	result := Parse(out, dialect)
	require.Equal(t, StatusHeader, result.Status, "reason: %s", result.Reason)
	assert.Equal(t, header, *result.Header)
}

func TestUpsert_ReplacesMalformedHeader(t *testing.T) {
	dialect := dialectFor(t, "a.py")

	broken := strings.Join([]string{
		"# " + separatorLine,
		"# " + Banner,
		"# " + separatorLine,
		"# REVIEWED-BY-HUMAN: NO",
		"# " + separatorLine,
		"",
		"print('hi')",
		"",
	}, "\n")

	require.Equal(t, StatusMalformed, Parse([]byte(broken), dialect).Status)

	out := Upsert([]byte(broken), sampleHeader(), dialect)

	result := Parse(out, dialect)
	require.Equal(t, StatusHeader, result.Status, "reason: %s", result.Reason)
	assert.Equal(t, 1, strings.Count(string(out), Banner))
	assert.Contains(t, string(out), "print('hi')")
}

func TestUpsert_KeepsDocCommentWithItsCode(t *testing.T) {
	dialect := dialectFor(t, "a.go")

	body := "// Package a does things.\npackage a\n"

	out := Upsert([]byte(body), sampleHeader(), dialect)

	// The doc comment is not header-shaped, so the header is prepended and
	// the comment stays with the code it documents.
	assert.True(t, strings.HasSuffix(string(out), "\n"+body))
}
