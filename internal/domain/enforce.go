package domain

import (
	"fmt"

	m "aigcap.dev/pkg/aigcap/internal/model"
	"aigcap.dev/pkg/aigcap/pkg"
)

// Action is the enforcement verdict for one file operation.
type Action int

const (
	// ActionAllow lets the host agent's operation proceed silently.
	ActionAllow Action = iota
	// ActionBlock rejects a pending write. Only safe pre-write, while nothing
	// has happened yet; always carries a reason so the agent can retry.
	ActionBlock
	// ActionWarn flags an already-landed edit. Post-edit cannot block, so the
	// machine trades strict prevention for fast feedback.
	ActionWarn
)

// Decision is what the host agent's hook receives back.
type Decision struct {
	Action  Action
	Message string
}

func allow() Decision {
	return Decision{Action: ActionAllow}
}

func block(format string, args ...any) Decision {
	return Decision{Action: ActionBlock, Message: fmt.Sprintf(format, args...)}
}

func warn(format string, args ...any) Decision {
	return Decision{Action: ActionWarn, Message: fmt.Sprintf(format, args...)}
}

// skipNames mirrors the protocol's skip list: generated manifests, lockfiles,
// docs and build output are never subject to header enforcement.
var skipNames = pkg.NewSegmentSet(
	"node_modules", ".git", "__pycache__", "dist", "build", "target", "vendor",
	"package.json", "package-lock.json", "yarn.lock", "Cargo.lock", "Cargo.toml",
	"pyproject.toml", "go.mod", "go.sum", "tsconfig.json",
	"CLAUDE.md", "AIGCAP_PROTOCOL.md", "README.md", "CHANGELOG.md", "LICENSE",
	".env", ".gitignore", ".dockerignore",
	"Makefile", "Dockerfile", "docker-compose.yml",
	"__init__.py",
)

// ShouldEnforce reports whether the path falls under the header convention:
// the extension must have a dialect and the path must not be skip-listed.
func ShouldEnforce(path m.Path) bool {
	if _, ok := m.DialectForPath(path); !ok {
		return false
	}

	return !skipNames.Matches(string(path))
}

// PreWrite decides whether a pending new-file write may land. Blocking is a
// distinguished failure outcome, never a silent no-op, so the calling agent
// can correct the header and retry.
func PreWrite(path m.Path, proposedText []byte) Decision {
	if !ShouldEnforce(path) {
		return allow()
	}

	dialect, _ := m.DialectForPath(path)

	result := Parse(proposedText, dialect)
	switch result.State() {
	case StateUnheadered:
		return block("%s: header required. Add the AIGCAP header at the top of the file and retry the write.", path)
	case StateMalformed:
		return block("%s: AIGCAP header is malformed (%s). Fix the header and retry the write.", path, result.Reason)
	case StateReviewed:
		return block("%s: new files must start unreviewed. Write REVIEWED-BY-HUMAN: NO; only humans may set YES.", path)
	default:
		return allow()
	}
}

// PostEdit inspects a file after an edit has already landed. It can only
// warn: the edit mutated persistent state before we were called.
func PostEdit(path m.Path, priorText, newText []byte) Decision {
	if !ShouldEnforce(path) {
		return allow()
	}

	dialect, _ := m.DialectForPath(path)

	newState := Parse(newText, dialect).State()
	if newState == StateUnheadered || newState == StateMalformed {
		return warn("%s: AIGCAP header missing or broken after edit. Restore the header at the top of the file.", path)
	}

	priorState := Parse(priorText, dialect).State()
	if priorState == StateReviewed && newState == StateReviewed {
		return warn("%s: still has REVIEWED-BY-HUMAN: YES after your edit. Flip it back to NO and re-save.", path)
	}

	return allow()
}
