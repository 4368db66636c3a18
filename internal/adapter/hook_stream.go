package adapter

import (
	"encoding/json"
	"fmt"
	"io"
)

// HookInput is the JSON payload the host agent pipes to the hook on stdin
// for each tool use.
type HookInput struct {
	ToolName  string        `json:"tool_name"`
	ToolInput HookToolInput `json:"tool_input"`
}

// HookToolInput carries the file operation's arguments. Hosts differ on the
// field name for the target, so both spellings are accepted.
type HookToolInput struct {
	FilePath string `json:"file_path"`
	Path     string `json:"path"`
	Content  string `json:"content"`
}

// TargetPath returns whichever path field the host populated.
func (i HookInput) TargetPath() string {
	if i.ToolInput.FilePath != "" {
		return i.ToolInput.FilePath
	}

	return i.ToolInput.Path
}

// IsWrite reports whether the tool use is a new-file write.
func (i HookInput) IsWrite() bool {
	return i.ToolName == "Write"
}

// IsEdit reports whether the tool use is an edit of an existing file.
func (i HookInput) IsEdit() bool {
	return i.ToolName == "Edit" || i.ToolName == "MultiEdit"
}

// ReadHookInput decodes one hook invocation from the host agent.
func ReadHookInput(r io.Reader) (HookInput, error) {
	var input HookInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return HookInput{}, fmt.Errorf("decode hook input: %w", err)
	}

	return input, nil
}
