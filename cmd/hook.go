package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"aigcap.dev/pkg/aigcap/internal/adapter"
	"aigcap.dev/pkg/aigcap/internal/domain"
	m "aigcap.dev/pkg/aigcap/internal/model"
)

// blockExitCode is the exit code host agents interpret as "reject the
// operation and show the message to the model".
const blockExitCode = 2

// hookCmd represents the hook command.
var hookCmd = newHookCmd()

func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Enforce annotation headers on agent file operations",
		Long: `Read one tool invocation as JSON from stdin and check the target file
against the annotation header contract.

Intended to be wired as a PreToolUse/PostToolUse hook in an AI coding
agent. Pending writes with a missing, malformed or pre-reviewed header
exit with code 2 so the host blocks the write; edits that have already
landed can only produce a warning.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			decision, err := runHook(cmd.InOrStdin(), fsAdapter)
			if err != nil {
				return err
			}

			switch decision.Action {
			case domain.ActionBlock:
				fmt.Fprintln(cmd.ErrOrStderr(), decision.Message)
				osExit(blockExitCode)
			case domain.ActionWarn:
				fmt.Fprintln(cmd.OutOrStdout(), decision.Message)
			case domain.ActionAllow:
			}

			return nil
		},
	}

	return cmd
}

// osExit is swapped out in tests.
var osExit = os.Exit

func init() {
	rootCmd.AddCommand(hookCmd)
}

// runHook maps one hook invocation to an enforcement decision. Unknown tools
// and payloads without a target path are allowed through untouched.
func runHook(stdin io.Reader, fs adapter.SourceFSAdapter) (domain.Decision, error) {
	input, err := adapter.ReadHookInput(stdin)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("read hook input: %w", err)
	}

	target := input.TargetPath()
	if target == "" {
		return domain.Decision{Action: domain.ActionAllow}, nil
	}

	path := m.Path(target)

	switch {
	case input.IsWrite():
		return domain.PreWrite(path, []byte(input.ToolInput.Content)), nil

	case input.IsEdit():
		// The edit has already landed, so the on-disk text is the only
		// snapshot available for both sides of the comparison.
		text, err := fs.ReadFile(path)
		if err != nil {
			slog.Warn("Hook could not read edited file", "path", path, "error", err)
			return domain.Decision{Action: domain.ActionAllow}, nil
		}

		return domain.PostEdit(path, text, text), nil
	}

	return domain.Decision{Action: domain.ActionAllow}, nil
}
