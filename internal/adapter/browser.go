package adapter

import (
	"fmt"
	"os/exec"
	"runtime"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

// BrowserOpener opens a local file in the user's browser. Kept behind an
// interface so the workflow can be tested without spawning processes.
type BrowserOpener interface {
	Open(path m.Path) error
}

type localBrowserOpener struct{}

// NewBrowserOpener constructs the platform browser opener.
func NewBrowserOpener() BrowserOpener {
	return &localBrowserOpener{}
}

// Open launches the default browser on the given file. Failure to open is
// not fatal to a scan; callers log and move on.
func (o *localBrowserOpener) Open(path m.Path) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", string(path))
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", string(path))
	default:
		cmd = exec.Command("xdg-open", string(path))
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}

	return nil
}
