package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

var startCommand = func(cmd *exec.Cmd) error { return cmd.Start() }

// OpenURL opens target with the desktop's default handler (browser, or the player for its own scheme).
//
// Supports macOS, Linux, and Windows platforms.
func OpenURL(target string) error {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("%w: not an absolute URI: %q", ErrInvalidArgument, target)
	}

	var cmd *exec.Cmd
	rt := getRuntime()
	switch rt {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", target)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := startCommand(cmd); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}

	return nil
}
