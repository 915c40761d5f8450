package actions

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// AppleScriptHandler runs AppleScript through osascript on macOS
type AppleScriptHandler struct{}

func (h *AppleScriptHandler) IsSupported() bool {
	return runtime.GOOS == "darwin"
}

func (h *AppleScriptHandler) Execute(ctx context.Context, code string) (string, error) {
	if !h.IsSupported() {
		return "", fmt.Errorf("AppleScript is only supported on macOS")
	}
	return runCommand(exec.CommandContext(ctx, "osascript", "-e", code), "AppleScript")
}

func (h *AppleScriptHandler) Validate(code string) error {
	if !h.IsSupported() {
		return fmt.Errorf("AppleScript validation only available on macOS")
	}

	cmd := exec.Command("osacompile", "-o", "/dev/null", "-e", code)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("syntax error: %s", msg)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
