package actions

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ShellHandler runs commands in the platform shell
type ShellHandler struct{}

func (h *ShellHandler) IsSupported() bool {
	switch runtime.GOOS {
	case "windows", "darwin", "linux":
		return true
	}
	return false
}

func (h *ShellHandler) command(ctx context.Context, code string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "windows":
		return exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", code), nil
	case "darwin":
		if _, err := exec.LookPath("zsh"); err == nil {
			return exec.CommandContext(ctx, "/bin/zsh", "-c", code), nil
		}
		return exec.CommandContext(ctx, "/bin/bash", "-c", code), nil
	case "linux":
		return exec.CommandContext(ctx, "/bin/sh", "-c", code), nil
	}
	return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}

func (h *ShellHandler) Execute(ctx context.Context, code string) (string, error) {
	cmd, err := h.command(ctx, code)
	if err != nil {
		return "", err
	}
	return runCommand(cmd, "shell")
}

func (h *ShellHandler) Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("empty command")
	}
	if strings.ContainsRune(code, 0) {
		return fmt.Errorf("command contains null bytes")
	}
	if runtime.GOOS == "windows" {
		return nil
	}

	// sh -n parses without executing
	cmd := exec.Command("/bin/sh", "-n", "-c", code)
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

// runCommand runs cmd and returns trimmed stdout, folding stderr into the error
func runCommand(cmd *exec.Cmd, kind string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return strings.TrimSpace(stdout.String()), fmt.Errorf("%s error: %s", kind, msg)
		}
		return strings.TrimSpace(stdout.String()), fmt.Errorf("%s execution failed: %w", kind, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
