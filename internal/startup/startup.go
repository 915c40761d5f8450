// Package startup registers the app to launch at login.
package startup

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	appName  = "GopherMPD"
	appLabel = "com.pixpmusic.gophermpd"
)

type launcher interface {
	enable(execPath string) error
	disable() error
	enabled() bool
}

func current() (launcher, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		return fileEntry{
			path:   filepath.Join(home, "Library", "LaunchAgents", appLabel+".plist"),
			render: launchAgent,
		}, nil
	case "linux":
		dir := os.Getenv("XDG_CONFIG_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(home, ".config")
		}
		return fileEntry{
			path:   filepath.Join(dir, "autostart", "gopher-mpd.desktop"),
			render: desktopEntry,
		}, nil
	case "windows":
		return runKey{}, nil
	}
	return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}

// Enable registers the running executable to launch at login
func Enable() error {
	l, err := current()
	if err != nil {
		return err
	}
	execPath, err := os.Executable()
	if err != nil {
		return err
	}
	return l.enable(execPath)
}

// Disable removes the login registration
func Disable() error {
	l, err := current()
	if err != nil {
		return err
	}
	return l.disable()
}

// IsEnabled reports whether the app is registered to launch at login
func IsEnabled() bool {
	l, err := current()
	return err == nil && l.enabled()
}

// fileEntry is a launch agent or autostart file rendered from the executable path.
type fileEntry struct {
	path   string
	render func(execPath string) string
}

func (f fileEntry) enable(execPath string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(f.render(execPath)), 0644)
}

func (f fileEntry) disable() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f fileEntry) enabled() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

func launchAgent(execPath string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
        <string>%s</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`, appLabel, execPath)
}

func desktopEntry(execPath string) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Akai MPD226 controller mapper
Exec=%s
Hidden=false
NoDisplay=false
X-GNOME-Autostart-enabled=true
`, appName, execPath)
}

// runKey registers under the current user's Run key with reg.exe.
type runKey struct{}

const runKeyPath = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (runKey) enable(execPath string) error {
	return exec.Command("reg", "add", runKeyPath, "/v", appName, "/t", "REG_SZ", "/d", execPath, "/f").Run()
}

func (runKey) disable() error {
	out, err := exec.Command("reg", "delete", runKeyPath, "/v", appName, "/f").CombinedOutput()
	if err != nil && !strings.Contains(string(out), "unable to find") {
		return err
	}
	return nil
}

func (runKey) enabled() bool {
	return exec.Command("reg", "query", runKeyPath, "/v", appName).Run() == nil
}
