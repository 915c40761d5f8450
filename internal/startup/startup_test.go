package startup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileEntryLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autostart", "gopher-mpd.desktop")
	entry := fileEntry{path: path, render: desktopEntry}

	assert.False(t, entry.enabled())
	require.NoError(t, entry.disable(), "disabling twice is fine")

	require.NoError(t, entry.enable("/opt/gopher-mpd/bin/gopher-mpd"))
	assert.True(t, entry.enabled())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=/opt/gopher-mpd/bin/gopher-mpd")
	assert.Contains(t, string(data), "Name=GopherMPD")

	require.NoError(t, entry.disable())
	assert.False(t, entry.enabled())
}

func TestLaunchAgentNamesExecutable(t *testing.T) {
	plist := launchAgent("/Applications/GopherMPD.app/Contents/MacOS/gopher-mpd")
	assert.Contains(t, plist, "<string>com.pixpmusic.gophermpd</string>")
	assert.Contains(t, plist, "<string>/Applications/GopherMPD.app/Contents/MacOS/gopher-mpd</string>")
}
