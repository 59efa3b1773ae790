package schedule

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePlist(t *testing.T) {
	plist, err := GeneratePlist(PlistConfig{
		BinaryPath:       "/usr/local/bin/lfm",
		User:             "rj",
		Interval:         time.Hour,
		LogPath:          "/Users/rj/.local/share/lfm/logs",
		WorkingDirectory: "/Users/rj",
	})
	require.NoError(t, err)

	assert.Contains(t, plist, "<string>"+Label+"</string>")
	assert.Contains(t, plist, "<string>/usr/local/bin/lfm</string>\n\t\t<string>archive</string>\n\t\t<string>sync</string>\n\t\t<string>rj</string>")
	assert.Contains(t, plist, "<integer>3600</integer>")
	assert.Contains(t, plist, "/Users/rj/.local/share/lfm/logs/archive-sync.log")
	assert.NotContains(t, plist, "--db")
	assert.NotContains(t, plist, "KeepAlive")

	// The document must be well-formed
	dec := xml.NewDecoder(strings.NewReader(plist))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
}

func TestGeneratePlist_DBPath(t *testing.T) {
	plist, err := GeneratePlist(PlistConfig{
		BinaryPath: "/usr/local/bin/lfm",
		User:       "rj",
		DBPath:     "/Volumes/Data/plays.db",
		Interval:   30 * time.Minute,
	})
	require.NoError(t, err)

	assert.Contains(t, plist, "<string>--db</string>\n\t\t<string>/Volumes/Data/plays.db</string>")
	assert.Contains(t, plist, "<integer>1800</integer>")
}

func TestGeneratePlist_EscapesValues(t *testing.T) {
	plist, err := GeneratePlist(PlistConfig{
		BinaryPath: "/Users/r&j/bin/lfm",
		User:       "<rj>",
		Interval:   time.Hour,
	})
	require.NoError(t, err)

	assert.Contains(t, plist, "/Users/r&amp;j/bin/lfm")
	assert.Contains(t, plist, "&lt;rj&gt;")
	assert.NotContains(t, plist, "<rj>")
}

func TestGeneratePlist_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config PlistConfig
	}{
		{name: "missing user", config: PlistConfig{BinaryPath: "/bin/lfm", Interval: time.Hour}},
		{name: "interval too short", config: PlistConfig{BinaryPath: "/bin/lfm", User: "rj", Interval: 30 * time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GeneratePlist(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestGetPlistPath(t *testing.T) {
	t.Setenv("HOME", "/Users/rj")

	path, err := GetPlistPath()
	require.NoError(t, err)
	assert.Equal(t, "/Users/rj/Library/LaunchAgents/"+Label+".plist", path)
}
