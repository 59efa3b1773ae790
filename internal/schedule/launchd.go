package schedule

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"
)

// Label identifies the archive sync agent to launchd
const Label = "com.lfm.archive-sync"

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{xml .BinaryPath}}</string>
		<string>archive</string>
		<string>sync</string>
		<string>{{xml .User}}</string>{{if .DBPath}}
		<string>--db</string>
		<string>{{xml .DBPath}}</string>{{end}}
		<string>--log-level</string>
		<string>info</string>
		<string>--log-file</string>
		<string>{{xml .LogPath}}/archive-sync.log</string>
	</array>
	<key>StartInterval</key>
	<integer>{{.Seconds}}</integer>
	<key>RunAtLoad</key>
	<true/>
	<key>StandardOutPath</key>
	<string>{{xml .LogPath}}/archive-sync.out</string>
	<key>StandardErrorPath</key>
	<string>{{xml .LogPath}}/archive-sync.err</string>
	<key>WorkingDirectory</key>
	<string>{{xml .WorkingDirectory}}</string>
</dict>
</plist>
`

// PlistConfig holds the configuration for generating a launchd plist
type PlistConfig struct {
	BinaryPath       string
	User             string
	DBPath           string // Optional: archive path passed as --db
	Interval         time.Duration
	LogPath          string
	WorkingDirectory string
}

// GeneratePlist renders a launchd agent that runs "lfm archive sync"
// every Interval. Values are XML-escaped.
func GeneratePlist(config PlistConfig) (string, error) {
	if config.User == "" {
		return "", fmt.Errorf("user is required")
	}
	if config.Interval < time.Minute {
		return "", fmt.Errorf("interval must be at least a minute, got %v", config.Interval)
	}

	tmpl, err := template.New("plist").Funcs(template.FuncMap{"xml": xmlEscape}).Parse(plistTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse plist template: %w", err)
	}

	data := struct {
		PlistConfig
		Label   string
		Seconds int64
	}{config, Label, int64(config.Interval / time.Second)}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute plist template: %w", err)
	}

	return buf.String(), nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// GetPlistPath returns the path where the plist should be installed
func GetPlistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, "Library", "LaunchAgents", Label+".plist"), nil
}

// GetDefaultLogPath returns the default path for agent logs
func GetDefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "lfm", "logs"), nil
}
