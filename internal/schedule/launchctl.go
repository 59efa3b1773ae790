package schedule

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// domain is the launchd domain of the logged-in user
func domain() string {
	return fmt.Sprintf("gui/%d", os.Getuid())
}

// Load bootstraps the agent at plistPath into the user's launchd domain
func Load(plistPath string) error {
	out, err := exec.Command("launchctl", "bootstrap", domain(), plistPath).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("launchctl bootstrap failed: %s", msg)
		}
		return fmt.Errorf("failed to run launchctl bootstrap: %w", err)
	}
	return nil
}

// Unload removes the agent from launchd. An agent that is not loaded is
// not an error.
func Unload() error {
	out, err := exec.Command("launchctl", "bootout", domain()+"/"+Label).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if strings.Contains(msg, "Could not find service") || strings.Contains(msg, "No such process") {
			return nil
		}
		if msg != "" {
			return fmt.Errorf("launchctl bootout failed: %s", msg)
		}
		return fmt.Errorf("failed to run launchctl bootout: %w", err)
	}
	return nil
}
