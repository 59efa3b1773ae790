package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jfmyers9/lfm/internal/schedule"
	"github.com/spf13/cobra"
)

var archiveInstallCmd = &cobra.Command{
	Use:   "install [USER]",
	Short: "Sync the archive periodically with a launchd agent",
	Long: `Install a launchd agent (macOS) that runs 'lfm archive sync' on a schedule.

This command will:
  - Generate a launchd plist that syncs USER every --every interval
  - Install it to ~/Library/LaunchAgents/
  - Load the agent with launchctl

The agent reads the API key from ~/.config/lfm/config.yaml, so set it
with 'lfm config set-key' first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArchiveInstall,
}

var archiveUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the archive sync launchd agent",
	Args:  cobra.NoArgs,
	RunE:  runArchiveUninstall,
}

func init() {
	archiveCmd.AddCommand(archiveInstallCmd, archiveUninstallCmd)

	archiveInstallCmd.Flags().Duration("every", time.Hour, "Time between syncs")
}

func runArchiveInstall(cmd *cobra.Command, args []string) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("archive install needs launchd (macOS); schedule 'lfm archive sync' with cron instead")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	user, err := userArg(args, a.cfg.User)
	if err != nil {
		return err
	}
	every, _ := cmd.Flags().GetDuration("every")

	binaryPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	binaryPath, err = filepath.EvalSymlinks(binaryPath)
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	logPath, err := schedule.GetDefaultLogPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logPath, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	plist, err := schedule.GeneratePlist(schedule.PlistConfig{
		BinaryPath:       binaryPath,
		User:             user,
		DBPath:           archiveDBPath,
		Interval:         every,
		LogPath:          logPath,
		WorkingDirectory: home,
	})
	if err != nil {
		return fmt.Errorf("failed to generate plist: %w", err)
	}

	plistPath, err := schedule.GetPlistPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(plistPath), 0755); err != nil {
		return fmt.Errorf("failed to create LaunchAgents directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(plistPath); err == nil {
		fmt.Fprintln(out, "Agent is already installed. Replacing it...")
		if err := schedule.Unload(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to unload existing agent")
		}
	}

	if err := os.WriteFile(plistPath, []byte(plist), 0644); err != nil {
		return fmt.Errorf("failed to write plist file: %w", err)
	}
	fmt.Fprintf(out, "✓ Installed plist to %s\n", plistPath)

	if err := schedule.Load(plistPath); err != nil {
		return fmt.Errorf("failed to load agent: %w", err)
	}

	fmt.Fprintf(out, "✓ Syncing %s every %s\n", user, every)
	fmt.Fprintf(out, "✓ Logs will be written to %s\n", logPath)
	fmt.Fprintln(out, "\nTo uninstall, run:\n  lfm archive uninstall")
	return nil
}

func runArchiveUninstall(cmd *cobra.Command, args []string) error {
	plistPath, err := schedule.GetPlistPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(plistPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "Agent is not installed (plist not found)")
		return nil
	}

	if err := schedule.Unload(); err != nil {
		fmt.Fprintf(out, "Warning: %v\nContinuing with plist removal...\n", err)
	} else {
		fmt.Fprintln(out, "✓ Agent stopped")
	}

	if err := os.Remove(plistPath); err != nil {
		return fmt.Errorf("failed to remove plist file: %w", err)
	}
	fmt.Fprintf(out, "✓ Removed plist from %s\n", plistPath)
	return nil
}
