package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/lfm/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the lfm configuration",
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key KEY",
	Short: "Save the Last.fm API key",
	Long: `Save the Last.fm API key to ~/.config/lfm/config.yaml.

You can get an API key from: https://www.last.fm/api/account/create`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(args[0])
		if key == "" {
			return fmt.Errorf("API key must not be empty")
		}
		return updateConfig(cmd, func(cfg *config.Config) { cfg.LastFM.APIKey = key })
	},
}

var configSetUserCmd = &cobra.Command{
	Use:   "set-user USER",
	Short: "Save the default Last.fm user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(cmd, func(cfg *config.Config) { cfg.User = args[0] })
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if jsonOutput {
			shown := *cfg
			shown.LastFM.APIKey = maskKey(shown.LastFM.APIKey)
			return printJSON(cmd.OutOrStdout(), shown)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config file:   %s\n", filepath.Join(config.GetConfigDir(), "config.yaml"))
		fmt.Fprintf(out, "user:          %s\n", cfg.User)
		fmt.Fprintf(out, "api key:       %s\n", maskKey(cfg.LastFM.APIKey))
		if cfg.LastFM.BaseURL != "" {
			fmt.Fprintf(out, "base url:      %s\n", cfg.LastFM.BaseURL)
		}
		fmt.Fprintf(out, "timeout:       %s\n", cfg.LastFM.Timeout)
		fmt.Fprintf(out, "poll interval: %ds\n", cfg.PollInterval)
		fmt.Fprintf(out, "archive:       %s\n", cfg.ArchivePath)
		fmt.Fprintf(out, "output format: %s\n", cfg.OutputFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetKeyCmd, configSetUserCmd, configShowCmd)
}

// updateConfig loads the config, applies fn and writes it back
func updateConfig(cmd *cobra.Command, fn func(*config.Config)) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fn(cfg)

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved to %s\n", filepath.Join(config.GetConfigDir(), "config.yaml"))
	return nil
}

// maskKey hides all but the last four characters of an API key
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
