package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Default Last.fm user for now, watch and archive
	User string

	// Output format template for the now command
	// Default: "{{.Artist}} - {{.Name}}"
	OutputFormat string

	// Maximum display width for the now command (0 = unlimited)
	OutputWidth int

	// Scroll text longer than OutputWidth instead of truncating
	Marquee bool

	// Marquee scroll speed (characters per second) and loop separator
	MarqueeSpeed     int
	MarqueeSeparator string

	// Poll interval for the watch command (in seconds)
	PollInterval int

	// Path to the listening archive database
	ArchivePath string

	// Last.fm API settings
	LastFM LastFMConfig

	// Discord Rich Presence for the watch command
	Discord DiscordConfig
}

// LastFMConfig holds Last.fm specific configuration
type LastFMConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DiscordConfig holds Discord Rich Presence settings
type DiscordConfig struct {
	Enabled bool
	AppID   string // Discord application ID owning the presence assets
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	return load(getConfigDir())
}

func load(configDir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetDefault("user", "")
	v.SetDefault("output_format", "{{.Artist}} - {{.Name}}")
	v.SetDefault("output_width", 0)
	v.SetDefault("marquee", false)
	v.SetDefault("marquee_speed", 2)
	v.SetDefault("marquee_separator", " • ")
	v.SetDefault("poll_interval", 5)
	v.SetDefault("archive_path", filepath.Join(configDir, "archive.db"))
	v.SetDefault("lastfm.api_key", "")
	v.SetDefault("lastfm.base_url", "")
	v.SetDefault("lastfm.timeout", "10s")
	v.SetDefault("discord.enabled", false)
	v.SetDefault("discord.app_id", "")

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// LFM_OUTPUT_FORMAT, LFM_LASTFM_API_KEY, ...
	v.SetEnvPrefix("LFM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		User:             v.GetString("user"),
		OutputFormat:     v.GetString("output_format"),
		OutputWidth:      v.GetInt("output_width"),
		Marquee:          v.GetBool("marquee"),
		MarqueeSpeed:     v.GetInt("marquee_speed"),
		MarqueeSeparator: v.GetString("marquee_separator"),
		PollInterval:     v.GetInt("poll_interval"),
		ArchivePath:      v.GetString("archive_path"),
		LastFM: LastFMConfig{
			APIKey:  v.GetString("lastfm.api_key"),
			BaseURL: v.GetString("lastfm.base_url"),
			Timeout: v.GetDuration("lastfm.timeout"),
		},
		Discord: DiscordConfig{
			Enabled: v.GetBool("discord.enabled"),
			AppID:   v.GetString("discord.app_id"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "lfm")

	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.save(getConfigDir())
}

func (c *Config) save(configDir string) error {
	v := viper.New()

	configFile := filepath.Join(configDir, "config.yaml")

	v.Set("user", c.User)
	v.Set("output_format", c.OutputFormat)
	v.Set("output_width", c.OutputWidth)
	v.Set("marquee", c.Marquee)
	v.Set("marquee_speed", c.MarqueeSpeed)
	v.Set("marquee_separator", c.MarqueeSeparator)
	v.Set("poll_interval", c.PollInterval)
	v.Set("archive_path", c.ArchivePath)
	v.Set("lastfm.api_key", c.LastFM.APIKey)
	v.Set("lastfm.base_url", c.LastFM.BaseURL)
	v.Set("lastfm.timeout", c.LastFM.Timeout.String())
	v.Set("discord.enabled", c.Discord.Enabled)
	v.Set("discord.app_id", c.Discord.AppID)

	return v.WriteConfigAs(configFile)
}
