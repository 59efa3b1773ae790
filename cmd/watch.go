package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jfmyers9/lfm/internal/archive"
	"github.com/jfmyers9/lfm/internal/discord"
	"github.com/jfmyers9/lfm/internal/tui"
	"github.com/jfmyers9/lfm/internal/watch"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [USER]",
	Short: "Watch a Last.fm user's listening live",
	Long: `Watch what a Last.fm user is listening to.

By default a terminal dashboard shows the now-playing track, the user's
profile and the plays seen since the dashboard started. Press 'q' or
Esc to quit.

With --discord (or discord.enabled in the config file), the track is
also shown as Discord Rich Presence. This needs discord.app_id.

With --plain, one line is printed each time the user's latest track
changes, which is handy for piping into other tools.

USER defaults to the "user" setting in ~/.config/lfm/config.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Bool("plain", false, "Print track changes as lines instead of the dashboard")
	watchCmd.Flags().DurationP("interval", "i", 0, "Poll interval (overrides poll_interval in config)")
	watchCmd.Flags().Bool("discord", false, "Mirror the now-playing track to Discord Rich Presence (overrides config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")

	// Console logs would draw over the dashboard
	if !plain && logFile == "" {
		prev := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.Disabled)
		defer zerolog.SetGlobalLevel(prev)
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	user, err := userArg(args, a.cfg.User)
	if err != nil {
		return err
	}

	interval := time.Duration(a.cfg.PollInterval) * time.Second
	if d, _ := cmd.Flags().GetDuration("interval"); d > 0 {
		interval = d
	}
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", interval)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	poller := watch.NewPoller(a.client.User(), user, interval, a.logger)
	polled := make(chan watch.Update, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- poller.Run(ctx, polled)
	}()

	var updates <-chan watch.Update = polled
	if useDiscord(cmd, a) {
		outs := watch.Tee(ctx, polled, 2)
		updates = outs[0]
		presence := discord.New(a.cfg.Discord.AppID, user, a.logger)
		go presence.Run(ctx, outs[1])
	}

	if plain {
		printUpdates(ctx, cmd.OutOrStdout(), updates)
		cancel()
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	dashboard := tui.NewWithConfig(tui.Config{
		RefreshRate: tui.DefaultConfig().RefreshRate,
		User:        user,
	})

	profile, err := a.client.User().GetInfo(ctx, user)
	if err != nil {
		a.logger.Warn().Err(err).Str("user", user).Msg("Failed to load profile")
	} else {
		dashboard.SetUser(profile)
	}

	if n, ok := archivedCount(ctx, a.cfg.ArchivePath, user); ok {
		dashboard.SetArchivedCount(n)
	}

	runErr := dashboard.Run(ctx, updates)
	cancel()
	<-errCh
	return runErr
}

// useDiscord reports whether presence is requested and configured
func useDiscord(cmd *cobra.Command, a *app) bool {
	enabled := a.cfg.Discord.Enabled
	if cmd.Flags().Changed("discord") {
		enabled, _ = cmd.Flags().GetBool("discord")
	}
	if enabled && a.cfg.Discord.AppID == "" {
		a.logger.Warn().Msg("Discord presence needs discord.app_id in the config file")
		return false
	}
	return enabled
}

// printUpdates writes a line per track change until ctx is done
func printUpdates(ctx context.Context, w io.Writer, updates <-chan watch.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if line, ok := updateLine(u); ok {
				fmt.Fprintln(w, line)
			}
		}
	}
}

// updateLine describes a poll result, reporting false when there is nothing new
func updateLine(u watch.Update) (string, bool) {
	switch {
	case u.Err != nil:
		return fmt.Sprintf("! %v", u.Err), true
	case !u.Changed || u.Track == nil:
		return "", false
	case u.Playing():
		return fmt.Sprintf("▶ %s - %s", u.Track.Artist.Name(), u.Track.Name), true
	default:
		return fmt.Sprintf("  %s - %s (%s)", u.Track.Artist.Name(), u.Track.Name, when(u.Track.PlayedAt)), true
	}
}

// archivedCount reads the number of archived plays when an archive exists
func archivedCount(ctx context.Context, path, user string) (int, bool) {
	if path == "" {
		return 0, false
	}
	if _, err := os.Stat(path); err != nil {
		return 0, false
	}
	store, err := archive.Open(path)
	if err != nil {
		return 0, false
	}
	defer store.Close()

	n, err := store.Count(ctx, user)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
