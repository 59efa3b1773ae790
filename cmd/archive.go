package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfmyers9/lfm/internal/archive"
	"github.com/spf13/cobra"
)

var archiveDBPath string

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep a local copy of a user's plays",
	Long: `Copy a Last.fm user's listening history into a local SQLite database.

The first sync fetches the whole history, which can take a while for
long-standing accounts. Later syncs only fetch plays newer than the
latest archived one.

The database lives at archive_path from the config file
(default: ~/.config/lfm/archive.db) unless --db is given.`,
}

var archiveSyncCmd = &cobra.Command{
	Use:   "sync [USER]",
	Short: "Fetch new plays into the archive",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArchiveSync,
}

var archiveStatsCmd = &cobra.Command{
	Use:   "stats [USER]",
	Short: "Summarize the archived plays",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArchiveStats,
}

var archivePruneCmd = &cobra.Command{
	Use:   "prune [USER]",
	Short: "Delete archived plays older than a date",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArchivePrune,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveSyncCmd, archiveStatsCmd, archivePruneCmd)

	archiveCmd.PersistentFlags().StringVar(&archiveDBPath, "db", "", "Archive database path (overrides config)")

	archiveSyncCmd.Flags().Int("page-size", archive.DefaultPageSize, "Plays per request (max 200)")
	archiveSyncCmd.Flags().Int("max-pages", 0, "Stop after this many pages (0=all)")

	archiveStatsCmd.Flags().IntP("limit", "l", 10, "Rows in each listing")

	archivePruneCmd.Flags().String("before", "", "Delete plays before this time (2006-01-02, RFC 3339, or a duration like 720h)")
	_ = archivePruneCmd.MarkFlagRequired("before")
}

// openArchive opens the archive database, creating its directory
func openArchive(a *app) (*archive.Store, error) {
	path := archiveDBPath
	if path == "" {
		path = a.cfg.ArchivePath
	}
	if path == "" {
		return nil, fmt.Errorf("no archive path configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	a.logger.Debug().Str("path", path).Msg("Opening archive")
	store, err := archive.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return store, nil
}

func runArchiveSync(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	user, err := userArg(args, a.cfg.User)
	if err != nil {
		return err
	}

	store, err := openArchive(a)
	if err != nil {
		return err
	}
	defer store.Close()

	pageSize, _ := cmd.Flags().GetInt("page-size")
	maxPages, _ := cmd.Flags().GetInt("max-pages")

	syncer := archive.NewSyncer(a.client.User(), store, pageSize, maxPages, a.logger)
	result, err := syncer.Sync(cmd.Context(), user)
	if err != nil {
		return fmt.Errorf("sync failed after %d new plays: %w", result.Added, err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Resumed:
		fmt.Fprintf(out, "Resumed unfinished sync of %s\n", user)
	case result.Since.IsZero():
		fmt.Fprintf(out, "Full sync of %s\n", user)
	default:
		fmt.Fprintf(out, "Synced %s since %s\n", user, result.Since.Local().Format(time.DateTime))
	}
	fmt.Fprintf(out, "%s pages, %s tracks fetched, %s new plays\n",
		count(result.Pages), count(result.Fetched), count(result.Added))
	if result.Partial {
		fmt.Fprintln(out, "Page limit reached; run sync again to fetch the rest")
	}
	return nil
}

// archiveStats is the --json form of archive stats
type archiveStats struct {
	User       string
	Plays      int
	Latest     *time.Time `json:",omitempty"`
	TopArtists []archive.ArtistCount
	Recent     []archive.Play
}

func runArchiveStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	user, err := userArg(args, a.cfg.User)
	if err != nil {
		return err
	}

	store, err := openArchive(a)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	stats := archiveStats{User: user}
	if stats.Plays, err = store.Count(ctx, user); err != nil {
		return err
	}
	latest, ok, err := store.Latest(ctx, user)
	if err != nil {
		return err
	}
	if ok {
		stats.Latest = &latest
	}
	if stats.TopArtists, err = store.TopArtists(ctx, user, limit); err != nil {
		return err
	}
	if stats.Recent, err = store.Recent(ctx, user, limit); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, stats)
	}

	if stats.Plays == 0 {
		fmt.Fprintf(out, "No archived plays for %s. Run 'lfm archive sync %s' first.\n", user, user)
		return nil
	}

	fmt.Fprintf(out, "%s: %s archived plays, latest %s\n\n", user, count(stats.Plays), when(latest))

	artists := newTable("#", "ARTIST", "PLAYS")
	for i, ac := range stats.TopArtists {
		artists.add(rank(i), ac.Artist, count(ac.Plays))
	}
	if err := artists.render(out); err != nil {
		return err
	}
	fmt.Fprintln(out)

	recent := newTable("WHEN", "ARTIST", "TRACK")
	for _, p := range stats.Recent {
		name := p.Track
		if p.Loved {
			name = "♥ " + name
		}
		recent.add(when(p.PlayedAt), p.Artist, name)
	}
	return recent.render(out)
}

func runArchivePrune(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	user, err := userArg(args, a.cfg.User)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("before")
	before, err := parseTime(raw, time.Now())
	if err != nil {
		return err
	}

	store, err := openArchive(a)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Prune(cmd.Context(), user, before)
	if err != nil {
		return fmt.Errorf("failed to prune archive: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s plays before %s\n", count(int(n)), before.Local().Format(time.DateOnly))
	return nil
}
