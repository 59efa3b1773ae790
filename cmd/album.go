package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Look up albums",
}

var albumInfoCmd = &cobra.Command{
	Use:   "info ARTIST ALBUM",
	Short: "Show album details and track list",
	Long: `Show an album's details and track list.

With --mbid the album is looked up by MusicBrainz ID and ARTIST and ALBUM
may be omitted.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runAlbumInfo,
}

var albumTagsCmd = &cobra.Command{
	Use:   "tags ARTIST ALBUM",
	Short: "Show an album's top tags",
	Args:  cobra.ExactArgs(2),
	RunE:  runAlbumTags,
}

var albumSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search albums by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAlbumSearch,
}

func init() {
	rootCmd.AddCommand(albumCmd)
	albumCmd.AddCommand(albumInfoCmd, albumTagsCmd, albumSearchCmd)

	albumInfoCmd.Flags().String("mbid", "", "MusicBrainz album ID")
	albumInfoCmd.Flags().Bool("autocorrect", false, "Correct misspelled artist names")
	albumInfoCmd.Flags().StringP("user", "u", "", "Include this user's play count")
	albumInfoCmd.Flags().String("lang", "", "Wiki language (ISO 639 alpha-2)")

	albumTagsCmd.Flags().Bool("autocorrect", false, "Correct misspelled artist names")
	albumTagsCmd.Flags().StringP("user", "u", "", "Show this user's tags")

	addPageFlags(albumSearchCmd)
}

func runAlbumInfo(cmd *cobra.Command, args []string) error {
	if len(args) != 2 && !cmd.Flags().Changed("mbid") {
		return fmt.Errorf("requires ARTIST and ALBUM, or --mbid")
	}
	artist, album := argAt(args, 0), argAt(args, 1)

	a, err := newApp()
	if err != nil {
		return err
	}

	info, err := a.client.Album().GetInfo(cmd.Context(), artist, album, lastfm.AlbumInfoOptions{
		MBID:        optString(cmd, "mbid"),
		Autocorrect: optBool(cmd, "autocorrect"),
		Username:    optString(cmd, "user"),
		Lang:        optString(cmd, "lang"),
	})
	if err != nil {
		return fmt.Errorf("failed to get album: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), info)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s - %s\n", info.Artist.Name(), info.Name)
	fmt.Fprintf(out, "Listeners: %s  Plays: %s", count(info.Stats.Listeners), count(info.Stats.PlayCount))
	if cmd.Flags().Changed("user") {
		fmt.Fprintf(out, "  Your plays: %s", count(info.Stats.UserPlayCount))
	}
	fmt.Fprintln(out)
	if tags := tagNames(info.Tags); tags != "" {
		fmt.Fprintf(out, "Tags: %s\n", tags)
	}
	if info.URL != "" {
		fmt.Fprintln(out, info.URL)
	}

	if len(info.Tracks) > 0 {
		fmt.Fprintln(out)
		t := newTable("#", "TRACK", "LENGTH")
		for i, track := range info.Tracks {
			n := track.Rank
			if n == 0 {
				n = i + 1
			}
			t.add(fmt.Sprint(n), track.Name, trackLength(track.Duration))
		}
		if err := t.render(out); err != nil {
			return err
		}
	}

	if summary := strings.TrimSpace(info.Wiki.Summary); summary != "" {
		fmt.Fprintf(out, "\n%s\n", summary)
	}
	return nil
}

func runAlbumTags(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	tags, err := a.client.Album().GetTopTags(cmd.Context(), args[0], args[1], lastfm.TagOptions{
		Autocorrect: optBool(cmd, "autocorrect"),
		Username:    optString(cmd, "user"),
	})
	if err != nil {
		return fmt.Errorf("failed to get album tags: %w", err)
	}

	return emit(cmd.OutOrStdout(), tags, tagTable(tags))
}

func runAlbumSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.Album().Search(cmd.Context(), strings.Join(args, " "), pageOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to search albums: %w", err)
	}

	t := newTable("ARTIST", "ALBUM", "URL")
	for _, album := range page.Matches {
		t.add(album.Artist.Name(), album.Name, album.URL)
	}
	if err := emit(cmd.OutOrStdout(), page, t); err != nil {
		return err
	}
	if !jsonOutput {
		fmt.Fprintf(cmd.OutOrStdout(), "%s matches\n", count(page.Total))
	}
	return nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func tagNames(tags []lastfm.Tag) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return strings.Join(names, ", ")
}

func tagTable(tags []lastfm.Tag) *table {
	t := newTable("#", "TAG", "COUNT")
	for i, tag := range tags {
		t.add(rank(i), tag.Name, count(tag.Count))
	}
	return t
}

// trackLength formats a duration in seconds as M:SS, or "" when unknown
func trackLength(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
