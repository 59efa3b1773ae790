package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Look up tracks",
}

var trackInfoCmd = &cobra.Command{
	Use:   "info ARTIST TRACK",
	Short: "Show track details",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runTrackInfo,
}

var trackCorrectCmd = &cobra.Command{
	Use:   "correct ARTIST TRACK",
	Short: "Show the canonical spelling of a track and artist",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrackCorrect,
}

var trackSimilarCmd = &cobra.Command{
	Use:   "similar ARTIST TRACK",
	Short: "List similar tracks",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrackSimilar,
}

var trackTagsCmd = &cobra.Command{
	Use:   "tags ARTIST TRACK",
	Short: "Show a track's top tags",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrackTags,
}

var trackSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search tracks by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrackSearch,
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackInfoCmd, trackCorrectCmd, trackSimilarCmd, trackTagsCmd, trackSearchCmd)

	trackInfoCmd.Flags().String("mbid", "", "MusicBrainz track ID")
	trackInfoCmd.Flags().StringP("user", "u", "", "Include this user's play count and loved flag")

	trackSimilarCmd.Flags().IntP("limit", "l", 0, "Number of tracks")

	trackTagsCmd.Flags().StringP("user", "u", "", "Show this user's tags")

	for _, c := range []*cobra.Command{trackInfoCmd, trackSimilarCmd, trackTagsCmd} {
		c.Flags().Bool("autocorrect", false, "Correct misspelled names")
	}

	addPageFlags(trackSearchCmd)
	trackSearchCmd.Flags().StringP("artist", "a", "", "Only tracks by this artist")
}

func runTrackInfo(cmd *cobra.Command, args []string) error {
	if len(args) != 2 && !cmd.Flags().Changed("mbid") {
		return fmt.Errorf("requires ARTIST and TRACK, or --mbid")
	}
	artist, name := argAt(args, 0), argAt(args, 1)

	a, err := newApp()
	if err != nil {
		return err
	}

	track, err := a.client.Track().GetInfo(cmd.Context(), name, artist, lastfm.TrackInfoOptions{
		MBID:        optString(cmd, "mbid"),
		Autocorrect: optBool(cmd, "autocorrect"),
		Username:    optString(cmd, "user"),
	})
	if err != nil {
		return fmt.Errorf("failed to get track: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), track)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s - %s\n", track.Artist.Name(), track.Name)
	if track.Album.Name != "" {
		fmt.Fprintf(out, "Album: %s\n", track.Album.Name)
	}
	// track.getInfo reports the duration in milliseconds
	if track.Duration > 0 {
		fmt.Fprintf(out, "Length: %s\n", trackLength(track.Duration/1000))
	}
	fmt.Fprintf(out, "Listeners: %s  Plays: %s", count(track.Stats.Listeners), count(track.Stats.PlayCount))
	if cmd.Flags().Changed("user") {
		fmt.Fprintf(out, "  Your plays: %s", count(track.Stats.UserPlayCount))
		if track.Loved {
			fmt.Fprint(out, "  ♥")
		}
	}
	fmt.Fprintln(out)
	if tags := tagNames(track.Tags); tags != "" {
		fmt.Fprintf(out, "Tags: %s\n", tags)
	}
	if track.URL != "" {
		fmt.Fprintln(out, track.URL)
	}
	return nil
}

func runTrackCorrect(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	track, err := a.client.Track().GetCorrection(cmd.Context(), args[1], args[0])
	if err != nil {
		return fmt.Errorf("failed to get correction: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), track)
	}
	if track.Name == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "No correction for %q by %q\n", args[1], args[0])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", track.Artist.Name(), track.Name)
	return nil
}

func runTrackSimilar(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	similar, err := a.client.Track().GetSimilar(cmd.Context(), args[1], args[0], lastfm.SimilarOptions{
		Autocorrect: optBool(cmd, "autocorrect"),
		Limit:       optInt(cmd, "limit"),
	})
	if err != nil {
		return fmt.Errorf("failed to get similar tracks: %w", err)
	}

	t := newTable("#", "ARTIST", "TRACK", "MATCH")
	for i, track := range similar {
		t.add(rank(i), track.Artist.Name(), track.Name, fmt.Sprintf("%.0f%%", track.Match*100))
	}
	return emit(cmd.OutOrStdout(), similar, t)
}

func runTrackTags(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	tags, err := a.client.Track().GetTopTags(cmd.Context(), args[1], args[0], lastfm.TagOptions{
		Autocorrect: optBool(cmd, "autocorrect"),
		Username:    optString(cmd, "user"),
	})
	if err != nil {
		return fmt.Errorf("failed to get track tags: %w", err)
	}

	return emit(cmd.OutOrStdout(), tags, tagTable(tags))
}

func runTrackSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.Track().Search(cmd.Context(), strings.Join(args, " "), lastfm.TrackSearchOptions{
		Artist: optString(cmd, "artist"),
		Limit:  optInt(cmd, "limit"),
		Page:   optInt(cmd, "page"),
	})
	if err != nil {
		return fmt.Errorf("failed to search tracks: %w", err)
	}

	if err := emit(cmd.OutOrStdout(), page, trackTable(page.Matches)); err != nil {
		return err
	}
	if !jsonOutput {
		fmt.Fprintf(cmd.OutOrStdout(), "%s matches\n", count(page.Total))
	}
	return nil
}
