package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var artistCmd = &cobra.Command{
	Use:   "artist",
	Short: "Look up artists",
}

var artistInfoCmd = &cobra.Command{
	Use:   "info ARTIST",
	Short: "Show artist details",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArtistInfo,
}

var artistCorrectCmd = &cobra.Command{
	Use:   "correct ARTIST",
	Short: "Show the canonical spelling of an artist name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArtistCorrect,
}

var artistSimilarCmd = &cobra.Command{
	Use:   "similar ARTIST",
	Short: "List similar artists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArtistSimilar,
}

var artistTopAlbumsCmd = &cobra.Command{
	Use:   "top-albums ARTIST",
	Short: "List an artist's most played albums",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArtistTopAlbums,
}

var artistTopTracksCmd = &cobra.Command{
	Use:   "top-tracks ARTIST",
	Short: "List an artist's most played tracks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArtistTopTracks,
}

var artistTagsCmd = &cobra.Command{
	Use:   "tags ARTIST",
	Short: "Show an artist's top tags",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArtistTags,
}

var artistSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search artists by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArtistSearch,
}

func init() {
	rootCmd.AddCommand(artistCmd)
	artistCmd.AddCommand(artistInfoCmd, artistCorrectCmd, artistSimilarCmd,
		artistTopAlbumsCmd, artistTopTracksCmd, artistTagsCmd, artistSearchCmd)

	artistInfoCmd.Flags().String("mbid", "", "MusicBrainz artist ID")
	artistInfoCmd.Flags().StringP("user", "u", "", "Include this user's play count")
	artistInfoCmd.Flags().String("lang", "", "Bio language (ISO 639 alpha-2)")

	artistSimilarCmd.Flags().IntP("limit", "l", 0, "Number of artists")

	addPageFlags(artistTopAlbumsCmd)
	addPageFlags(artistTopTracksCmd)
	addPageFlags(artistSearchCmd)

	artistTagsCmd.Flags().StringP("user", "u", "", "Show this user's tags")

	for _, c := range []*cobra.Command{artistInfoCmd, artistSimilarCmd, artistTopAlbumsCmd, artistTopTracksCmd, artistTagsCmd} {
		c.Flags().Bool("autocorrect", false, "Correct misspelled artist names")
	}
}

func runArtistInfo(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	artist, err := a.client.Artist().GetInfo(cmd.Context(), strings.Join(args, " "), lastfm.ArtistInfoOptions{
		MBID:        optString(cmd, "mbid"),
		Autocorrect: optBool(cmd, "autocorrect"),
		Username:    optString(cmd, "user"),
		Lang:        optString(cmd, "lang"),
	})
	if err != nil {
		return fmt.Errorf("failed to get artist: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), artist)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, artist.Name)
	fmt.Fprintf(out, "Listeners: %s  Plays: %s", count(artist.Stats.Listeners), count(artist.Stats.PlayCount))
	if cmd.Flags().Changed("user") {
		fmt.Fprintf(out, "  Your plays: %s", count(artist.Stats.UserPlayCount))
	}
	fmt.Fprintln(out)
	if tags := tagNames(artist.Tags); tags != "" {
		fmt.Fprintf(out, "Tags: %s\n", tags)
	}
	if len(artist.Similar) > 0 {
		names := make([]string, 0, len(artist.Similar))
		for _, s := range artist.Similar {
			names = append(names, s.Name)
		}
		fmt.Fprintf(out, "Similar: %s\n", strings.Join(names, ", "))
	}
	if artist.URL != "" {
		fmt.Fprintln(out, artist.URL)
	}
	if summary := strings.TrimSpace(artist.Bio.Summary); summary != "" {
		fmt.Fprintf(out, "\n%s\n", summary)
	}
	return nil
}

func runArtistCorrect(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	artist, err := a.client.Artist().GetCorrection(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to get correction: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), artist)
	}
	if artist.Name == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "No correction for %q\n", name)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), artist.Name)
	return nil
}

func runArtistSimilar(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	similar, err := a.client.Artist().GetSimilar(cmd.Context(), strings.Join(args, " "), lastfm.SimilarOptions{
		Autocorrect: optBool(cmd, "autocorrect"),
		Limit:       optInt(cmd, "limit"),
	})
	if err != nil {
		return fmt.Errorf("failed to get similar artists: %w", err)
	}

	t := newTable("#", "ARTIST", "MATCH")
	for i, artist := range similar {
		t.add(rank(i), artist.Name, fmt.Sprintf("%.0f%%", artist.Match*100))
	}
	return emit(cmd.OutOrStdout(), similar, t)
}

func artistPageOptions(cmd *cobra.Command) lastfm.ArtistPageOptions {
	return lastfm.ArtistPageOptions{
		Autocorrect: optBool(cmd, "autocorrect"),
		Limit:       optInt(cmd, "limit"),
		Page:        optInt(cmd, "page"),
	}
}

func runArtistTopAlbums(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.Artist().GetTopAlbums(cmd.Context(), strings.Join(args, " "), artistPageOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to get top albums: %w", err)
	}

	return emit(cmd.OutOrStdout(), page, albumTable(page.Items))
}

func runArtistTopTracks(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.Artist().GetTopTracks(cmd.Context(), strings.Join(args, " "), artistPageOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to get top tracks: %w", err)
	}

	return emit(cmd.OutOrStdout(), page, trackTable(page.Items))
}

func runArtistTags(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.Artist().GetTopTags(cmd.Context(), strings.Join(args, " "), lastfm.TagOptions{
		Autocorrect: optBool(cmd, "autocorrect"),
		Username:    optString(cmd, "user"),
	})
	if err != nil {
		return fmt.Errorf("failed to get artist tags: %w", err)
	}

	return emit(cmd.OutOrStdout(), page, tagTable(page.Items))
}

func runArtistSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.Artist().Search(cmd.Context(), strings.Join(args, " "), pageOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to search artists: %w", err)
	}

	if err := emit(cmd.OutOrStdout(), page, artistTable(page.Matches)); err != nil {
		return err
	}
	if !jsonOutput {
		fmt.Fprintf(cmd.OutOrStdout(), "%s matches\n", count(page.Total))
	}
	return nil
}

func artistTable(artists []lastfm.Artist) *table {
	t := newTable("#", "ARTIST", "LISTENERS", "PLAYS")
	for i, artist := range artists {
		n := artist.Rank
		if n == 0 {
			n = i + 1
		}
		t.add(count(n), artist.Name, count(artist.Stats.Listeners), count(artist.Stats.PlayCount))
	}
	return t
}

func albumTable(albums []lastfm.Album) *table {
	t := newTable("#", "ARTIST", "ALBUM", "PLAYS")
	for i, album := range albums {
		n := album.Rank
		if n == 0 {
			n = i + 1
		}
		t.add(count(n), album.Artist.Name(), album.Name, count(album.Stats.PlayCount))
	}
	return t
}

func trackTable(tracks []lastfm.Track) *table {
	t := newTable("#", "ARTIST", "TRACK", "LISTENERS", "PLAYS")
	for i, track := range tracks {
		n := track.Rank
		if n == 0 {
			n = i + 1
		}
		t.add(count(n), track.Artist.Name(), track.Name, count(track.Stats.Listeners), count(track.Stats.PlayCount))
	}
	return t
}
