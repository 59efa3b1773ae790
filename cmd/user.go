package cmd

import (
	"fmt"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Look up users and their listening history",
}

var userInfoCmd = &cobra.Command{
	Use:   "info USER",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserInfo,
}

var userRecentCmd = &cobra.Command{
	Use:   "recent USER",
	Short: "List a user's recent plays",
	Long: `List a user's recent plays, newest first.

--from and --to accept a date (2006-01-02), an RFC 3339 time, or a
duration before now such as 24h.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserRecent,
}

var userLovedCmd = &cobra.Command{
	Use:   "loved USER",
	Short: "List the tracks a user has loved",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserLoved,
}

var userFriendsCmd = &cobra.Command{
	Use:   "friends USER",
	Short: "List a user's friends",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserFriends,
}

var userTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show a user's top artists, albums, tracks or tags",
}

var userWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show a user's weekly charts",
	Long: `Show a user's weekly charts. Without --from and --to the most recent
week is shown.`,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userInfoCmd, userRecentCmd, userLovedCmd, userFriendsCmd, userTopCmd, userWeeklyCmd)

	addPageFlags(userRecentCmd)
	userRecentCmd.Flags().String("from", "", "Only plays after this time")
	userRecentCmd.Flags().String("to", "", "Only plays before this time")
	userRecentCmd.Flags().Bool("extended", false, "Include loved flags and full artist details")

	addPageFlags(userLovedCmd)

	addPageFlags(userFriendsCmd)
	userFriendsCmd.Flags().Bool("recent-tracks", false, "Include each friend's latest track")

	userTopCmd.AddCommand(
		&cobra.Command{Use: "artists USER", Short: "Top artists", Args: cobra.ExactArgs(1), RunE: runUserTopArtists},
		&cobra.Command{Use: "albums USER", Short: "Top albums", Args: cobra.ExactArgs(1), RunE: runUserTopAlbums},
		&cobra.Command{Use: "tracks USER", Short: "Top tracks", Args: cobra.ExactArgs(1), RunE: runUserTopTracks},
		&cobra.Command{Use: "tags USER", Short: "Top tags", Args: cobra.ExactArgs(1), RunE: runUserTopTags},
	)
	for _, c := range userTopCmd.Commands() {
		if c.Name() == "tags" {
			c.Flags().IntP("limit", "l", 0, "Number of tags")
			continue
		}
		addPageFlags(c)
		c.Flags().String("period", "", "Time range (overall, 7day, 1month, 3month, 6month, 12month)")
	}

	userWeeklyCmd.AddCommand(
		&cobra.Command{Use: "artists USER", Short: "Weekly artist chart", Args: cobra.ExactArgs(1), RunE: runUserWeeklyArtists},
		&cobra.Command{Use: "albums USER", Short: "Weekly album chart", Args: cobra.ExactArgs(1), RunE: runUserWeeklyAlbums},
		&cobra.Command{Use: "tracks USER", Short: "Weekly track chart", Args: cobra.ExactArgs(1), RunE: runUserWeeklyTracks},
	)
	for _, c := range userWeeklyCmd.Commands() {
		c.Flags().String("from", "", "Start of the week")
		c.Flags().String("to", "", "End of the week")
	}
}

func runUserInfo(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	user, err := a.client.User().GetInfo(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), user)
	}

	out := cmd.OutOrStdout()
	if user.RealName != "" {
		fmt.Fprintf(out, "%s (%s)\n", user.Name, user.RealName)
	} else {
		fmt.Fprintln(out, user.Name)
	}
	fmt.Fprintf(out, "Plays: %s\n", count(user.PlayCount))
	if user.Country != "" {
		fmt.Fprintf(out, "Country: %s\n", user.Country)
	}
	if user.Registered.Unix() > 0 {
		fmt.Fprintf(out, "Registered: %s\n", user.Registered.Format("2006-01-02"))
	}
	if user.Subscriber {
		fmt.Fprintln(out, "Subscriber")
	}
	if user.URL != "" {
		fmt.Fprintln(out, user.URL)
	}
	return nil
}

func window(cmd *cobra.Command) (lastfm.Window, error) {
	from, err := optTime(cmd, "from")
	if err != nil {
		return lastfm.Window{}, err
	}
	to, err := optTime(cmd, "to")
	if err != nil {
		return lastfm.Window{}, err
	}
	return lastfm.Window{From: from, To: to}, nil
}

func runUserRecent(cmd *cobra.Command, args []string) error {
	w, err := window(cmd)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetRecentTracks(cmd.Context(), args[0], lastfm.RecentTracksOptions{
		Limit:    optInt(cmd, "limit"),
		Page:     optInt(cmd, "page"),
		Window:   w,
		Extended: optBool(cmd, "extended"),
	})
	if err != nil {
		return fmt.Errorf("failed to get recent tracks: %w", err)
	}

	return emit(cmd.OutOrStdout(), page, playTable(page.Items))
}

func runUserLoved(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetLovedTracks(cmd.Context(), args[0], pageOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to get loved tracks: %w", err)
	}

	return emit(cmd.OutOrStdout(), page, playTable(page.Items))
}

func runUserFriends(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetFriends(cmd.Context(), args[0], lastfm.FriendsOptions{
		RecentTracks: optBool(cmd, "recent-tracks"),
		Limit:        optInt(cmd, "limit"),
		Page:         optInt(cmd, "page"),
	})
	if err != nil {
		return fmt.Errorf("failed to get friends: %w", err)
	}

	t := newTable("USER", "NAME", "COUNTRY", "PLAYS")
	for _, friend := range page.Items {
		t.add(friend.Name, friend.RealName, friend.Country, count(friend.PlayCount))
	}
	return emit(cmd.OutOrStdout(), page, t)
}

func topOptions(cmd *cobra.Command) (lastfm.TopOptions, error) {
	period, err := optPeriod(cmd)
	if err != nil {
		return lastfm.TopOptions{}, err
	}
	return lastfm.TopOptions{
		Period: period,
		Limit:  optInt(cmd, "limit"),
		Page:   optInt(cmd, "page"),
	}, nil
}

func runUserTopArtists(cmd *cobra.Command, args []string) error {
	opts, err := topOptions(cmd)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetTopArtists(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("failed to get top artists: %w", err)
	}
	return emit(cmd.OutOrStdout(), page, userArtistTable(page.Items))
}

func runUserTopAlbums(cmd *cobra.Command, args []string) error {
	opts, err := topOptions(cmd)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetTopAlbums(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("failed to get top albums: %w", err)
	}
	return emit(cmd.OutOrStdout(), page, albumTable(page.Items))
}

func runUserTopTracks(cmd *cobra.Command, args []string) error {
	opts, err := topOptions(cmd)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetTopTracks(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("failed to get top tracks: %w", err)
	}
	return emit(cmd.OutOrStdout(), page, userTrackTable(page.Items))
}

func runUserTopTags(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetTopTags(cmd.Context(), args[0], lastfm.LimitOptions{Limit: optInt(cmd, "limit")})
	if err != nil {
		return fmt.Errorf("failed to get top tags: %w", err)
	}
	return emit(cmd.OutOrStdout(), page, tagTable(page.Items))
}

func runUserWeeklyArtists(cmd *cobra.Command, args []string) error {
	w, err := window(cmd)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetWeeklyArtistChart(cmd.Context(), args[0], w)
	if err != nil {
		return fmt.Errorf("failed to get weekly artist chart: %w", err)
	}
	return emitWeekly(cmd, page.From, page.To, page, userArtistTable(page.Items))
}

func runUserWeeklyAlbums(cmd *cobra.Command, args []string) error {
	w, err := window(cmd)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetWeeklyAlbumChart(cmd.Context(), args[0], w)
	if err != nil {
		return fmt.Errorf("failed to get weekly album chart: %w", err)
	}
	return emitWeekly(cmd, page.From, page.To, page, albumTable(page.Items))
}

func runUserWeeklyTracks(cmd *cobra.Command, args []string) error {
	w, err := window(cmd)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.client.User().GetWeeklyTrackChart(cmd.Context(), args[0], w)
	if err != nil {
		return fmt.Errorf("failed to get weekly track chart: %w", err)
	}
	return emitWeekly(cmd, page.From, page.To, page, userTrackTable(page.Items))
}

func emitWeekly(cmd *cobra.Command, from, to time.Time, v any, t *table) error {
	if !jsonOutput && to.Unix() > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Week %s to %s\n\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return emit(cmd.OutOrStdout(), v, t)
}

// playTable lists plays with their relative time
func playTable(tracks []lastfm.Track) *table {
	t := newTable("WHEN", "ARTIST", "TRACK", "ALBUM")
	for _, track := range tracks {
		played := when(track.PlayedAt)
		if track.NowPlaying {
			played = "▶ now"
		} else if track.Loved {
			played = "♥ " + played
		}
		t.add(played, track.Artist.Name(), track.Name, track.Album.Name)
	}
	return t
}

// userArtistTable lists artists with the user's play count
func userArtistTable(artists []lastfm.Artist) *table {
	t := newTable("#", "ARTIST", "PLAYS")
	for i, artist := range artists {
		n := artist.Rank
		if n == 0 {
			n = i + 1
		}
		t.add(count(n), artist.Name, count(artist.Stats.UserPlayCount))
	}
	return t
}

// userTrackTable lists tracks with the user's play count
func userTrackTable(tracks []lastfm.Track) *table {
	t := newTable("#", "ARTIST", "TRACK", "PLAYS")
	for i, track := range tracks {
		n := track.Rank
		if n == 0 {
			n = i + 1
		}
		t.add(count(n), track.Artist.Name(), track.Name, count(track.Stats.UserPlayCount))
	}
	return t
}
