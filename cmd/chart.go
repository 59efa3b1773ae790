package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the global Last.fm charts",
}

var chartArtistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "Top artists on Last.fm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		page, err := a.client.Chart().GetTopArtists(cmd.Context(), pageOptions(cmd))
		if err != nil {
			return fmt.Errorf("failed to get artist chart: %w", err)
		}
		return emit(cmd.OutOrStdout(), page, artistTable(page.Items))
	},
}

var chartTracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Top tracks on Last.fm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		page, err := a.client.Chart().GetTopTracks(cmd.Context(), pageOptions(cmd))
		if err != nil {
			return fmt.Errorf("failed to get track chart: %w", err)
		}
		return emit(cmd.OutOrStdout(), page, trackTable(page.Items))
	},
}

var chartTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Top tags on Last.fm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		page, err := a.client.Chart().GetTopTags(cmd.Context(), pageOptions(cmd))
		if err != nil {
			return fmt.Errorf("failed to get tag chart: %w", err)
		}
		return emit(cmd.OutOrStdout(), page, tagTable(page.Items))
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.AddCommand(chartArtistsCmd, chartTracksCmd, chartTagsCmd)

	for _, c := range chartCmd.Commands() {
		addPageFlags(c)
	}
}
