/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/jfmyers9/lfm/internal/watch"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now [USER]",
	Short: "Display the track a Last.fm user is playing",
	Long: `Display the track a Last.fm user is scrobbling right now.

USER defaults to the "user" setting in ~/.config/lfm/config.yaml.

The output format can be customized in the config file using a Go
template. Available fields: .Name, .Artist, .Album, .URL, .Loved

Exit codes:
  0 - Track is currently playing
  1 - Nothing playing, or the lookup failed`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	nowCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	nowCmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled, overrides config)")
	nowCmd.Flags().Bool("marquee", false, "Enable marquee scrolling for long text (overrides config)")
}

// nowPlaying is the data available to the output template
type nowPlaying struct {
	Name   string
	Artist string
	Album  string
	URL    string
	Loved  bool
}

func newNowPlaying(track *lastfm.Track) nowPlaying {
	return nowPlaying{
		Name:   track.Name,
		Artist: track.Artist.Name(),
		Album:  track.Album.Name,
		URL:    track.URL,
		Loved:  track.Loved,
	}
}

func runNow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}

	user, err := userArg(args, a.cfg.User)
	if err != nil {
		return err
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag != "" {
		a.cfg.OutputFormat = formatFlag
	}

	track, err := watch.NowPlaying(ctx, a.client.User(), user)
	if err != nil {
		return fmt.Errorf("failed to get current track: %w", err)
	}

	// If not playing, exit with code 1
	if track == nil {
		os.Exit(1)
		return nil
	}

	output, err := formatTrack(newNowPlaying(track), a.cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	width, _ := cmd.Flags().GetInt("width")
	if width == 0 {
		width = a.cfg.OutputWidth
	}

	marquee := a.cfg.Marquee
	if cmd.Flags().Changed("marquee") {
		marquee, _ = cmd.Flags().GetBool("marquee")
	}

	if width > 0 {
		if marquee {
			output = marqueeText(output, width, a.cfg.MarqueeSpeed, a.cfg.MarqueeSeparator, time.Now())
		} else {
			output = padToWidth(output, width)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// userArg picks the user from the arguments or the configured default
func userArg(args []string, fallback string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("no user given; pass USER or set \"user\" in the config file")
}

// formatTrack applies the template to the track data
func formatTrack(track nowPlaying, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, track); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Wide runes can leave the cut one column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	}

	if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}

// marqueeText returns a width-column window into "text + separator + text"
// that advances speed runes per second of now, so repeated calls (a tmux
// status line refreshing every few seconds) scroll the text. Text that
// fits is padded instead.
func marqueeText(text string, width int, speed int, separator string, now time.Time) string {
	if width <= 0 {
		return text
	}

	if runewidth.StringWidth(text) <= width {
		return padToWidth(text, width)
	}

	if speed <= 0 {
		speed = 1
	}

	extended := []rune(text + separator + text)
	total := len(extended)
	position := int(now.Unix()*int64(speed)) % total

	var result []rune
	resultWidth := 0

	for i := 0; i < total && resultWidth < width; i++ {
		r := extended[(position+i)%total]
		rw := runewidth.RuneWidth(r)
		if resultWidth+rw > width {
			break
		}
		result = append(result, r)
		resultWidth += rw
	}

	if resultWidth < width {
		return string(result) + strings.Repeat(" ", width-resultWidth)
	}

	return string(result)
}
