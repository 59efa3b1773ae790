package cmd

import (
	"fmt"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

// Flags are only sent to the API when given on the command line, so a
// flag left at its default never overrides the service's own default.

func optString(cmd *cobra.Command, name string) lastfm.Optional[string] {
	if !cmd.Flags().Changed(name) {
		return lastfm.Optional[string]{}
	}
	v, _ := cmd.Flags().GetString(name)
	return lastfm.Some(v)
}

func optInt(cmd *cobra.Command, name string) lastfm.Optional[int] {
	if !cmd.Flags().Changed(name) {
		return lastfm.Optional[int]{}
	}
	v, _ := cmd.Flags().GetInt(name)
	return lastfm.Some(v)
}

func optBool(cmd *cobra.Command, name string) lastfm.Optional[bool] {
	if !cmd.Flags().Changed(name) {
		return lastfm.Optional[bool]{}
	}
	v, _ := cmd.Flags().GetBool(name)
	return lastfm.Some(v)
}

// optTime reads a flag holding a date (2006-01-02), an RFC 3339 time or
// a duration before now ("24h")
func optTime(cmd *cobra.Command, name string) (lastfm.Optional[time.Time], error) {
	if !cmd.Flags().Changed(name) {
		return lastfm.Optional[time.Time]{}, nil
	}
	v, _ := cmd.Flags().GetString(name)
	t, err := parseTime(v, time.Now())
	if err != nil {
		return lastfm.Optional[time.Time]{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return lastfm.Some(t), nil
}

func parseTime(v string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return now.Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%q is not a date, time or duration", v)
}

func optPeriod(cmd *cobra.Command) (lastfm.Optional[lastfm.Period], error) {
	if !cmd.Flags().Changed("period") {
		return lastfm.Optional[lastfm.Period]{}, nil
	}
	v, _ := cmd.Flags().GetString("period")
	switch p := lastfm.Period(v); p {
	case lastfm.PeriodOverall, lastfm.Period7Day, lastfm.Period1Month,
		lastfm.Period3Month, lastfm.Period6Month, lastfm.Period12Month:
		return lastfm.Some(p), nil
	}
	return lastfm.Optional[lastfm.Period]{}, fmt.Errorf("invalid --period %q (overall, 7day, 1month, 3month, 6month, 12month)", v)
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("limit", "l", 0, "Results per page")
	cmd.Flags().IntP("page", "p", 0, "Page number")
}

func pageOptions(cmd *cobra.Command) lastfm.PageOptions {
	return lastfm.PageOptions{
		Limit: optInt(cmd, "limit"),
		Page:  optInt(cmd, "page"),
	}
}
