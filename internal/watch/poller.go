package watch

import (
	"context"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Source provides a user's recent tracks.
// *lastfm.UserService satisfies it.
type Source interface {
	GetRecentTracks(ctx context.Context, user string, opts lastfm.RecentTracksOptions) (*lastfm.ObjectPage[lastfm.Track], error)
}

// Update represents the result of one poll
type Update struct {
	Track   *lastfm.Track // Most recent track (nil if the user has no plays)
	Changed bool          // Track differs from the previous poll
	Err     error         // Error from the API
}

// Playing reports whether the update carries a track that is playing now
func (u Update) Playing() bool {
	return u.Track != nil && u.Track.NowPlaying
}

// Poller polls a user's most recent track at regular intervals
type Poller struct {
	source   Source
	user     string
	interval time.Duration
	logger   zerolog.Logger

	last    key
	hasLast bool
}

// key identifies a play for change detection
type key struct {
	name       string
	artist     string
	nowPlaying bool
	playedAt   int64
}

func keyOf(t *lastfm.Track) key {
	if t == nil {
		return key{}
	}
	return key{
		name:       t.Name,
		artist:     t.Artist.Name(),
		nowPlaying: t.NowPlaying,
		playedAt:   t.PlayedAt.Unix(),
	}
}

// NewPoller creates a new Poller instance
func NewPoller(source Source, user string, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{
		source:   source,
		user:     user,
		interval: interval,
		logger:   logger.With().Str("component", "poller").Str("user", user).Logger(),
	}
}

// Run starts the polling loop and sends updates to the provided channel.
// Blocks until context is cancelled.
func (p *Poller) Run(ctx context.Context, updates chan<- Update) error {
	p.logger.Info().
		Dur("interval", p.interval).
		Msg("Starting poller")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Poll immediately on start
	p.send(ctx, updates, p.Poll(ctx))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("Poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.send(ctx, updates, p.Poll(ctx))
		}
	}
}

// Poll fetches the most recent track once and compares it with the
// previous poll. Errors leave the change state untouched.
func (p *Poller) Poll(ctx context.Context) Update {
	track, err := Latest(ctx, p.source, p.user)
	if err != nil {
		p.logger.Debug().Err(err).Msg("Error getting recent track")
		return Update{Err: err}
	}

	k := keyOf(track)
	changed := !p.hasLast || k != p.last
	p.last, p.hasLast = k, true

	if changed && track != nil {
		p.logger.Debug().
			Str("track", track.Name).
			Str("artist", track.Artist.Name()).
			Bool("now_playing", track.NowPlaying).
			Msg("Track changed")
	}

	return Update{Track: track, Changed: changed}
}

func (p *Poller) send(ctx context.Context, updates chan<- Update, u Update) {
	select {
	case updates <- u:
	case <-ctx.Done():
	}
}

// Latest returns the user's most recent track, which is the now-playing
// track when there is one. It returns nil when the user has no plays.
func Latest(ctx context.Context, source Source, user string) (*lastfm.Track, error) {
	page, err := source.GetRecentTracks(ctx, user, lastfm.RecentTracksOptions{Limit: lastfm.Some(1)})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, nil
	}
	track := page.Items[0]
	return &track, nil
}

// NowPlaying returns the track the user is playing now, or nil
func NowPlaying(ctx context.Context, source Source, user string) (*lastfm.Track, error) {
	track, err := Latest(ctx, source, user)
	if err != nil || track == nil || !track.NowPlaying {
		return nil, err
	}
	return track, nil
}
