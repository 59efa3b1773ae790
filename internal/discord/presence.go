package discord

import (
	"context"
	"time"

	"github.com/jfmyers9/lfm/internal/watch"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/rs/zerolog"
)

type rpcClient interface {
	SetActivity(Activity) error
	Close() error
}

// Presence mirrors a watched Last.fm user's now-playing track to
// Discord Rich Presence.
type Presence struct {
	appID   string
	user    string
	logger  zerolog.Logger
	client  rpcClient
	connect func(string) (rpcClient, error)
	now     func() time.Time
	last    lastActivity
}

type lastActivity struct {
	name, artist, album string
	playing             bool
}

func New(appID, user string, logger zerolog.Logger) *Presence {
	return &Presence{
		appID:  appID,
		user:   user,
		logger: logger.With().Str("component", "discord").Logger(),
		connect: func(appID string) (rpcClient, error) {
			return ipcConnect(appID)
		},
		now: time.Now,
	}
}

// Run consumes poller updates until ctx is done or updates is closed.
// Connects lazily on the first playing track. If Discord isn't
// running, logs the error and retries on the next change.
func (p *Presence) Run(ctx context.Context, updates <-chan watch.Update) {
	for {
		select {
		case <-ctx.Done():
			p.clearActivity()
			p.close()
			return
		case u, ok := <-updates:
			if !ok {
				p.clearActivity()
				p.close()
				return
			}
			// A failed poll says nothing about playback
			if u.Err != nil {
				continue
			}
			p.handleTrack(u.Track)
		}
	}
}

func (p *Presence) handleTrack(track *lastfm.Track) {
	if track == nil || !track.NowPlaying {
		if p.last.playing {
			p.clearActivity()
			p.last = lastActivity{}
		}
		return
	}

	cur := lastActivity{
		name:    track.Name,
		artist:  track.Artist.Name(),
		album:   track.Album.Name,
		playing: true,
	}
	if cur == p.last {
		return
	}

	if err := p.ensureConnected(); err != nil {
		p.logger.Warn().Err(err).Msg("Discord not available")
		return
	}

	// Last.fm does not report playback position, so the timer starts when
	// the track is first seen.
	start := p.now().Unix()
	activity := Activity{
		Type:       activityListening,
		Name:       "Last.fm",
		Details:    track.Name,
		State:      "by " + cur.artist,
		Timestamps: &Timestamps{Start: &start},
		Assets: &Assets{
			LargeImage: coverArt(track),
			LargeText:  cur.album,
			SmallImage: "lastfm",
			SmallText:  p.user,
		},
	}

	if err := p.client.SetActivity(activity); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to set activity")
		p.close()
		return
	}
	p.logger.Debug().Str("track", cur.name).Str("artist", cur.artist).Msg("Activity set")
	p.last = cur
}

func (p *Presence) ensureConnected() error {
	if p.client != nil {
		return nil
	}
	client, err := p.connect(p.appID)
	if err != nil {
		return err
	}
	p.logger.Info().Msg("Connected to Discord")
	p.client = client
	return nil
}

func (p *Presence) clearActivity() {
	if p.client == nil {
		return
	}
	if err := p.client.SetActivity(Activity{}); err != nil {
		p.logger.Debug().Err(err).Msg("Failed to clear activity")
		p.close()
	}
}

func (p *Presence) close() {
	if p.client == nil {
		return
	}
	_ = p.client.Close()
	p.client = nil
}

// imageSizes ranks Last.fm image size labels, largest first
var imageSizes = []string{"mega", "extralarge", "large", "medium", "small"}

// coverArt picks the largest album image, falling back to the track's own
// images. Returns "" when Last.fm has no artwork.
func coverArt(track *lastfm.Track) string {
	if url := largestImage(track.Album.Images); url != "" {
		return url
	}
	return largestImage(track.Images)
}

func largestImage(images []lastfm.Image) string {
	for _, size := range imageSizes {
		for _, img := range images {
			if img.Size == size && img.URL != "" {
				return img.URL
			}
		}
	}
	for _, img := range images {
		if img.URL != "" {
			return img.URL
		}
	}
	return ""
}
