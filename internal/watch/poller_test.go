package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource returns one response per call, repeating the last one
type scriptedSource struct {
	mu        sync.Mutex
	responses []response
	calls     int
}

type response struct {
	tracks []lastfm.Track
	err    error
}

func (s *scriptedSource) GetRecentTracks(ctx context.Context, user string, opts lastfm.RecentTracksOptions) (*lastfm.ObjectPage[lastfm.Track], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit, ok := opts.Limit.Get(); !ok || limit != 1 {
		return nil, errors.New("expected limit=1")
	}

	i := s.calls
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	s.calls++

	r := s.responses[i]
	if r.err != nil {
		return nil, r.err
	}
	return &lastfm.ObjectPage[lastfm.Track]{Items: r.tracks}, nil
}

func playing(name string) lastfm.Track {
	return lastfm.Track{Name: name, Artist: lastfm.NamedArtist("Cher"), NowPlaying: true, PlayedAt: time.Unix(0, 0).UTC()}
}

func played(name string, unix int64) lastfm.Track {
	return lastfm.Track{Name: name, Artist: lastfm.NamedArtist("Cher"), PlayedAt: time.Unix(unix, 0).UTC()}
}

func TestPoller_Poll(t *testing.T) {
	source := &scriptedSource{responses: []response{
		{tracks: []lastfm.Track{playing("Believe")}},
		{tracks: []lastfm.Track{playing("Believe")}},
		{err: lastfm.ErrServiceOffline},
		{tracks: []lastfm.Track{playing("Believe")}},
		{tracks: []lastfm.Track{played("Believe", 1700000000)}},
		{tracks: []lastfm.Track{playing("Strong Enough")}},
	}}
	poller := NewPoller(source, "rj", time.Second, zerolog.Nop())
	ctx := context.Background()

	first := poller.Poll(ctx)
	require.NoError(t, first.Err)
	assert.True(t, first.Changed)
	assert.True(t, first.Playing())
	assert.Equal(t, "Believe", first.Track.Name)

	second := poller.Poll(ctx)
	assert.False(t, second.Changed)

	failed := poller.Poll(ctx)
	assert.ErrorIs(t, failed.Err, lastfm.ErrServiceOffline)
	assert.Nil(t, failed.Track)

	// An error does not reset change detection
	again := poller.Poll(ctx)
	assert.False(t, again.Changed)

	finished := poller.Poll(ctx)
	assert.True(t, finished.Changed)
	assert.False(t, finished.Playing())

	next := poller.Poll(ctx)
	assert.True(t, next.Changed)
	assert.Equal(t, "Strong Enough", next.Track.Name)
}

func TestPoller_NoPlays(t *testing.T) {
	source := &scriptedSource{responses: []response{{}}}
	poller := NewPoller(source, "rj", time.Second, zerolog.Nop())

	u := poller.Poll(context.Background())
	require.NoError(t, u.Err)
	assert.Nil(t, u.Track)
	assert.True(t, u.Changed)
	assert.False(t, u.Playing())

	assert.False(t, poller.Poll(context.Background()).Changed)
}

func TestPoller_Run(t *testing.T) {
	source := &scriptedSource{responses: []response{
		{tracks: []lastfm.Track{playing("Believe")}},
	}}
	poller := NewPoller(source, "rj", 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan Update, 10)
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx, updates) }()

	first := <-updates
	assert.True(t, first.Changed)
	second := <-updates
	assert.False(t, second.Changed)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}

func TestNowPlaying(t *testing.T) {
	tests := []struct {
		name     string
		response response
		want     string
		wantErr  bool
	}{
		{name: "playing", response: response{tracks: []lastfm.Track{playing("Believe"), played("Old", 1)}}, want: "Believe"},
		{name: "finished", response: response{tracks: []lastfm.Track{played("Old", 1)}}},
		{name: "no plays", response: response{}},
		{name: "error", response: response{err: lastfm.ErrInvalidInput}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &scriptedSource{responses: []response{tt.response}}

			track, err := NowPlaying(context.Background(), source, "rj")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, track)
				return
			}
			require.NotNil(t, track)
			assert.Equal(t, tt.want, track.Name)
		})
	}
}
