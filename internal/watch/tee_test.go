package watch

import (
	"context"
	"testing"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTee(t *testing.T) {
	in := make(chan Update)
	outs := Tee(context.Background(), in, 2)
	require.Len(t, outs, 2)

	track := &lastfm.Track{Name: "Believe"}
	go func() {
		in <- Update{Track: track, Changed: true}
		close(in)
	}()

	for i, out := range outs {
		u, ok := <-out
		require.True(t, ok, "output %d", i)
		assert.Same(t, track, u.Track)
		assert.True(t, u.Changed)
	}

	// Closing the input closes every output
	for _, out := range outs {
		_, ok := <-out
		assert.False(t, ok)
	}
}

func TestTee_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	outs := Tee(ctx, make(chan Update), 1)

	cancel()

	select {
	case _, ok := <-outs[0]:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("output not closed after cancel")
	}
}
