package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Source provides pages of a user's recent tracks.
// *lastfm.UserService satisfies it.
type Source interface {
	GetRecentTracks(ctx context.Context, user string, opts lastfm.RecentTracksOptions) (*lastfm.ObjectPage[lastfm.Track], error)
}

// SyncResult summarizes one sync run
type SyncResult struct {
	Pages   int       // Pages fetched
	Fetched int       // Tracks received, including a now-playing entry
	Added   int       // Plays new to the archive
	Since   time.Time // Lower bound used, zero for a full sync
	Resumed bool      // An unfinished range from an earlier run was fetched
	Partial bool      // The page limit left a range for the next run
}

// Syncer copies a user's listening history into a Store
type Syncer struct {
	source   Source
	store    *Store
	pageSize int
	maxPages int
	logger   zerolog.Logger
}

// DefaultPageSize is the largest page user.getRecentTracks serves
const DefaultPageSize = 200

// NewSyncer creates a Syncer. A pageSize of 0 uses DefaultPageSize and a
// maxPages of 0 fetches every page.
func NewSyncer(source Source, store *Store, pageSize, maxPages int, logger zerolog.Logger) *Syncer {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Syncer{
		source:   source,
		store:    store,
		pageSize: pageSize,
		maxPages: maxPages,
		logger:   logger.With().Str("component", "archive").Logger(),
	}
}

// Sync fetches the plays newer than the user's latest archived play and
// stores them. The first sync of a user fetches the whole history.
//
// When the page limit stops a run early, the range it did not reach is
// recorded in the store and the next run fetches it before anything newer.
func (s *Syncer) Sync(ctx context.Context, user string) (SyncResult, error) {
	var result SyncResult

	gap, hasGap, err := s.store.Gap(ctx, user)
	if err != nil {
		return result, err
	}

	if hasGap {
		s.logger.Info().
			Str("user", user).
			Time("from", gap.From).
			Time("to", gap.To).
			Msg("Resuming unfinished sync")

		result.Resumed = true
		oldest, done, err := s.walk(ctx, user, window(gap), s.maxPages, &result)
		if err != nil {
			return result, err
		}
		if !done {
			if !oldest.IsZero() {
				gap.To = oldest
			}
			return s.partial(ctx, user, gap, result)
		}
		if err := s.store.ClearGap(ctx, user); err != nil {
			return result, err
		}
	}

	limit := s.maxPages
	if limit > 0 {
		limit -= result.Pages
		if limit <= 0 {
			return s.complete(user, result), nil
		}
	}

	latest, ok, err := s.store.Latest(ctx, user)
	if err != nil {
		return result, err
	}

	var next Gap
	if ok {
		// The lower bound is inclusive; the newest stored play is skipped by
		// the unique key if it comes back.
		result.Since = latest
		next.From = latest
	}

	s.logger.Info().
		Str("user", user).
		Time("since", result.Since).
		Int("page_size", s.pageSize).
		Msg("Starting sync")

	oldest, done, err := s.walk(ctx, user, window(next), limit, &result)
	if err != nil {
		return result, err
	}
	if !done {
		next.To = oldest
		return s.partial(ctx, user, next, result)
	}

	return s.complete(user, result), nil
}

// walk fetches the plays in w newest first, stopping after limit pages when
// limit is positive. done reports whether the oldest page was reached and
// oldest is the oldest play seen.
func (s *Syncer) walk(ctx context.Context, user string, w lastfm.Window, limit int, result *SyncResult) (oldest time.Time, done bool, err error) {
	opts := lastfm.RecentTracksOptions{
		Limit:    lastfm.Some(s.pageSize),
		Window:   w,
		Extended: lastfm.Some(true),
	}

	for page := 1; ; page++ {
		if limit > 0 && page > limit {
			return oldest, false, nil
		}

		opts.Page = lastfm.Some(page)
		resp, err := s.source.GetRecentTracks(ctx, user, opts)
		if err != nil {
			return oldest, false, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}

		result.Pages++
		result.Fetched += len(resp.Items)

		added, err := s.store.Save(ctx, user, resp.Items)
		if err != nil {
			return oldest, false, err
		}
		result.Added += added

		for _, t := range resp.Items {
			if !t.NowPlaying && (oldest.IsZero() || t.PlayedAt.Before(oldest)) {
				oldest = t.PlayedAt
			}
		}

		s.logger.Debug().
			Int("page", page).
			Int("total_pages", resp.TotalPages).
			Int("items", len(resp.Items)).
			Int("added", added).
			Msg("Synced page")

		if len(resp.Items) == 0 || page >= resp.TotalPages {
			return oldest, true, nil
		}
	}
}

func (s *Syncer) partial(ctx context.Context, user string, gap Gap, result SyncResult) (SyncResult, error) {
	if err := s.store.SetGap(ctx, user, gap); err != nil {
		return result, err
	}
	result.Partial = true

	s.logger.Info().
		Str("user", user).
		Int("pages", result.Pages).
		Int("added", result.Added).
		Time("remaining_from", gap.From).
		Time("remaining_to", gap.To).
		Msg("Sync stopped at page limit")

	return result, nil
}

func (s *Syncer) complete(user string, result SyncResult) SyncResult {
	s.logger.Info().
		Str("user", user).
		Int("pages", result.Pages).
		Int("added", result.Added).
		Msg("Sync complete")
	return result
}

// window converts a gap to request bounds, leaving zero sides unset
func window(g Gap) lastfm.Window {
	var w lastfm.Window
	if !g.From.IsZero() {
		w.From = lastfm.Some(g.From)
	}
	if !g.To.IsZero() {
		w.To = lastfm.Some(g.To)
	}
	return w
}
