package lastfm

import (
	"context"
)

// UserService provides user profile and listening history operations.
type UserService struct {
	client *Client
}

// FriendsOptions holds the optional parameters of user.getFriends.
type FriendsOptions struct {
	RecentTracks Optional[bool] // Include each friend's latest track
	Limit        Optional[int]
	Page         Optional[int]
}

// RecentTracksOptions holds the optional parameters of user.getRecentTracks.
type RecentTracksOptions struct {
	Limit    Optional[int]
	Page     Optional[int]
	Window   Window         // Only plays within this range
	Extended Optional[bool] // Full artist objects and loved flags
}

// TopOptions holds the optional parameters of the user top-lists.
type TopOptions struct {
	Period Optional[Period]
	Limit  Optional[int]
	Page   Optional[int]
}

// GetInfo returns the profile of a user.
func (s *UserService) GetInfo(ctx context.Context, user string) (*User, error) {
	data, err := s.client.call(ctx, "user.getinfo", userParams(user))
	if err != nil {
		return nil, err
	}

	result := DecodeUser(object(data).obj("user"))
	return &result, nil
}

// GetFriends returns a page of the user's friends.
func (s *UserService) GetFriends(ctx context.Context, user string, opts FriendsOptions) (*ObjectPage[User], error) {
	params := userParams(user)
	params.set(paramRecent, wire(opts.RecentTracks))
	params.set(paramLimit, wire(opts.Limit))
	params.set(paramPage, wire(opts.Page))

	data, err := s.client.call(ctx, "user.getfriends", params)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("friends"), "user", DecodeUser)
	return &result, nil
}

// GetLovedTracks returns a page of the tracks the user has loved.
func (s *UserService) GetLovedTracks(ctx context.Context, user string, opts PageOptions) (*ObjectPage[Track], error) {
	params := userParams(user)
	opts.apply(params)

	data, err := s.client.call(ctx, "user.getlovedtracks", params)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("lovedtracks"), "track", DecodeTrack)
	return &result, nil
}

// GetRecentTracks returns a page of the user's plays, newest first. A track
// currently playing comes first with NowPlaying set.
//
// Example:
//
//	page, err := client.User().GetRecentTracks(ctx, "rj", lastfm.RecentTracksOptions{
//	    Limit:  lastfm.Some(50),
//	    Window: lastfm.Window{From: lastfm.Some(time.Now().Add(-24 * time.Hour))},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, t := range page.Items {
//	    fmt.Println(t.PlayedAt, t.Artist.Name(), "-", t.Name)
//	}
func (s *UserService) GetRecentTracks(ctx context.Context, user string, opts RecentTracksOptions) (*ObjectPage[Track], error) {
	params := userParams(user)
	params.set(paramLimit, wire(opts.Limit))
	params.set(paramPage, wire(opts.Page))
	params.set(paramExtended, wire(opts.Extended))
	opts.Window.apply(params)

	data, err := s.client.call(ctx, "user.getrecenttracks", params)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("recenttracks"), "track", DecodeTrack)
	return &result, nil
}

// GetTopAlbums returns a page of the user's most played albums.
func (s *UserService) GetTopAlbums(ctx context.Context, user string, opts TopOptions) (*ObjectPage[Album], error) {
	data, err := s.client.call(ctx, "user.gettopalbums", opts.params(user))
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("topalbums"), "album", DecodeAlbum)
	return &result, nil
}

// GetTopArtists returns a page of the user's most played artists.
func (s *UserService) GetTopArtists(ctx context.Context, user string, opts TopOptions) (*ObjectPage[Artist], error) {
	data, err := s.client.call(ctx, "user.gettopartists", opts.params(user))
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("topartists"), "artist", DecodeArtist)
	return &result, nil
}

// GetTopTracks returns a page of the user's most played tracks.
func (s *UserService) GetTopTracks(ctx context.Context, user string, opts TopOptions) (*ObjectPage[Track], error) {
	data, err := s.client.call(ctx, "user.gettoptracks", opts.params(user))
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("toptracks"), "track", DecodeTrack)
	return &result, nil
}

// GetTopTags returns the tags the user has applied most.
func (s *UserService) GetTopTags(ctx context.Context, user string, opts LimitOptions) (*ObjectPage[Tag], error) {
	params := userParams(user)
	params.set(paramLimit, wire(opts.Limit))

	data, err := s.client.call(ctx, "user.gettoptags", params)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("toptags"), "tag", DecodeTag)
	return &result, nil
}

// GetWeeklyAlbumChart returns the user's album chart for a week. An empty
// window selects the most recent week.
func (s *UserService) GetWeeklyAlbumChart(ctx context.Context, user string, window Window) (*ObjectPage[Album], error) {
	data, err := s.weekly(ctx, "user.getweeklyalbumchart", user, window)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("weeklyalbumchart"), "album", DecodeAlbum)
	return &result, nil
}

// GetWeeklyArtistChart returns the user's artist chart for a week.
func (s *UserService) GetWeeklyArtistChart(ctx context.Context, user string, window Window) (*ObjectPage[Artist], error) {
	data, err := s.weekly(ctx, "user.getweeklyartistchart", user, window)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("weeklyartistchart"), "artist", DecodeArtist)
	return &result, nil
}

// GetWeeklyTrackChart returns the user's track chart for a week.
func (s *UserService) GetWeeklyTrackChart(ctx context.Context, user string, window Window) (*ObjectPage[Track], error) {
	data, err := s.weekly(ctx, "user.getweeklytrackchart", user, window)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("weeklytrackchart"), "track", DecodeTrack)
	return &result, nil
}

func (s *UserService) weekly(ctx context.Context, method, user string, window Window) (map[string]any, error) {
	params := userParams(user)
	window.apply(params)
	return s.client.call(ctx, method, params)
}

func (o TopOptions) params(user string) Params {
	params := userParams(user)
	params.set(paramPeriod, wire(o.Period))
	params.set(paramLimit, wire(o.Limit))
	params.set(paramPage, wire(o.Page))
	return params
}

func userParams(user string) Params {
	params := Params{}
	params.set(paramUser, nonEmpty(user))
	return params
}
