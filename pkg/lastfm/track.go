package lastfm

import (
	"context"
)

// TrackService provides track operations for the Last.fm API.
type TrackService struct {
	client *Client
}

// TrackInfoOptions holds the optional parameters of track.getInfo.
type TrackInfoOptions struct {
	MBID        Optional[string]
	Autocorrect Optional[bool]
	Username    Optional[string] // Adds this user's play count and loved flag
}

// TrackSearchOptions holds the optional parameters of track.search.
type TrackSearchOptions struct {
	Artist Optional[string] // Narrows the search to one artist
	Limit  Optional[int]
	Page   Optional[int]
}

// GetInfo returns the metadata of a track.
//
// Example:
//
//	track, err := client.Track().GetInfo(ctx, "Believe", "Cher", lastfm.TrackInfoOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(track.Name, "from", track.Album.Name)
func (s *TrackService) GetInfo(ctx context.Context, track, artist string, opts TrackInfoOptions) (*Track, error) {
	params := trackParams(track, artist)
	params.set(paramMBID, wire(opts.MBID))
	params.set(paramAutocorrect, wire(opts.Autocorrect))
	params.set(paramUsername, wire(opts.Username))

	data, err := s.client.call(ctx, "track.getinfo", params)
	if err != nil {
		return nil, err
	}

	result := DecodeTrack(object(data).obj("track"))
	return &result, nil
}

// GetCorrection returns the canonical track for a possibly misspelled
// track and artist name.
func (s *TrackService) GetCorrection(ctx context.Context, track, artist string) (*Track, error) {
	data, err := s.client.call(ctx, "track.getcorrection", trackParams(track, artist))
	if err != nil {
		return nil, err
	}

	result := DecodeTrack(correction(data, "track"))
	return &result, nil
}

// GetSimilar returns tracks similar to the given one, most similar first.
func (s *TrackService) GetSimilar(ctx context.Context, track, artist string, opts SimilarOptions) ([]Track, error) {
	params := trackParams(track, artist)
	params.set(paramAutocorrect, wire(opts.Autocorrect))
	params.set(paramLimit, wire(opts.Limit))

	data, err := s.client.call(ctx, "track.getsimilar", params)
	if err != nil {
		return nil, err
	}

	return mapEach(object(data).obj("similartracks").list("track"), DecodeTrack), nil
}

// GetTopTags returns the most applied tags of a track.
func (s *TrackService) GetTopTags(ctx context.Context, track, artist string, opts TagOptions) ([]Tag, error) {
	params := trackParams(track, artist)
	params.set(paramAutocorrect, wire(opts.Autocorrect))
	params.set(paramUsername, wire(opts.Username))

	data, err := s.client.call(ctx, "track.gettoptags", params)
	if err != nil {
		return nil, err
	}

	return decodeTagList(data), nil
}

// Search searches for tracks by name.
func (s *TrackService) Search(ctx context.Context, track string, opts TrackSearchOptions) (*SearchPage[Track], error) {
	params := Params{}
	params.set(paramTrack, nonEmpty(track))
	params.set(paramArtist, wire(opts.Artist))
	params.set(paramLimit, wire(opts.Limit))
	params.set(paramPage, wire(opts.Page))

	data, err := s.client.call(ctx, "track.search", params)
	if err != nil {
		return nil, err
	}

	result := DecodeSearchPage(object(data).obj("results"), "track", DecodeTrack)
	return &result, nil
}

func trackParams(track, artist string) Params {
	params := Params{}
	params.set(paramTrack, nonEmpty(track))
	params.set(paramArtist, nonEmpty(artist))
	return params
}
