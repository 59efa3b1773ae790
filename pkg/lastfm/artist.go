package lastfm

import (
	"context"
)

// ArtistService provides artist operations for the Last.fm API.
type ArtistService struct {
	client *Client
}

// ArtistInfoOptions holds the optional parameters of artist.getInfo.
type ArtistInfoOptions struct {
	MBID        Optional[string]
	Autocorrect Optional[bool]
	Username    Optional[string]
	Lang        Optional[string]
}

// SimilarOptions holds the optional parameters of the *.getSimilar methods.
type SimilarOptions struct {
	Autocorrect Optional[bool]
	Limit       Optional[int]
}

// ArtistPageOptions holds the optional parameters of the artist top-lists.
type ArtistPageOptions struct {
	Autocorrect Optional[bool]
	Limit       Optional[int]
	Page        Optional[int]
}

// GetInfo returns the metadata of an artist, including bio, tags and
// similar artists.
//
// Example:
//
//	artist, err := client.Artist().GetInfo(ctx, "Cher", lastfm.ArtistInfoOptions{
//	    Autocorrect: lastfm.Some(true),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(artist.Name, artist.Stats.Listeners)
func (s *ArtistService) GetInfo(ctx context.Context, artist string, opts ArtistInfoOptions) (*Artist, error) {
	params := Params{}
	params.set(paramArtist, nonEmpty(artist))
	params.set(paramMBID, wire(opts.MBID))
	params.set(paramAutocorrect, wire(opts.Autocorrect))
	params.set(paramUsername, wire(opts.Username))
	params.set(paramLang, wire(opts.Lang))

	data, err := s.client.call(ctx, "artist.getinfo", params)
	if err != nil {
		return nil, err
	}

	result := DecodeArtist(object(data).obj("artist"))
	return &result, nil
}

// GetCorrection returns the canonical artist for a possibly misspelled
// name. The result is the zero Artist when the service has no correction.
func (s *ArtistService) GetCorrection(ctx context.Context, artist string) (*Artist, error) {
	params := Params{}
	params.set(paramArtist, nonEmpty(artist))

	data, err := s.client.call(ctx, "artist.getcorrection", params)
	if err != nil {
		return nil, err
	}

	result := DecodeArtist(correction(data, "artist"))
	return &result, nil
}

// GetSimilar returns artists similar to the given one, most similar first.
func (s *ArtistService) GetSimilar(ctx context.Context, artist string, opts SimilarOptions) ([]Artist, error) {
	params := Params{}
	params.set(paramArtist, nonEmpty(artist))
	params.set(paramAutocorrect, wire(opts.Autocorrect))
	params.set(paramLimit, wire(opts.Limit))

	data, err := s.client.call(ctx, "artist.getsimilar", params)
	if err != nil {
		return nil, err
	}

	return mapEach(object(data).obj("similarartists").list("artist"), DecodeArtist), nil
}

// GetTopAlbums returns a page of the artist's most played albums.
func (s *ArtistService) GetTopAlbums(ctx context.Context, artist string, opts ArtistPageOptions) (*ObjectPage[Album], error) {
	data, err := s.client.call(ctx, "artist.gettopalbums", opts.params(artist))
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("topalbums"), "album", DecodeAlbum)
	return &result, nil
}

// GetTopTags returns the most applied tags of an artist.
func (s *ArtistService) GetTopTags(ctx context.Context, artist string, opts TagOptions) (*ObjectPage[Tag], error) {
	params := Params{}
	params.set(paramArtist, nonEmpty(artist))
	params.set(paramAutocorrect, wire(opts.Autocorrect))
	params.set(paramUsername, wire(opts.Username))

	data, err := s.client.call(ctx, "artist.gettoptags", params)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("toptags"), "tag", DecodeTag)
	return &result, nil
}

// GetTopTracks returns a page of the artist's most played tracks.
func (s *ArtistService) GetTopTracks(ctx context.Context, artist string, opts ArtistPageOptions) (*ObjectPage[Track], error) {
	data, err := s.client.call(ctx, "artist.gettoptracks", opts.params(artist))
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("toptracks"), "track", DecodeTrack)
	return &result, nil
}

// Search searches for artists by name.
func (s *ArtistService) Search(ctx context.Context, artist string, opts PageOptions) (*SearchPage[Artist], error) {
	params := Params{}
	params.set(paramArtist, nonEmpty(artist))
	opts.apply(params)

	data, err := s.client.call(ctx, "artist.search", params)
	if err != nil {
		return nil, err
	}

	result := DecodeSearchPage(object(data).obj("results"), "artist", DecodeArtist)
	return &result, nil
}

func (o ArtistPageOptions) params(artist string) Params {
	params := Params{}
	params.set(paramArtist, nonEmpty(artist))
	params.set(paramAutocorrect, wire(o.Autocorrect))
	params.set(paramLimit, wire(o.Limit))
	params.set(paramPage, wire(o.Page))
	return params
}

// correction extracts the corrected entity from a *.getCorrection response:
// corrections.correction.<key>, or a top-level <key> object.
func correction(data map[string]any, key string) object {
	o := object(data)
	corrections := o.obj("corrections")
	if corrections.has("correction") {
		// A lone correction is an object, several are an array; the first wins.
		if list := corrections.list("correction"); len(list) > 0 {
			return list[0].obj(key)
		}
	}
	return o.obj(key)
}
