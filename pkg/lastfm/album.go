package lastfm

import (
	"context"
)

// AlbumService provides album operations for the Last.fm API.
type AlbumService struct {
	client *Client
}

// AlbumInfoOptions holds the optional parameters of album.getInfo.
type AlbumInfoOptions struct {
	MBID        Optional[string] // MusicBrainz ID; replaces artist and album
	Autocorrect Optional[bool]
	Username    Optional[string] // Adds this user's play count to Stats
	Lang        Optional[string] // ISO 639 alpha-2 code for the wiki
}

// TagOptions holds the optional parameters of the *.getTopTags methods.
type TagOptions struct {
	Autocorrect Optional[bool]
	Username    Optional[string]
}

// GetInfo returns the metadata and track list of an album.
//
// Example:
//
//	album, err := client.Album().GetInfo(ctx, "Cher", "Believe", lastfm.AlbumInfoOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(album.Name, len(album.Tracks))
func (s *AlbumService) GetInfo(ctx context.Context, artist, album string, opts AlbumInfoOptions) (*Album, error) {
	params := Params{}
	params.set(paramArtist, nonEmpty(artist))
	params.set(paramAlbum, nonEmpty(album))
	params.set(paramMBID, wire(opts.MBID))
	params.set(paramAutocorrect, wire(opts.Autocorrect))
	params.set(paramUsername, wire(opts.Username))
	params.set(paramLang, wire(opts.Lang))

	data, err := s.client.call(ctx, "album.getinfo", params)
	if err != nil {
		return nil, err
	}

	result := DecodeAlbum(object(data).obj("album"))
	return &result, nil
}

// GetTopTags returns the most applied tags of an album.
func (s *AlbumService) GetTopTags(ctx context.Context, artist, album string, opts TagOptions) ([]Tag, error) {
	params := Params{}
	params.set(paramArtist, nonEmpty(artist))
	params.set(paramAlbum, nonEmpty(album))
	params.set(paramAutocorrect, wire(opts.Autocorrect))
	params.set(paramUsername, wire(opts.Username))

	data, err := s.client.call(ctx, "album.gettoptags", params)
	if err != nil {
		return nil, err
	}

	return decodeTagList(data), nil
}

// Search searches for albums by name.
//
// Example:
//
//	page, err := client.Album().Search(ctx, "believe", lastfm.PageOptions{Limit: lastfm.Some(5)})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, album := range page.Matches {
//	    fmt.Println(album.Artist.Name(), "-", album.Name)
//	}
func (s *AlbumService) Search(ctx context.Context, album string, opts PageOptions) (*SearchPage[Album], error) {
	params := Params{}
	params.set(paramAlbum, nonEmpty(album))
	opts.apply(params)

	data, err := s.client.call(ctx, "album.search", params)
	if err != nil {
		return nil, err
	}

	result := DecodeSearchPage(object(data).obj("results"), "album", DecodeAlbum)
	return &result, nil
}
