// Package lastfm provides a client library for the read-only Last.fm API 2.0.
//
// # Overview
//
// This package covers the album, artist, chart, track and user methods that
// need only an API key. Each call issues one GET request, decodes the JSON
// response and maps it into plain Go values. The service's JSON is
// inconsistent across methods (numbers sent as strings, an artist sent as a
// bare name or as an object, a lone object where an array is expected);
// the decoders absorb those differences and never fail on a missing field.
//
// # Installation
//
//	go get github.com/jfmyers9/lfm/pkg/lastfm
//
// # Quick Start
//
//	import "github.com/jfmyers9/lfm/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	album, err := client.Album().GetInfo(ctx, "Cher", "Believe", lastfm.AlbumInfoOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(album.Artist.Name(), "-", album.Name)
//
// # Optional Parameters
//
// Optional parameters are Optional values. The zero Optional is not sent;
// anything wrapped with Some is sent, including zero values:
//
//	page, err := client.User().GetTopArtists(ctx, "rj", lastfm.TopOptions{
//	    Period: lastfm.Some(lastfm.Period7Day),
//	    Limit:  lastfm.Some(10),
//	})
//
// # Artist References
//
// Albums and tracks carry an ArtistRef. Depending on the method the service
// sends either a name or a full artist object:
//
//	fmt.Println(track.Artist.Name()) // always works
//	if artist, ok := track.Artist.Detail(); ok {
//	    fmt.Println(artist.URL)
//	}
//
// # Pagination
//
// Search methods return a SearchPage with the total match count. Browse
// and chart methods return an ObjectPage with page, perPage, totalPages and
// total taken from the response's "@attr" object.
//
// # Error Handling
//
// Errors reported by the service are *Error values classified by Kind.
// Everything else (network failures, unexpected statuses, malformed bodies)
// is a *TransportError:
//
//	_, err := client.Artist().GetInfo(ctx, "no such artist", lastfm.ArtistInfoOptions{})
//	switch {
//	case errors.Is(err, lastfm.ErrInvalidInput):
//	    // nothing matched
//	case errors.Is(err, lastfm.ErrRateLimitExceeded):
//	    // slow down
//	case errors.Is(err, lastfm.ErrTransport):
//	    // network or decoding problem
//	}
//
// The client never retries.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and timeouts:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	user, err := client.User().GetInfo(ctx, "rj")
//
// # Configuration
//
// The client can be configured with custom HTTP clients, base URLs (for testing),
// and optional loggers:
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 30 * time.Second},
//	    Logger:     myLogger, // Implements lastfm.Logger interface
//	})
//
// Without an HTTPClient, a client with Config.Timeout (default 10s) is used.
//
// # Last.fm API Documentation
//
// For more information about the Last.fm API:
// https://www.last.fm/api
package lastfm
