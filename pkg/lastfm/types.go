package lastfm

import (
	"encoding/json"
	"time"
)

// Album represents an album as returned by album.getInfo, search results
// and top-album listings.
type Album struct {
	Name        string
	Artist      ArtistRef
	MBID        string
	ReleaseDate string // Opaque: the service does not document its format
	Images      []Image
	Stats       Stats
	Tags        []Tag
	Tracks      []Track
	Wiki        Info
	Rank        int
	URL         string
}

// Track represents a track. Recent-track listings also fill NowPlaying,
// PlayedAt and Loved.
type Track struct {
	Name        string
	Artist      ArtistRef
	Album       Album
	MBID        string
	Duration    int    // Raw: seconds in album track lists, milliseconds from track.getInfo
	ReleaseDate string // Opaque: the service does not document its format
	Images      []Image
	Stats       Stats
	Tags        []Tag
	NowPlaying  bool
	PlayedAt    time.Time // UTC, the UNIX epoch if absent
	Loved       bool
	Rank        int
	Match       float64 // Similarity score from track.getSimilar
	URL         string
}

// Artist represents an artist.
type Artist struct {
	Name    string
	MBID    string
	Images  []Image
	Stats   Stats
	Tags    []Tag
	Similar []Artist
	Bio     Info
	Rank    int
	Match   float64 // Similarity score from artist.getSimilar
	URL     string
}

// Stats holds listener and play counts.
type Stats struct {
	Listeners     int
	PlayCount     int
	UserPlayCount int
}

// Image is an image URL with its size label ("small", "large", ...).
type Image struct {
	URL  string
	Size string
}

// Tag is a user-applied tag.
type Tag struct {
	Name  string
	URL   string
	Count int
}

// Info holds wiki or bio text.
type Info struct {
	Summary   string
	Content   string
	Published string
}

// User represents a Last.fm user.
type User struct {
	Name       string
	RealName   string
	URL        string
	Images     []Image
	Country    string // "" if the user has not set one
	Age        int
	PlayCount  int
	Playlists  int
	Bootstrap  int // Undocumented by the service; passed through
	Subscriber bool
	Type       string
	Registered time.Time // UTC, the UNIX epoch if absent
}

// SearchPage is a page of results from one of the *.search methods.
type SearchPage[T any] struct {
	Total        int
	StartIndex   int
	ItemsPerPage int
	Query        string
	Matches      []T
}

// ObjectPage is a page of a browse or chart listing.
type ObjectPage[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	TotalPages int
	Total      int
	User       string
	From       time.Time // UTC, the UNIX epoch if absent
	To         time.Time // UTC, the UNIX epoch if absent
}

// ArtistRef is the artist of an album or track. Depending on the method,
// the service sends either a bare name or a full artist object; ArtistRef
// holds one or the other.
type ArtistRef struct {
	name   string
	detail *Artist
}

// NamedArtist returns a reference holding only a name.
func NamedArtist(name string) ArtistRef {
	return ArtistRef{name: name}
}

// DetailedArtist returns a reference holding a full artist.
func DetailedArtist(a Artist) ArtistRef {
	return ArtistRef{name: a.Name, detail: &a}
}

// Name returns the display name regardless of how the artist was sent.
func (r ArtistRef) Name() string {
	if r.detail != nil {
		return r.detail.Name
	}
	return r.name
}

// Detail returns the full artist and true when the service sent one.
func (r ArtistRef) Detail() (Artist, bool) {
	if r.detail == nil {
		return Artist{}, false
	}
	return *r.detail, true
}

// IsDetailed reports whether the reference holds a full artist.
func (r ArtistRef) IsDetailed() bool {
	return r.detail != nil
}

// IsZero reports whether the reference is empty.
func (r ArtistRef) IsZero() bool {
	return r.detail == nil && r.name == ""
}

// String returns the display name.
func (r ArtistRef) String() string {
	return r.Name()
}

// MarshalJSON encodes a named reference as a string and a detailed one as
// an object.
func (r ArtistRef) MarshalJSON() ([]byte, error) {
	if r.detail != nil {
		return json.Marshal(r.detail)
	}
	return json.Marshal(r.name)
}
