package lastfm

import (
	"net/url"
	"strconv"
	"time"
)

// Optional is a request parameter that is either present or absent.
//
// The zero Optional is absent and is never sent. A present Optional is
// always sent, even when it holds a zero value, so Some(0), Some("") and
// Some(false) reach the service as "0", "" and "0".
//
// Example:
//
//	page, err := client.Artist().GetTopTracks(ctx, "Cher", lastfm.ArtistPageOptions{
//	    Autocorrect: lastfm.Some(true),
//	    Limit:       lastfm.Some(10),
//	})
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Get returns the held value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether the Optional holds a value.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// Value is the wire form of a single request parameter.
type Value struct {
	text    string
	present bool
}

// Text returns a present Value holding s.
func Text(s string) Value {
	return Value{text: s, present: true}
}

// nonEmpty returns a present Value for a non-empty s. Positional name
// arguments use it so that an MBID lookup can leave them blank.
func nonEmpty(s string) Value {
	if s == "" {
		return Value{}
	}
	return Text(s)
}

// Present reports whether the value will be sent.
func (v Value) Present() bool {
	return v.present
}

// String returns the encoded value.
func (v Value) String() string {
	return v.text
}

// wire converts an Optional to its wire form. Booleans are encoded as 1/0,
// times as UNIX seconds.
func wire[T any](o Optional[T]) Value {
	if !o.present {
		return Value{}
	}
	switch v := any(o.value).(type) {
	case string:
		return Text(v)
	case Period:
		return Text(string(v))
	case int:
		return Text(strconv.Itoa(v))
	case int64:
		return Text(strconv.FormatInt(v, 10))
	case bool:
		if v {
			return Text("1")
		}
		return Text("0")
	case time.Time:
		return Text(strconv.FormatInt(v.Unix(), 10))
	default:
		return Value{}
	}
}

// Params maps wire parameter names to values. Absent values are dropped
// when the query string is built.
type Params map[string]Value

// set stores a Value under key, ignoring absent values.
func (p Params) set(key string, v Value) {
	if v.present {
		p[key] = v
	}
}

// encode renders the present parameters. Each key appears exactly once.
func (p Params) encode(values url.Values) {
	for k, v := range p {
		if !v.present {
			continue
		}
		values.Set(k, v.text)
	}
}

// Period selects the time range of a user top-list.
type Period string

// Periods accepted by the user.getTop* methods.
const (
	PeriodOverall Period = "overall"
	Period7Day    Period = "7day"
	Period1Month  Period = "1month"
	Period3Month  Period = "3month"
	Period6Month  Period = "6month"
	Period12Month Period = "12month"
)

// Window bounds a time range. From is sent under the wire key "from", To
// under "to".
type Window struct {
	From Optional[time.Time]
	To   Optional[time.Time]
}

// apply writes the window bounds into params.
func (w Window) apply(p Params) {
	p.set(paramFrom, wire(w.From))
	p.set(paramTo, wire(w.To))
}

// Wire parameter names shared by several methods.
const (
	paramArtist      = "artist"
	paramAlbum       = "album"
	paramTrack       = "track"
	paramUser        = "user"
	paramUsername    = "username"
	paramMBID        = "mbid"
	paramAutocorrect = "autocorrect"
	paramLang        = "lang"
	paramLimit       = "limit"
	paramPage        = "page"
	paramPeriod      = "period"
	paramExtended    = "extended"
	paramRecent      = "recenttracks"
	paramFrom        = "from"
	paramTo          = "to"
)

// PageOptions selects a page of a paginated result.
type PageOptions struct {
	Limit Optional[int]
	Page  Optional[int]
}

func (o PageOptions) apply(p Params) {
	p.set(paramLimit, wire(o.Limit))
	p.set(paramPage, wire(o.Page))
}

// LimitOptions caps the number of returned items.
type LimitOptions struct {
	Limit Optional[int]
}
