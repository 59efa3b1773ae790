package lastfm

// The Decode* functions build domain values from decoded JSON. They never
// fail: a missing or malformed field leaves the zero value, and nested
// collections default to empty slices.

// DecodeAlbum builds an Album from an album object.
func DecodeAlbum(raw map[string]any) Album {
	o := object(raw)
	return Album{
		Name:        o.strOr("name", "#text", "title"),
		Artist:      decodeArtistRef(o["artist"]),
		MBID:        o.str("mbid"),
		ReleaseDate: o.str("releasedate"),
		Images:      decodeImages(o),
		Stats:       DecodeStats(o),
		Tags:        decodeTags(o, "tags", "toptags"),
		Tracks:      mapEach(o.obj("tracks").list("track"), DecodeTrack),
		Wiki:        DecodeInfo(o.obj("wiki")),
		Rank:        o.obj("@attr").integer("rank"),
		URL:         o.str("url"),
	}
}

// DecodeTrack builds a Track from a track object.
func DecodeTrack(raw map[string]any) Track {
	o := object(raw)
	attr := o.obj("@attr")
	return Track{
		Name:        o.strOr("name", "#text"),
		Artist:      decodeArtistRef(o["artist"]),
		Album:       DecodeAlbum(o.obj("album")),
		MBID:        o.str("mbid"),
		Duration:    o.integer("duration"),
		ReleaseDate: o.str("release_date"),
		Images:      decodeImages(o),
		Stats:       DecodeStats(o),
		Tags:        decodeTags(o, "toptags", "tags"),
		NowPlaying:  attr.str("nowplaying") == "true",
		PlayedAt:    o.obj("date").unix("uts"),
		Loved:       o.str("loved") == "1" || o.str("userloved") == "1",
		Rank:        attr.integer("rank"),
		Match:       o.float("match"),
		URL:         o.str("url"),
	}
}

// DecodeArtist builds an Artist from an artist object. Similar artists are
// decoded recursively.
func DecodeArtist(raw map[string]any) Artist {
	o := object(raw)
	similar := o.obj("similar")
	similarKey := "artist"
	if !similar.has(similarKey) {
		similarKey = "artists"
	}
	return Artist{
		Name:    o.strOr("name", "#text"),
		MBID:    o.str("mbid"),
		Images:  decodeImages(o),
		Stats:   DecodeStats(o),
		Tags:    decodeTags(o, "tags", "toptags"),
		Similar: mapEach(similar.list(similarKey), DecodeArtist),
		Bio:     DecodeInfo(o.obj("bio")),
		Rank:    o.obj("@attr").integer("rank"),
		Match:   o.float("match"),
		URL:     o.str("url"),
	}
}

// DecodeStats reads listener and play counts from an entity object.
//
// Each count is looked up at the top level first and then under "stats".
// When "userplaycount" is missing at both levels, UserPlayCount takes the
// resolved PlayCount: user-scoped listings report the user's plays as
// "playcount".
func DecodeStats(raw map[string]any) Stats {
	o := object(raw)
	nested := o.obj("stats")

	resolve := func(key string) (int, bool) {
		if n, ok := o.lookupInt(key); ok {
			return n, true
		}
		return nested.lookupInt(key)
	}

	listeners, _ := resolve("listeners")
	playCount, _ := resolve("playcount")
	userPlayCount, ok := resolve("userplaycount")
	if !ok {
		userPlayCount = playCount
	}

	return Stats{
		Listeners:     listeners,
		PlayCount:     playCount,
		UserPlayCount: userPlayCount,
	}
}

// DecodeImage builds an Image from an image object.
func DecodeImage(raw map[string]any) Image {
	o := object(raw)
	return Image{
		URL:  o.str("#text"),
		Size: o.str("size"),
	}
}

// DecodeTag builds a Tag from a tag object.
func DecodeTag(raw map[string]any) Tag {
	o := object(raw)
	return Tag{
		Name:  o.str("name"),
		URL:   o.str("url"),
		Count: o.integer("count"),
	}
}

// DecodeInfo builds an Info from a wiki or bio object.
func DecodeInfo(raw map[string]any) Info {
	o := object(raw)
	return Info{
		Summary:   o.str("summary"),
		Content:   o.str("content"),
		Published: o.str("published"),
	}
}

// DecodeUser builds a User from a user object.
func DecodeUser(raw map[string]any) User {
	o := object(raw)

	country := o.str("country")
	if country == "None" {
		country = ""
	}

	registered := o.obj("registered")
	regKey := "unixtime"
	if !registered.has(regKey) {
		regKey = "#text"
	}

	return User{
		Name:       o.str("name"),
		RealName:   o.str("realname"),
		URL:        o.str("url"),
		Images:     decodeImages(o),
		Country:    country,
		Age:        o.integer("age"),
		PlayCount:  o.integer("playcount"),
		Playlists:  o.integer("playlists"),
		Bootstrap:  o.integer("bootstrap"),
		Subscriber: o.integer("subscriber") == 1,
		Type:       o.str("type"),
		Registered: registered.unix(regKey),
	}
}

// DecodeSearchPage builds a SearchPage from the "results" object of a
// *.search method. Matches are read from "<kind>matches" → kind, so
// kind "album" reads results.albummatches.album.
func DecodeSearchPage[T any](raw map[string]any, kind string, decode func(map[string]any) T) SearchPage[T] {
	o := object(raw)
	query := o.obj("@attr").str("for")
	if query == "" {
		query = o.obj("opensearch:Query").str("searchTerms")
	}
	return SearchPage[T]{
		Total:        o.integer("opensearch:totalResults"),
		StartIndex:   o.integer("opensearch:startIndex"),
		ItemsPerPage: o.integer("opensearch:itemsPerPage"),
		Query:        query,
		Matches:      mapEach(o.obj(kind+"matches").list(kind), decode),
	}
}

// DecodeObjectPage builds an ObjectPage from a listing object whose items
// live under key and whose pagination lives under "@attr". A missing
// "@attr" leaves every pagination field zero and both bounds at the epoch.
func DecodeObjectPage[T any](raw map[string]any, key string, decode func(map[string]any) T) ObjectPage[T] {
	o := object(raw)
	attr := o.obj("@attr")
	return ObjectPage[T]{
		Items:      mapEach(o.list(key), decode),
		Page:       attr.integer("page"),
		PerPage:    attr.integer("perPage"),
		TotalPages: attr.integer("totalPages"),
		Total:      attr.integer("total"),
		User:       attr.str("user"),
		From:       attr.unix("from"),
		To:         attr.unix("to"),
	}
}

// decodeArtistRef picks the artist representation from the JSON shape.
func decodeArtistRef(v any) ArtistRef {
	switch v := v.(type) {
	case map[string]any:
		return DetailedArtist(DecodeArtist(v))
	case string:
		return NamedArtist(v)
	default:
		return ArtistRef{}
	}
}

func decodeImages(o object) []Image {
	return mapEach(o.list("image"), DecodeImage)
}

// decodeTags reads the tag list under the first of keys present.
func decodeTags(o object, keys ...string) []Tag {
	for _, key := range keys {
		if o.has(key) {
			return mapEach(o.obj(key).list("tag"), DecodeTag)
		}
	}
	return []Tag{}
}

// decodeTagList reads tag lists returned by *.getTopTags.
func decodeTagList(data map[string]any) []Tag {
	return mapEach(object(data).obj("toptags").list("tag"), DecodeTag)
}
