package lastfm

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned bodies keyed by method name and records the
// query of the last request.
type fakeAPI struct {
	bodies map[string]string
	last   url.Values
}

func newFakeAPI(t *testing.T, bodies map[string]string) (*fakeAPI, *Client) {
	t.Helper()
	api := &fakeAPI{bodies: bodies}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		api.last = r.URL.Query()
		body, ok := api.bodies[api.last.Get("method")]
		if !ok {
			respondJSON(http.StatusOK, `{"error": 3, "message": "Invalid Method"}`)(w, r)
			return
		}
		respondJSON(http.StatusOK, body)(w, r)
	})
	return api, client
}

func TestAlbumService_GetInfo(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"album.getinfo": `{"album": ` + albumPayload + `}`,
	})

	album, err := client.Album().GetInfo(context.Background(), "Cher", "Believe", AlbumInfoOptions{
		Autocorrect: Some(true),
		Username:    Some("rj"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Believe", album.Name)
	assert.Len(t, album.Tracks, 3)
	assert.Equal(t, "Cher", api.last.Get("artist"))
	assert.Equal(t, "Believe", api.last.Get("album"))
	assert.Equal(t, "1", api.last.Get("autocorrect"))
	assert.Equal(t, "rj", api.last.Get("username"))
	assert.NotContains(t, api.last, "lang")
	assert.NotContains(t, api.last, "mbid")
}

func TestAlbumService_GetInfoByMBID(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"album.getinfo": `{"album": {"name": "Believe"}}`,
	})

	_, err := client.Album().GetInfo(context.Background(), "", "", AlbumInfoOptions{MBID: Some("03c91c40")})
	require.NoError(t, err)

	assert.Equal(t, "03c91c40", api.last.Get("mbid"))
	assert.NotContains(t, api.last, "artist")
	assert.NotContains(t, api.last, "album")
}

func TestAlbumService_GetTopTags(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"album.gettoptags": `{"toptags": {"tag": [{"name": "pop", "count": 100}, {"name": "dance", "count": "61"}], "@attr": {"artist": "Cher"}}}`,
	})

	tags, err := client.Album().GetTopTags(context.Background(), "Cher", "Believe", TagOptions{Username: Some("rj")})
	require.NoError(t, err)

	require.Len(t, tags, 2)
	assert.Equal(t, Tag{Name: "dance", Count: 61}, tags[1])
	assert.Equal(t, "rj", api.last.Get("username"))
}

func TestAlbumService_Search(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"album.search": `{"results": {"opensearch:totalResults": "2", "albummatches": {"album": [{"name": "Believe", "artist": "Cher"}, {"name": "Believe", "artist": "Justin Bieber"}]}}}`,
	})

	page, err := client.Album().Search(context.Background(), "believe", PageOptions{Limit: Some(2)})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Matches, 2)
	assert.Equal(t, "2", api.last.Get("limit"))
	assert.NotContains(t, api.last, "page")
}

func TestArtistService_GetCorrection(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "lone correction",
			body: `{"corrections": {"correction": {"artist": {"name": "Guns N' Roses", "url": "u"}, "@attr": {"index": "0"}}}}`,
			want: "Guns N' Roses",
		},
		{
			name: "several corrections",
			body: `{"corrections": {"correction": [{"artist": {"name": "First"}}, {"artist": {"name": "Second"}}]}}`,
			want: "First",
		},
		{
			name: "no correction",
			body: `{"corrections": "\n"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newFakeAPI(t, map[string]string{"artist.getcorrection": tt.body})

			artist, err := client.Artist().GetCorrection(context.Background(), "guns and roses")
			require.NoError(t, err)
			assert.Equal(t, tt.want, artist.Name)
		})
	}
}

func TestArtistService_GetSimilar(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"artist.getsimilar": `{"similarartists": {"artist": [{"name": "Madonna", "match": "1"}, {"name": "Kylie Minogue", "match": "0.87"}], "@attr": {"artist": "Cher"}}}`,
	})

	similar, err := client.Artist().GetSimilar(context.Background(), "Cher", SimilarOptions{Limit: Some(2)})
	require.NoError(t, err)

	require.Len(t, similar, 2)
	assert.InDelta(t, 0.87, similar[1].Match, 1e-9)
	assert.Equal(t, "2", api.last.Get("limit"))
}

func TestArtistService_TopLists(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"artist.gettopalbums": `{"topalbums": {"album": [{"name": "Believe", "playcount": 100, "@attr": {"rank": "1"}}], "@attr": {"artist": "Cher", "page": "1", "perPage": "1", "totalPages": "500", "total": "500"}}}`,
		"artist.gettoptracks": `{"toptracks": {"track": [{"name": "Believe", "listeners": "900"}], "@attr": {"page": "3"}}}`,
		"artist.gettoptags":   `{"toptags": {"tag": [{"name": "pop"}]}}`,
	})
	ctx := context.Background()

	albums, err := client.Artist().GetTopAlbums(ctx, "Cher", ArtistPageOptions{Limit: Some(1), Page: Some(1)})
	require.NoError(t, err)
	require.Len(t, albums.Items, 1)
	assert.Equal(t, 1, albums.Items[0].Rank)
	assert.Equal(t, 500, albums.TotalPages)
	assert.Equal(t, "1", api.last.Get("page"))

	tracks, err := client.Artist().GetTopTracks(ctx, "Cher", ArtistPageOptions{Page: Some(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, tracks.Page)
	assert.Equal(t, 900, tracks.Items[0].Stats.Listeners)

	tags, err := client.Artist().GetTopTags(ctx, "Cher", TagOptions{})
	require.NoError(t, err)
	assert.Len(t, tags.Items, 1)
	assert.Equal(t, 0, tags.Page)
}

func TestChartService(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"chart.gettopartists": `{"artists": {"artist": [{"name": "The Weeknd"}, {"name": "Taylor Swift"}], "@attr": {"page": "1", "perPage": "2", "totalPages": "5000", "total": "10000"}}}`,
		"chart.gettoptags":    `{"tags": {"tag": [{"name": "rock", "taggings": "4000"}], "@attr": {"page": "1"}}}`,
		"chart.gettoptracks":  `{"tracks": {"track": {"name": "Blinding Lights", "artist": {"name": "The Weeknd"}}, "@attr": {"page": "1"}}}`,
	})
	ctx := context.Background()

	artists, err := client.Chart().GetTopArtists(ctx, PageOptions{Limit: Some(2)})
	require.NoError(t, err)
	assert.Len(t, artists.Items, 2)
	assert.Equal(t, 10000, artists.Total)
	assert.Equal(t, "chart.gettopartists", api.last.Get("method"))

	tags, err := client.Chart().GetTopTags(ctx, PageOptions{})
	require.NoError(t, err)
	assert.Equal(t, "rock", tags.Items[0].Name)
	assert.NotContains(t, api.last, "limit")

	tracks, err := client.Chart().GetTopTracks(ctx, PageOptions{})
	require.NoError(t, err)
	require.Len(t, tracks.Items, 1)
	assert.Equal(t, "The Weeknd", tracks.Items[0].Artist.Name())
}

func TestTrackService_GetInfo(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"track.getinfo": `{"track": {
			"name": "Believe",
			"duration": "240000",
			"listeners": "1000",
			"playcount": "5000",
			"artist": {"name": "Cher", "url": "https://www.last.fm/music/Cher"},
			"album": {"artist": "Cher", "title": "Believe", "@attr": {"position": "1"}},
			"userplaycount": "12",
			"userloved": "1",
			"toptags": {"tag": [{"name": "pop"}]}
		}}`,
	})

	track, err := client.Track().GetInfo(context.Background(), "Believe", "Cher", TrackInfoOptions{Username: Some("rj")})
	require.NoError(t, err)

	assert.Equal(t, "Believe", api.last.Get("track"))
	assert.Equal(t, "Cher", api.last.Get("artist"))
	assert.Equal(t, 240000, track.Duration)
	assert.Equal(t, Stats{Listeners: 1000, PlayCount: 5000, UserPlayCount: 12}, track.Stats)
	assert.True(t, track.Loved)
	assert.Equal(t, "Believe", track.Album.Name)
	assert.True(t, track.Artist.IsDetailed())
	assert.Len(t, track.Tags, 1)
}

func TestTrackService_Lists(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"track.getsimilar":    `{"similartracks": {"track": [{"name": "Strong Enough", "match": 1, "artist": {"name": "Cher"}}]}}`,
		"track.gettoptags":    `{"toptags": {"tag": {"name": "pop"}}}`,
		"track.getcorrection": `{"corrections": {"correction": {"track": {"name": "Mrs. Robinson", "artist": {"name": "Simon & Garfunkel"}}}}}`,
		"track.search":        `{"results": {"@attr": {"for": "believe"}, "opensearch:totalResults": "1", "trackmatches": {"track": [{"name": "Believe", "artist": "Cher", "listeners": "10"}]}}}`,
	})
	ctx := context.Background()

	similar, err := client.Track().GetSimilar(ctx, "Believe", "Cher", SimilarOptions{Autocorrect: Some(false)})
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "0", api.last.Get("autocorrect"))

	tags, err := client.Track().GetTopTags(ctx, "Believe", "Cher", TagOptions{})
	require.NoError(t, err)
	assert.Equal(t, []Tag{{Name: "pop"}}, tags)

	corrected, err := client.Track().GetCorrection(ctx, "mrs robinson", "simon and garfunkel")
	require.NoError(t, err)
	assert.Equal(t, "Simon & Garfunkel", corrected.Artist.Name())

	page, err := client.Track().Search(ctx, "believe", TrackSearchOptions{Artist: Some("Cher")})
	require.NoError(t, err)
	assert.Equal(t, "believe", page.Query)
	assert.Equal(t, 10, page.Matches[0].Stats.Listeners)
	assert.Equal(t, "Cher", api.last.Get("artist"))
}

func TestUserService_GetInfo(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"user.getinfo": `{"user": {"name": "rj", "country": "None", "playcount": "10", "registered": {"unixtime": "1037793040"}}}`,
	})

	user, err := client.User().GetInfo(context.Background(), "rj")
	require.NoError(t, err)

	assert.Equal(t, "rj", api.last.Get("user"))
	assert.Equal(t, "rj", user.Name)
	assert.Empty(t, user.Country)
	assert.Equal(t, 10, user.PlayCount)
	assert.Equal(t, time.Unix(1037793040, 0).UTC(), user.Registered)
}

func TestUserService_GetRecentTracks(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"user.getrecenttracks": `{"recenttracks": {
			"track": [
				{"name": "Now", "artist": {"#text": "Cher"}, "@attr": {"nowplaying": "true"}},
				{"name": "Then", "artist": {"#text": "Cher"}, "date": {"uts": "1700000000"}}
			],
			"@attr": {"user": "rj", "page": "1", "perPage": "2", "totalPages": "40", "total": "80"}
		}}`,
	})

	from := time.Unix(1699990000, 0)
	page, err := client.User().GetRecentTracks(context.Background(), "rj", RecentTracksOptions{
		Limit:    Some(2),
		Window:   Window{From: Some(from)},
		Extended: Some(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "1699990000", api.last.Get("from"))
	assert.NotContains(t, api.last, "to")
	assert.Equal(t, "1", api.last.Get("extended"))
	assert.Equal(t, "rj", page.User)
	assert.Equal(t, 80, page.Total)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].NowPlaying)
	assert.Equal(t, epoch, page.Items[0].PlayedAt)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), page.Items[1].PlayedAt)
}

func TestUserService_TopLists(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"user.gettopartists": `{"topartists": {"artist": [{"name": "Cher", "playcount": "321"}], "@attr": {"user": "rj", "page": "1"}}}`,
		"user.gettopalbums":  `{"topalbums": {"album": [{"name": "Believe", "artist": {"name": "Cher"}, "playcount": "50"}]}}`,
		"user.gettoptracks":  `{"toptracks": {"track": [{"name": "Believe", "playcount": "20", "@attr": {"rank": "1"}}]}}`,
		"user.gettoptags":    `{"toptags": {"tag": [{"name": "rock", "count": "3"}]}}`,
	})
	ctx := context.Background()

	artists, err := client.User().GetTopArtists(ctx, "rj", TopOptions{Period: Some(Period7Day), Limit: Some(1)})
	require.NoError(t, err)
	assert.Equal(t, "7day", api.last.Get("period"))
	assert.Equal(t, 321, artists.Items[0].Stats.UserPlayCount)

	albums, err := client.User().GetTopAlbums(ctx, "rj", TopOptions{})
	require.NoError(t, err)
	assert.NotContains(t, api.last, "period")
	assert.Equal(t, "Cher", albums.Items[0].Artist.Name())

	tracks, err := client.User().GetTopTracks(ctx, "rj", TopOptions{Page: Some(2)})
	require.NoError(t, err)
	assert.Equal(t, 1, tracks.Items[0].Rank)
	assert.Equal(t, "2", api.last.Get("page"))

	tags, err := client.User().GetTopTags(ctx, "rj", LimitOptions{Limit: Some(5)})
	require.NoError(t, err)
	assert.Equal(t, 3, tags.Items[0].Count)
}

func TestUserService_FriendsAndLoved(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"user.getfriends":     `{"friends": {"user": {"name": "julia", "country": "Germany"}, "@attr": {"for": "rj", "page": "1", "total": "1"}}}`,
		"user.getlovedtracks": `{"lovedtracks": {"track": [{"name": "Believe", "artist": {"name": "Cher"}, "date": {"uts": "1600000000"}}], "@attr": {"total": "1"}}}`,
	})
	ctx := context.Background()

	friends, err := client.User().GetFriends(ctx, "rj", FriendsOptions{RecentTracks: Some(true)})
	require.NoError(t, err)
	assert.Equal(t, "1", api.last.Get("recenttracks"))
	require.Len(t, friends.Items, 1)
	assert.Equal(t, "Germany", friends.Items[0].Country)

	loved, err := client.User().GetLovedTracks(ctx, "rj", PageOptions{})
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1600000000, 0).UTC(), loved.Items[0].PlayedAt)
}

func TestUserService_WeeklyCharts(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"user.getweeklyartistchart": `{"weeklyartistchart": {"artist": [{"name": "Cher", "playcount": "9"}], "@attr": {"user": "rj", "from": "1699747200", "to": "1700352000"}}}`,
		"user.getweeklyalbumchart":  `{"weeklyalbumchart": {"album": [{"name": "Believe", "artist": {"#text": "Cher"}}]}}`,
		"user.getweeklytrackchart":  `{"weeklytrackchart": {"track": [{"name": "Believe"}]}}`,
	})
	ctx := context.Background()

	window := Window{From: Some(time.Unix(1699747200, 0)), To: Some(time.Unix(1700352000, 0))}
	artists, err := client.User().GetWeeklyArtistChart(ctx, "rj", window)
	require.NoError(t, err)
	assert.Equal(t, "1699747200", api.last.Get("from"))
	assert.Equal(t, "1700352000", api.last.Get("to"))
	assert.Equal(t, time.Unix(1700352000, 0).UTC(), artists.To)

	albums, err := client.User().GetWeeklyAlbumChart(ctx, "rj", Window{})
	require.NoError(t, err)
	assert.NotContains(t, api.last, "from")
	assert.Equal(t, "Cher", albums.Items[0].Artist.Name())

	tracks, err := client.User().GetWeeklyTrackChart(ctx, "rj", Window{})
	require.NoError(t, err)
	assert.Len(t, tracks.Items, 1)
}

func TestService_PropagatesServiceErrors(t *testing.T) {
	_, client := newFakeAPI(t, map[string]string{
		"artist.getinfo": `{"error": 6, "message": "The artist you supplied could not be found"}`,
	})

	artist, err := client.Artist().GetInfo(context.Background(), "zzzz", ArtistInfoOptions{})
	assert.Nil(t, artist)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
