package lastfm

import (
	"context"
)

// ChartService provides the global Last.fm charts.
type ChartService struct {
	client *Client
}

// GetTopArtists returns a page of the global artist chart.
func (s *ChartService) GetTopArtists(ctx context.Context, opts PageOptions) (*ObjectPage[Artist], error) {
	data, err := s.chart(ctx, "chart.gettopartists", opts)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("artists"), "artist", DecodeArtist)
	return &result, nil
}

// GetTopTags returns a page of the global tag chart.
func (s *ChartService) GetTopTags(ctx context.Context, opts PageOptions) (*ObjectPage[Tag], error) {
	data, err := s.chart(ctx, "chart.gettoptags", opts)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("tags"), "tag", DecodeTag)
	return &result, nil
}

// GetTopTracks returns a page of the global track chart.
func (s *ChartService) GetTopTracks(ctx context.Context, opts PageOptions) (*ObjectPage[Track], error) {
	data, err := s.chart(ctx, "chart.gettoptracks", opts)
	if err != nil {
		return nil, err
	}

	result := DecodeObjectPage(object(data).obj("tracks"), "track", DecodeTrack)
	return &result, nil
}

func (s *ChartService) chart(ctx context.Context, method string, opts PageOptions) (map[string]any, error) {
	params := Params{}
	opts.apply(params)
	return s.client.call(ctx, method, params)
}
