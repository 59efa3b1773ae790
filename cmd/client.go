package cmd

import (
	"errors"
	"fmt"

	"github.com/jfmyers9/lfm/internal/config"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/rs/zerolog"
)

// app bundles what every API-backed command needs
type app struct {
	cfg    *config.Config
	client *lastfm.Client
	logger zerolog.Logger
}

// newApp loads configuration and builds a Last.fm client from it
func newApp() (*app, error) {
	logger := setupLogger(logFile, logLevel)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if apiKeyFlag != "" {
		cfg.LastFM.APIKey = apiKeyFlag
	}

	client, err := lastfm.NewClient(lastfm.Config{
		APIKey:    cfg.LastFM.APIKey,
		BaseURL:   cfg.LastFM.BaseURL,
		Timeout:   cfg.LastFM.Timeout,
		UserAgent: "lfm/" + version,
		Logger:    newAPILogger(logger),
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, client: client, logger: logger}, nil
}

// describeError turns SDK errors into a message with a hint for the user
func describeError(err error) string {
	var apiErr *lastfm.Error
	switch {
	case errors.Is(err, lastfm.ErrInvalidConfig):
		return fmt.Sprintf("%v\nSet an API key with 'lfm config set-key KEY' or LFM_LASTFM_API_KEY", err)
	case errors.Is(err, lastfm.ErrInvalidInput):
		return fmt.Sprintf("%v\nCheck the spelling, or try --autocorrect", err)
	case errors.Is(err, lastfm.ErrRateLimitExceeded):
		return fmt.Sprintf("%v\nToo many requests; wait a moment and try again", err)
	case errors.As(err, &apiErr) && apiErr.Code == lastfm.ErrCodeInvalidAPIKey:
		return fmt.Sprintf("%v\nThe configured API key was rejected", err)
	case errors.Is(err, lastfm.ErrTransport):
		return fmt.Sprintf("%v\nCould not reach Last.fm", err)
	}
	return err.Error()
}
