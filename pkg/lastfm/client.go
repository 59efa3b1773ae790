package lastfm

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Config holds client configuration.
type Config struct {
	APIKey     string        // Required: Last.fm API key
	HTTPClient *http.Client  // Optional: HTTP client (defaults to a client with Timeout)
	BaseURL    string        // Optional: Base URL for API (defaults to Last.fm API, used for testing)
	Timeout    time.Duration // Optional: Timeout for the default HTTP client (defaults to 10s)
	UserAgent  string        // Optional: User-Agent header (defaults to "lfm/1.0")
	Logger     Logger        // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Last.fm API operations.
//
// A Client holds no mutable state beyond its configuration and is safe for
// concurrent use by multiple goroutines.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     Logger

	album  *AlbumService
	artist *ArtistService
	chart  *ChartService
	track  *TrackService
	user   *UserService
}

const (
	// DefaultBaseURL is the default Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

	// DefaultTimeout bounds a single request when no HTTPClient is supplied.
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "lfm/1.0"
)

// NewClient creates a new Last.fm API client.
//
// Construction performs no I/O. Returns an error wrapping ErrInvalidConfig
// if the APIKey is missing.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     cfg.Logger,
	}

	c.album = &AlbumService{client: c}
	c.artist = &ArtistService{client: c}
	c.chart = &ChartService{client: c}
	c.track = &TrackService{client: c}
	c.user = &UserService{client: c}

	return c, nil
}

// Album returns the album service.
func (c *Client) Album() *AlbumService {
	return c.album
}

// Artist returns the artist service.
func (c *Client) Artist() *ArtistService {
	return c.artist
}

// Chart returns the global chart service.
func (c *Client) Chart() *ChartService {
	return c.chart
}

// Track returns the track service.
func (c *Client) Track() *TrackService {
	return c.track
}

// User returns the user service.
func (c *Client) User() *UserService {
	return c.user
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
