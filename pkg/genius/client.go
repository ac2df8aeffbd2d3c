// Package genius provides a client for the Genius lyrics service.
//
// This package implements the Genius REST API (songs, artists, albums,
// search), the OAuth2 authorization-code flow, and a scraper that extracts
// lyrics text from rendered song pages. It is designed to be used as a
// standalone SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/verses/pkg/genius"
//
//	client, err := genius.NewClient(genius.Config{
//	    AccessToken: "your-access-token",
//	})
//
//	resp, err := client.Search().Multi(ctx, "Yesterday The Beatles")
//	if err != nil {
//	    log.Fatal(err)
//	}
package genius

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Config holds client configuration.
type Config struct {
	AccessToken          string        // Optional: OAuth2 bearer token; without it every call uses the public API
	ClientID             string        // Optional: OAuth2 client id (required for Auth())
	ClientSecret         string        // Optional: OAuth2 client secret (required for Auth().ExchangeCode)
	RedirectURI          string        // Optional: OAuth2 redirect URI registered for the client
	HTTPClient           *http.Client  // Optional: HTTP client (defaults to one with Timeout)
	Timeout              time.Duration // Optional: per-request timeout (defaults to 5s)
	Retries              int           // Optional: extra attempts on timeouts and 5xx responses
	RetryDelay           time.Duration // Optional: first delay between retries (defaults to 1s, doubles)
	SleepTime            time.Duration // Optional: minimum delay between two requests
	RemoveSectionHeaders bool          // Optional: strip "[Verse 1]" style headers from scraped lyrics
	UserAgent            string        // Optional: User-Agent header
	APIBaseURL           string        // Optional: authenticated API base (used for testing)
	PublicBaseURL        string        // Optional: public web API base (used for testing)
	Logger               Logger        // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Genius operations.
type Client struct {
	accessToken          string
	clientID             string
	clientSecret         string
	redirectURI          string
	httpClient           *http.Client
	retries              int
	retryDelay           time.Duration
	sleepTime            time.Duration
	removeSectionHeaders bool
	userAgent            string
	apiBaseURL           string
	publicBaseURL        string
	logger               Logger

	mu          sync.Mutex
	lastRequest time.Time

	auth    *AuthService
	search  *SearchService
	songs   *SongService
	artists *ArtistService
	albums  *AlbumService
	lyrics  *LyricsService
}

const (
	// DefaultAPIBaseURL is the authenticated Genius API endpoint.
	DefaultAPIBaseURL = "https://api.genius.com/"

	// DefaultPublicBaseURL is the endpoint used by the genius.com web app.
	// It needs no token and exposes albums and sectioned search.
	DefaultPublicBaseURL = "https://genius.com/api/"

	// DefaultTimeout is the per-request timeout when no HTTPClient is given.
	DefaultTimeout = 5 * time.Second

	defaultUserAgent  = "verses/1.0"
	defaultRetryDelay = 1 * time.Second
)

// NewClient creates a new Genius client.
//
// Returns an error if the configuration is invalid.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("%w: Retries must not be negative", ErrInvalidConfig)
	}
	if cfg.SleepTime < 0 || cfg.Timeout < 0 || cfg.RetryDelay < 0 {
		return nil, fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = defaultRetryDelay
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	apiBaseURL := cfg.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = DefaultAPIBaseURL
	}

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = DefaultPublicBaseURL
	}

	c := &Client{
		accessToken:          cfg.AccessToken,
		clientID:             cfg.ClientID,
		clientSecret:         cfg.ClientSecret,
		redirectURI:          cfg.RedirectURI,
		httpClient:           httpClient,
		retries:              cfg.Retries,
		retryDelay:           retryDelay,
		sleepTime:            cfg.SleepTime,
		removeSectionHeaders: cfg.RemoveSectionHeaders,
		userAgent:            userAgent,
		apiBaseURL:           ensureTrailingSlash(apiBaseURL),
		publicBaseURL:        ensureTrailingSlash(publicBaseURL),
		logger:               cfg.Logger,
	}

	c.auth = &AuthService{client: c}
	c.search = &SearchService{client: c}
	c.songs = &SongService{client: c}
	c.artists = &ArtistService{client: c}
	c.albums = &AlbumService{client: c}
	c.lyrics = &LyricsService{client: c}

	return c, nil
}

// Auth returns the OAuth2 service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return c.search
}

// Songs returns the song resource service.
func (c *Client) Songs() *SongService {
	return c.songs
}

// Artists returns the artist resource service.
func (c *Client) Artists() *ArtistService {
	return c.artists
}

// Albums returns the album resource service.
func (c *Client) Albums() *AlbumService {
	return c.albums
}

// Lyrics returns the lyrics page scraper.
func (c *Client) Lyrics() *LyricsService {
	return c.lyrics
}

// SetAccessToken sets the bearer token for authenticated requests.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// AccessToken returns the current bearer token.
func (c *Client) AccessToken() string {
	return c.accessToken
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

func ensureTrailingSlash(u string) string {
	if u[len(u)-1] != '/' {
		return u + "/"
	}
	return u
}
