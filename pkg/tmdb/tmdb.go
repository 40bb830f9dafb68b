package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	showhttp "github.com/showsync/showsync/pkg/http"
	"github.com/showsync/showsync/pkg/show"
)

// ErrNotFound means the series id is unknown to TMDB
var ErrNotFound = errors.New("series not found")

const (
	// ReleaseDateFormat is the date layout TMDB uses in responses
	ReleaseDateFormat = "2006-01-02"

	DefaultLookupTTL = time.Hour * 12
)

// SeriesDetails is the slice of a TMDB series record the reconciler needs
type SeriesDetails struct {
	TotalSeasons int
	Status       show.Status
}

// ClientInterface is what consumers of series metadata depend on
type ClientInterface interface {
	GetSeriesDetails(ctx context.Context, seriesID int) (*SeriesDetails, error)
}

var _ ClientInterface = (*Client)(nil)

type Client struct {
	client    showhttp.HTTPClient
	baseURL   string
	apiKey    string
	lookups   *gocache.Cache
	lookupTTL time.Duration
}

type ClientOption func(*Client)

// WithHTTPClient sets the http client used for API calls
func WithHTTPClient(client showhttp.HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithLookupTTL controls how long series details are cached
func WithLookupTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.lookupTTL = ttl
	}
}

func New(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("tmdb url is required")
	}

	c := &Client{
		client:    showhttp.NewRateLimitedClient(),
		baseURL:   baseURL,
		apiKey:    apiKey,
		lookupTTL: DefaultLookupTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.lookups = gocache.New(c.lookupTTL, c.lookupTTL)

	return c, nil
}

type seriesResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	NumberOfSeasons int    `json:"number_of_seasons"`
	Status          string `json:"status"`
	InProduction    bool   `json:"in_production"`
}

// GetSeriesDetails fetches season count and airing status for a series.
// Results are cached for the configured TTL.
func (c *Client) GetSeriesDetails(ctx context.Context, seriesID int) (*SeriesDetails, error) {
	key := strconv.Itoa(seriesID)
	if cached, ok := c.lookups.Get(key); ok {
		details := cached.(SeriesDetails)
		return &details, nil
	}

	u := fmt.Sprintf("%s/3/tv/%d", c.baseURL, seriesID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("series details request failed: %w", err)
	}
	defer res.Body.Close()

	details, err := parseSeriesResponse(res)
	if err != nil {
		return nil, err
	}

	c.lookups.Set(key, *details, c.lookupTTL)
	return details, nil
}

func parseSeriesResponse(res *http.Response) (*SeriesDetails, error) {
	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected series details status: %s", res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var series seriesResponse
	if err := json.Unmarshal(b, &series); err != nil {
		return nil, fmt.Errorf("failed to parse series details: %w", err)
	}

	if series.ID == 0 {
		return nil, fmt.Errorf("series details response missing id")
	}

	return &SeriesDetails{
		TotalSeasons: series.NumberOfSeasons,
		Status:       statusFromTMDB(series.Status, series.InProduction),
	}, nil
}

// statusFromTMDB collapses TMDB status strings to the two states the
// lifecycle cares about
func statusFromTMDB(status string, inProduction bool) show.Status {
	switch status {
	case "Ended", "Canceled":
		return show.StatusEnded
	case "Returning Series":
		return show.StatusContinuing
	}

	if inProduction {
		return show.StatusContinuing
	}

	return show.StatusEnded
}
