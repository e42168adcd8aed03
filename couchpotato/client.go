package couchpotato

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Client represents a CouchPotato API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new CouchPotato client. A missing host or API key is
// not an error here; operations fail with ErrInsufficientSettings instead.
func NewClient(host, apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL: BuildBaseURL(host, apiKey),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// NormalizeHost ensures the host ends with exactly one path separator
func NormalizeHost(host string) string {
	if host == "" || strings.HasSuffix(host, "/") {
		return host
	}
	return host + "/"
}

// BuildBaseURL returns the API root for a host and key, e.g.
// http://localhost:5050/api/abc123/
func BuildBaseURL(host, apiKey string) string {
	baseURL := NormalizeHost(host)
	if baseURL != "" && apiKey != "" {
		baseURL += "api/" + apiKey + "/"
	}
	return baseURL
}

// BaseURL returns the effective API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasSettings reports whether both host and API key are configured
func (c *Client) HasSettings() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// doRequest performs a request against the API root
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values) ([]byte, error) {
	if !c.HasSettings() {
		return nil, ErrInsufficientSettings
	}

	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("Making CouchPotato API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

// get fetches an endpoint and decodes the JSON response into v
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}

	return nil
}

// GetMediaByID retrieves a single movie by its CouchPotato id
func (c *Client) GetMediaByID(ctx context.Context, id string) (*MediaResponse, error) {
	if id == "" {
		return nil, ErrIDNotString
	}

	var resp MediaResponse
	if err := c.get(ctx, "media.get/", url.Values{"id": {id}}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// WantedList lists movies with an active wanted status
func (c *Client) WantedList(ctx context.Context) (*WantedListResponse, error) {
	var resp WantedListResponse
	if err := c.get(ctx, "media.list/", url.Values{"status": {wantedStatusActive}}, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("total", resp.Total).
		Int("count", len(resp.Movies)).
		Msg("Retrieved wanted list from CouchPotato")

	return &resp, nil
}

// Charts lists trending movies grouped by chart
func (c *Client) Charts(ctx context.Context) (*ChartsResponse, error) {
	var resp ChartsResponse
	if err := c.get(ctx, "charts.view", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// IsAvailable probes the API; the response carries a success flag
func (c *Client) IsAvailable(ctx context.Context) (*AvailableResponse, error) {
	var resp AvailableResponse
	if err := c.get(ctx, "app.available", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Search queries the catalog by free text
func (c *Client) Search(ctx context.Context, title string) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "search/", url.Values{"q": {title}}, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("title", title).
		Int("results", len(resp.Movies)).
		Msg("Searched CouchPotato")

	return &resp, nil
}

// AddOptions describes a movie to put on the wanted list
type AddOptions struct {
	Title      string
	Identifier string
	ProfileID  string
	CategoryID string
	ForceReadd bool
}

// params builds the movie.add query
func (o AddOptions) params() url.Values {
	params := url.Values{}
	params.Set("identifier", o.Identifier)
	params.Set("title", o.Title)
	if o.ProfileID != "" {
		params.Set("profile_id", o.ProfileID)
	}
	if o.CategoryID != "" {
		params.Set("category_id", o.CategoryID)
	}
	if o.ForceReadd {
		params.Set("force_readd", strconv.FormatBool(o.ForceReadd))
	}
	return params
}

// AddToWanted adds a movie to the wanted list
func (c *Client) AddToWanted(ctx context.Context, opts AddOptions) (*AddResponse, error) {
	if opts.Title == "" || opts.Identifier == "" {
		return nil, ErrNoTitleOrIdentifier
	}

	var resp AddResponse
	if err := c.get(ctx, "movie.add/", opts.params(), &resp); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("title", opts.Title).
		Str("identifier", opts.Identifier).
		Bool("success", resp.Success).
		Msg("Added movie to wanted list")

	return &resp, nil
}

// RemoveFromWanted removes a movie from the wanted list and reports success
func (c *Client) RemoveFromWanted(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrNoIDSupplied
	}

	params := url.Values{}
	params.Set("id", id)
	params.Set("delete_from", "wanted")

	var resp SuccessResponse
	if err := c.get(ctx, "movie.delete/", params, &resp); err != nil {
		return false, err
	}

	c.logger.Info().
		Str("media_id", id).
		Bool("success", resp.Success).
		Msg("Removed movie from wanted list")

	return resp.Success, nil
}
