package sonarr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	mhttp "sweeparr/pkg/http"
)

// ClientInterface is the tv acquisition contract the sweep engine needs.
type ClientInterface interface {
	ListSeries(ctx context.Context) ([]Series, error)
	ListEpisodes(ctx context.Context, seriesID int64) ([]Episode, error)
	DeleteEpisodeFile(ctx context.Context, fileID int64) error
	Queue(ctx context.Context) ([]QueueItem, error)
	SystemStatus(ctx context.Context) (*SystemStatus, error)
}

// Series is Sonarr's library record for a tracked show.
type Series struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	TVDBID int64  `json:"tvdbId"`
	Path   string `json:"path"`
}

type Episode struct {
	ID            int64  `json:"id"`
	SeriesID      int64  `json:"seriesId"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	HasFile       bool   `json:"hasFile"`
	EpisodeFileID int64  `json:"episodeFileId"`
}

type QueueItem struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Size     int64  `json:"size"`
	SizeLeft int64  `json:"sizeleft"`
	TimeLeft string `json:"timeleft,omitempty"`
	Protocol string `json:"protocol"`
	Indexer  string `json:"indexer,omitempty"`
}

type queueResponse struct {
	Records []QueueItem `json:"records"`
}

type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}

type Client struct {
	http    mhttp.HTTPClient
	baseURL *url.URL
	apiKey  string
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the http client used for requests
func WithHTTPClient(http mhttp.HTTPClient) ClientOption {
	return func(c *Client) {
		c.http = http
	}
}

// New creates a Sonarr client for the given url and api key.
func New(rawURL, apiKey string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sonarr url: %w", err)
	}

	c := &Client{
		http:    http.DefaultClient,
		baseURL: u,
		apiKey:  apiKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListSeries fetches the whole series library.
func (c *Client) ListSeries(ctx context.Context) ([]Series, error) {
	var series []Series
	err := c.do(ctx, http.MethodGet, "/api/v3/series", nil, &series)
	if err != nil {
		return nil, fmt.Errorf("failed to list sonarr series: %w", err)
	}

	return series, nil
}

// ListEpisodes fetches all episodes of a series, across every season.
func (c *Client) ListEpisodes(ctx context.Context, seriesID int64) ([]Episode, error) {
	q := url.Values{}
	q.Set("seriesId", fmt.Sprint(seriesID))

	var episodes []Episode
	err := c.do(ctx, http.MethodGet, "/api/v3/episode", q, &episodes)
	if err != nil {
		return nil, fmt.Errorf("failed to list sonarr episodes for series %d: %w", seriesID, err)
	}

	return episodes, nil
}

// DeleteEpisodeFile removes a single episode file from disk.
func (c *Client) DeleteEpisodeFile(ctx context.Context, fileID int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v3/episodefile/%d", fileID), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete sonarr episode file %d: %w", fileID, err)
	}

	return nil
}

// Queue lists the current download queue.
func (c *Client) Queue(ctx context.Context) ([]QueueItem, error) {
	var resp queueResponse
	err := c.do(ctx, http.MethodGet, "/api/v3/queue", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sonarr queue: %w", err)
	}

	return resp.Records, nil
}

// SystemStatus fetches service identity, used as a connection check.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	err := c.do(ctx, http.MethodGet, "/api/v3/system/status", nil, &status)
	if err != nil {
		return nil, err
	}

	return &status, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("sonarr api error: %s: %s", res.Status, string(b))
	}

	if out == nil || len(b) == 0 {
		return nil
	}

	return json.Unmarshal(b, out)
}
