package radarr

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

// ClientInterface is the movie acquisition contract the sweep engine needs.
type ClientInterface interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	DeleteMovie(ctx context.Context, id int64, deleteFiles bool) error
	Queue(ctx context.Context) ([]QueueItem, error)
	SystemStatus(ctx context.Context) (*SystemStatus, error)
}

// Movie is Radarr's library record for a tracked film.
type Movie struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	TMDBID     int64  `json:"tmdbId"`
	Path       string `json:"path"`
	SizeOnDisk int64  `json:"sizeOnDisk"`
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

// New creates a Radarr client for the given url and api key.
func New(rawURL, apiKey string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse radarr url: %w", err)
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

// ListMovies fetches the whole movie library.
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	err := c.do(ctx, http.MethodGet, "/api/v3/movie", nil, &movies)
	if err != nil {
		return nil, fmt.Errorf("failed to list radarr movies: %w", err)
	}

	return movies, nil
}

// DeleteMovie removes a movie from Radarr, optionally with its files on disk.
// The movie is never re-added to Radarr's own import exclusion list.
func (c *Client) DeleteMovie(ctx context.Context, id int64, deleteFiles bool) error {
	q := url.Values{}
	q.Set("deleteFiles", fmt.Sprint(deleteFiles))
	q.Set("addImportExclusion", "false")

	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v3/movie/%d", id), q, nil)
	if err != nil {
		return fmt.Errorf("failed to delete radarr movie %d: %w", id, err)
	}

	return nil
}

// Queue lists the current download queue.
func (c *Client) Queue(ctx context.Context) ([]QueueItem, error) {
	var resp queueResponse
	err := c.do(ctx, http.MethodGet, "/api/v3/queue", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch radarr queue: %w", err)
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
		return fmt.Errorf("radarr api error: %s: %s", res.Status, string(b))
	}

	if out == nil || len(b) == 0 {
		return nil
	}

	return json.Unmarshal(b, out)
}
