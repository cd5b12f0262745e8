package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	mhttp "sweeparr/pkg/http"
	"sweeparr/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// batchSize caps how many item ids are packed into one lookup request to
// stay under url length limits.
const batchSize = 50

// itemFields are the extra metadata fields requested on every item read.
const itemFields = "DateCreated,SeriesInfo,ParentId,ProductionYear,ProviderIds,SeriesId,Genres,MediaSources"

// ClientInterface is the narrow metadata contract the sweep engine needs.
type ClientInterface interface {
	ListItems(ctx context.Context, kinds []ItemKind, limit int) ([]Item, error)
	GetItemsByIDs(ctx context.Context, ids []string) ([]Item, error)
	SystemInfo(ctx context.Context) (*SystemInfo, error)
	ActiveSessions(ctx context.Context) ([]Session, error)
}

type Client struct {
	http    mhttp.HTTPClient
	baseURL *url.URL
	apiKey  string
	userID  string
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the http client used for requests
func WithHTTPClient(http mhttp.HTTPClient) ClientOption {
	return func(c *Client) {
		c.http = http
	}
}

// New creates a Jellyfin client for the given server url, api key and user.
func New(rawURL, apiKey, userID string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse jellyfin url: %w", err)
	}

	c := &Client{
		http:    http.DefaultClient,
		baseURL: u,
		apiKey:  apiKey,
		userID:  userID,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListItems fetches items of the requested kinds sorted newest first. A
// limit of zero means no cap.
func (c *Client) ListItems(ctx context.Context, kinds []ItemKind, limit int) ([]Item, error) {
	log := logger.FromCtx(ctx)

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}

	q := url.Values{}
	q.Set("Recursive", "true")
	q.Set("IncludeItemTypes", strings.Join(names, ","))
	q.Set("Fields", itemFields)
	q.Set("SortBy", "DateCreated")
	q.Set("SortOrder", "Descending")
	if limit > 0 {
		q.Set("Limit", fmt.Sprint(limit))
	}

	var resp itemsResponse
	err := c.get(ctx, fmt.Sprintf("/Users/%s/Items", c.userID), q, &resp)
	if err != nil {
		log.Errorw("failed to list items", "kinds", names, "error", err)
		return nil, err
	}

	return resp.Items, nil
}

// GetItemsByIDs fetches the given items, chunking the id list into batched
// requests issued concurrently. Any chunk failure fails the whole call.
func (c *Client) GetItemsByIDs(ctx context.Context, ids []string) ([]Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	chunks := make([][]string, 0, (len(ids)+batchSize-1)/batchSize)
	for i := 0; i < len(ids); i += batchSize {
		end := min(i+batchSize, len(ids))
		chunks = append(chunks, ids[i:end])
	}

	results := make([][]Item, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			q := url.Values{}
			q.Set("Recursive", "true")
			q.Set("Ids", strings.Join(chunk, ","))
			q.Set("Fields", itemFields)

			var resp itemsResponse
			err := c.get(gctx, fmt.Sprintf("/Users/%s/Items", c.userID), q, &resp)
			if err != nil {
				return err
			}

			results[i] = resp.Items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get items by ids: %w", err)
	}

	var items []Item
	for _, r := range results {
		items = append(items, r...)
	}

	return items, nil
}

// SystemInfo fetches server identity, used as a connection check.
func (c *Client) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	var info SystemInfo
	err := c.get(ctx, "/System/Info", nil, &info)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

// ActiveSessions lists current playback sessions.
func (c *Client) ActiveSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	err := c.get(ctx, "/Sessions", nil, &sessions)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Emby-Token", c.apiKey)

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
		return fmt.Errorf("jellyfin api error: %s: %s", res.Status, string(b))
	}

	return json.Unmarshal(b, out)
}
