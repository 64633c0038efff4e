// Package client implements the HTTP client for the catalog API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/glorpus-work/mlcat/pkg/auth"
	"github.com/glorpus-work/mlcat/pkg/stac"
)

const defaultUserAgent = "mlcat/1.0"

// Client handles HTTP operations against the catalog API.
type Client struct {
	client        *http.Client
	baseURL       *url.URL
	authenticator auth.Authenticator
	userAgent     string
}

// collectionsPage is one page of the paginated collections listing.
type collectionsPage struct {
	Collections []json.RawMessage `json:"collections"`
	Links       []stac.Link       `json:"links"`
}

// New creates a new catalog API client. The authenticator may be nil for
// unauthenticated access (e.g., a local test server).
func New(apiURL string, authenticator auth.Authenticator, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%q: %w", apiURL, ErrAPIURLInvalid)
	}
	return &Client{
		client:        &http.Client{Timeout: timeout},
		baseURL:       parsed,
		authenticator: authenticator,
		userAgent:     defaultUserAgent,
	}, nil
}

// ListCollections returns all collection records, following pagination links.
func (c *Client) ListCollections(ctx context.Context) ([]*stac.Collection, error) {
	pageURL, err := c.endpoint("collections")
	if err != nil {
		return nil, err
	}

	var collections []*stac.Collection
	for pageURL != "" {
		data, err := c.getJSON(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		var page collectionsPage
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, Wrap(err, "failed to parse collections listing")
		}
		for _, raw := range page.Collections {
			collection, err := stac.ParseCollection(raw)
			if err != nil {
				return nil, err
			}
			collections = append(collections, collection)
		}
		pageURL = nextLink(page.Links)
	}
	return collections, nil
}

// GetCollection fetches a single collection record by id.
func (c *Client) GetCollection(ctx context.Context, collectionID string) (*stac.Collection, error) {
	reqURL, err := c.endpoint("collections", collectionID)
	if err != nil {
		return nil, err
	}
	data, err := c.getJSON(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	return stac.ParseCollection(data)
}

// GetCollectionItem fetches a single item record from a collection.
func (c *Client) GetCollectionItem(ctx context.Context, collectionID, itemID string) (*stac.Item, error) {
	reqURL, err := c.endpoint("collections", collectionID, "items", itemID)
	if err != nil {
		return nil, err
	}
	data, err := c.getJSON(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	return stac.ParseItem(data)
}

// ListDatasets returns all dataset records.
func (c *Client) ListDatasets(ctx context.Context) ([]*DatasetRecord, error) {
	reqURL, err := c.endpoint("datasets")
	if err != nil {
		return nil, err
	}
	data, err := c.getJSON(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return nil, Wrap(err, "failed to parse datasets listing")
	}
	records := make([]*DatasetRecord, 0, len(rawRecords))
	for _, raw := range rawRecords {
		record, err := parseDatasetRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// GetDataset fetches a single dataset record by id.
func (c *Client) GetDataset(ctx context.Context, datasetID string) (*DatasetRecord, error) {
	reqURL, err := c.endpoint("datasets", datasetID)
	if err != nil {
		return nil, err
	}
	data, err := c.getJSON(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	return parseDatasetRecord(data)
}

// ArchiveInfo resolves the archive size for a collection via a HEAD request.
func (c *Client) ArchiveInfo(ctx context.Context, collectionID string) (int64, error) {
	reqURL, err := c.endpoint("archive", collectionID)
	if err != nil {
		return 0, err
	}

	resp, err := c.doRequest(ctx, http.MethodHead, reqURL, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	size, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil || size < 0 {
		return 0, Wrapf(ErrUnexpectedStatus, "archive %s has no usable Content-Length", collectionID)
	}
	return size, nil
}

// FetchArchive opens a streamed read of a collection's archive starting at the
// given byte offset.
func (c *Client) FetchArchive(ctx context.Context, collectionID string, offset int64) (io.ReadCloser, error) {
	reqURL, err := c.endpoint("archive", collectionID)
	if err != nil {
		return nil, err
	}

	var headers map[string]string
	if offset > 0 {
		headers = map[string]string{"Range": fmt.Sprintf("bytes=%d-", offset)}
	}

	resp, err := c.doRequest(ctx, http.MethodGet, reqURL, headers)
	if err != nil {
		return nil, err
	}
	if offset > 0 && resp.StatusCode != http.StatusPartialContent {
		_ = resp.Body.Close()
		return nil, Wrapf(ErrUnexpectedStatus, "expected partial content for ranged fetch of %s, got %d", collectionID, resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, reqURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Wrap(err, "failed to read response body")
	}
	return data, nil
}

func (c *Client) doRequest(ctx context.Context, method, reqURL string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, http.NoBody)
	if err != nil {
		return nil, Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.authenticator != nil {
		if err := c.authenticator.Apply(req); err != nil {
			return nil, Wrap(err, "failed to apply authentication")
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, Wrap(err, "request failed")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", req.URL.Path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		status := resp.StatusCode
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%d: %w", status, ErrUnexpectedStatus)
	}
	return resp, nil
}

// endpoint joins path segments onto the API root URL.
func (c *Client) endpoint(segments ...string) (string, error) {
	joined := *c.baseURL
	path, err := url.JoinPath(joined.Path, segments...)
	if err != nil {
		return "", Wrap(err, "failed to build endpoint URL")
	}
	joined.Path = path
	return joined.String(), nil
}

func parseDatasetRecord(data []byte) (*DatasetRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, Wrap(err, "failed to parse dataset record")
	}

	var record DatasetRecord
	raw, ok := fields["id"]
	if !ok {
		return nil, Wrap(stac.ErrMissingField, "dataset id")
	}
	if err := json.Unmarshal(raw, &record.ID); err != nil || record.ID == "" {
		return nil, Wrap(stac.ErrMissingField, "dataset id")
	}
	delete(fields, "id")

	if raw, ok := fields["title"]; ok {
		if err := json.Unmarshal(raw, &record.Title); err != nil {
			return nil, Wrap(stac.ErrRecordInvalid, "dataset title")
		}
		delete(fields, "title")
	}
	if raw, ok := fields["collections"]; ok {
		if err := json.Unmarshal(raw, &record.Collections); err != nil {
			return nil, Wrap(stac.ErrRecordInvalid, "dataset collections")
		}
		delete(fields, "collections")
	}

	// Unknown fields are tolerated and preserved so new API fields don't break
	// older clients.
	record.Extra = fields
	return &record, nil
}

func nextLink(links []stac.Link) string {
	for _, link := range links {
		if link.Rel == "next" {
			return link.Href
		}
	}
	return ""
}
