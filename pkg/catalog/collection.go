// Package catalog provides the Collection and Dataset model on top of the raw
// API client: archive downloads, lazily cached archive sizes, and concurrent
// resolution of the collections composing a dataset.
package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/glorpus-work/mlcat/pkg/client"
	"github.com/glorpus-work/mlcat/pkg/download"
	"github.com/glorpus-work/mlcat/pkg/stac"
)

// Collection wraps a resolved collection record with download and archive-size
// behavior. It composes the record rather than extending it; the record is
// owned by the caller once returned.
type Collection struct {
	// Record is the decoded STAC collection record.
	Record *stac.Collection

	api        client.API
	downloader *download.Manager

	// Archive size cache. Three states: not fetched, fetched-absent, and
	// fetched with a known size. A successful lookup is cached permanently;
	// transport errors never are.
	sizeMu      sync.Mutex
	sizeFetched bool
	sizeAbsent  bool
	sizeBytes   int64
}

// NewCollection creates a Collection around a resolved record.
func NewCollection(record *stac.Collection, api client.API) *Collection {
	return &Collection{
		Record:     record,
		api:        api,
		downloader: download.NewManager(api),
	}
}

// ID returns the collection's id.
func (c *Collection) ID() string {
	return c.Record.ID
}

// FetchItem fetches a single item record from this collection.
func (c *Collection) FetchItem(ctx context.Context, itemID string) (*stac.Item, error) {
	return c.api.GetCollectionItem(ctx, c.Record.ID, itemID)
}

// ArchiveSize returns the size in bytes of this collection's archive, or nil
// when the catalog has no archive for it. The first call performs a size
// lookup; both the known-size and no-archive outcomes are cached for the
// lifetime of the Collection. A lookup that fails for any other reason leaves
// the cache untouched, so the next call retries.
func (c *Collection) ArchiveSize(ctx context.Context) (*int64, error) {
	c.sizeMu.Lock()
	defer c.sizeMu.Unlock()

	if c.sizeFetched {
		if c.sizeAbsent {
			return nil, nil
		}
		size := c.sizeBytes
		return &size, nil
	}

	size, err := c.api.ArchiveInfo(ctx, c.Record.ID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			c.sizeFetched = true
			c.sizeAbsent = true
			return nil, nil
		}
		return nil, err
	}

	c.sizeFetched = true
	c.sizeBytes = size
	result := size
	return &result, nil
}

// Download fetches this collection's archive into opts.Dir and returns the
// local path. See the download package for the transfer modes.
func (c *Collection) Download(ctx context.Context, opts download.Options) (string, error) {
	return c.downloader.Fetch(ctx, c.Record.ID, opts)
}

// ListCollections returns all collections hosted by the catalog.
func ListCollections(ctx context.Context, api client.API) ([]*Collection, error) {
	records, err := api.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	collections := make([]*Collection, 0, len(records))
	for _, record := range records {
		collections = append(collections, NewCollection(record, api))
	}
	return collections, nil
}

// FetchCollection fetches a single collection by id.
func FetchCollection(ctx context.Context, api client.API, collectionID string) (*Collection, error) {
	record, err := api.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	return NewCollection(record, api), nil
}
