//go:generate mockgen -destination=./mocks/client.go . API
package client

import (
	"context"
	"encoding/json"
	"io"

	"github.com/glorpus-work/mlcat/pkg/stac"
)

// API defines the catalog operations the rest of the application consumes.
type API interface {
	// ListCollections returns all collection records, following pagination links.
	ListCollections(ctx context.Context) ([]*stac.Collection, error)

	// GetCollection fetches a single collection record by id.
	GetCollection(ctx context.Context, collectionID string) (*stac.Collection, error)

	// GetCollectionItem fetches a single item record from a collection.
	GetCollectionItem(ctx context.Context, collectionID, itemID string) (*stac.Item, error)

	// ListDatasets returns all dataset records.
	ListDatasets(ctx context.Context) ([]*DatasetRecord, error)

	// GetDataset fetches a single dataset record by id.
	GetDataset(ctx context.Context, datasetID string) (*DatasetRecord, error)

	// ArchiveInfo resolves the size in bytes of a collection's archive.
	// Returns ErrNotFound when the collection has no archive.
	ArchiveInfo(ctx context.Context, collectionID string) (int64, error)

	// FetchArchive opens a streamed read of a collection's archive starting at
	// the given byte offset. Offset zero requests the full content.
	FetchArchive(ctx context.Context, collectionID string, offset int64) (io.ReadCloser, error)
}

// DatasetRecord is the dataset payload as served by the API. Collection
// descriptors carry the raw type strings; interpretation happens in the catalog
// layer. Unknown payload fields are preserved in Extra.
type DatasetRecord struct {
	ID          string
	Title       string
	Collections []CollectionRef
	Extra       map[string]json.RawMessage
}

// CollectionRef describes one collection composing a dataset.
type CollectionRef struct {
	ID    string   `json:"id"`
	Types []string `json:"types"`
}
