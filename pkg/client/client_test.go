package client_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/mlcat/pkg/auth"
	"github.com/glorpus-work/mlcat/pkg/client"
)

const collectionBody = `{
	"id": "%s",
	"stac_version": "1.0.0",
	"description": "test collection",
	"license": "CC-BY-4.0",
	"extent": {}
}`

func collectionJSON(id string) string {
	return fmt.Sprintf(collectionBody, id)
}

func newClient(t *testing.T, serverURL string, authenticator auth.Authenticator) *client.Client {
	t.Helper()
	c, err := client.New(serverURL, authenticator, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		apiURL      string
		expectError bool
	}{
		{name: "valid URL", apiURL: "https://api.example.com/v1"},
		{name: "missing scheme", apiURL: "api.example.com", expectError: true},
		{name: "garbage", apiURL: "://", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.New(tt.apiURL, nil, time.Second)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, client.ErrAPIURLInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestListCollections_Pagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/collections" && r.URL.Query().Get("page") == "":
			fmt.Fprintf(w, `{"collections": [%s], "links": [{"rel": "next", "href": "%s/collections?page=2"}]}`,
				collectionJSON("c1"), server.URL)
		case r.URL.Query().Get("page") == "2":
			fmt.Fprintf(w, `{"collections": [%s, %s], "links": []}`, collectionJSON("c2"), collectionJSON("c3"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newClient(t, server.URL, nil)
	collections, err := c.ListCollections(context.Background())
	require.NoError(t, err)

	require.Len(t, collections, 3)
	assert.Equal(t, "c1", collections[0].ID)
	assert.Equal(t, "c2", collections[1].ID)
	assert.Equal(t, "c3", collections[2].ID)
}

func TestGetCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collections/bigearthnet_v1_source":
			_, _ = io.WriteString(w, collectionJSON("bigearthnet_v1_source"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newClient(t, server.URL, nil)

	t.Run("found", func(t *testing.T) {
		collection, err := c.GetCollection(context.Background(), "bigearthnet_v1_source")
		require.NoError(t, err)
		assert.Equal(t, "bigearthnet_v1_source", collection.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.GetCollection(context.Background(), "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, client.ErrNotFound)
	})
}

func TestGetCollectionItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/c1/items/item_1", r.URL.Path)
		_, _ = io.WriteString(w, `{"id": "item_1", "collection": "c1"}`)
	}))
	defer server.Close()

	c := newClient(t, server.URL, nil)
	item, err := c.GetCollectionItem(context.Background(), "c1", "item_1")
	require.NoError(t, err)
	assert.Equal(t, "item_1", item.ID)
	assert.Equal(t, "c1", item.Collection)
}

func TestDatasets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/datasets":
			_, _ = io.WriteString(w, `[{"id": "d1", "title": "Dataset One", "collections": [{"id": "c1", "types": ["source_imagery"]}], "citation": "someone et al."}]`)
		case "/datasets/d1":
			_, _ = io.WriteString(w, `{"id": "d1", "collections": [{"id": "c1", "types": ["source_imagery"]}, {"id": "c2", "types": ["labels"]}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newClient(t, server.URL, nil)

	t.Run("list preserves unknown fields", func(t *testing.T) {
		records, err := c.ListDatasets(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "d1", records[0].ID)
		assert.Equal(t, "Dataset One", records[0].Title)
		require.Len(t, records[0].Collections, 1)
		assert.Equal(t, []string{"source_imagery"}, records[0].Collections[0].Types)
		assert.Contains(t, records[0].Extra, "citation")
	})

	t.Run("get", func(t *testing.T) {
		record, err := c.GetDataset(context.Background(), "d1")
		require.NoError(t, err)
		require.Len(t, record.Collections, 2)
		assert.Equal(t, "c2", record.Collections[1].ID)
	})
}

func TestArchiveInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/archive/c1":
			w.Header().Set("Content-Length", "173029030")
			w.WriteHeader(http.StatusOK)
		case "/archive/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	c := newClient(t, server.URL, nil)

	t.Run("size from Content-Length", func(t *testing.T) {
		size, err := c.ArchiveInfo(context.Background(), "c1")
		require.NoError(t, err)
		assert.EqualValues(t, 173029030, size)
	})

	t.Run("missing archive", func(t *testing.T) {
		_, err := c.ArchiveInfo(context.Background(), "gone")
		require.Error(t, err)
		assert.ErrorIs(t, err, client.ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := c.ArchiveInfo(context.Background(), "boom")
		require.Error(t, err)
		assert.ErrorIs(t, err, client.ErrUnexpectedStatus)
	})
}

func TestFetchArchive(t *testing.T) {
	content := "0123456789"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rangeHeader := r.Header.Get("Range")
		if rangeHeader == "" {
			_, _ = io.WriteString(w, content)
			return
		}
		var offset int
		_, err := fmt.Sscanf(rangeHeader, "bytes=%d-", &offset)
		require.NoError(t, err)
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, len(content)-1, len(content)))
		w.WriteHeader(http.StatusPartialContent)
		_, _ = io.WriteString(w, content[offset:])
	}))
	defer server.Close()

	c := newClient(t, server.URL, nil)

	t.Run("full fetch", func(t *testing.T) {
		body, err := c.FetchArchive(context.Background(), "c1", 0)
		require.NoError(t, err)
		defer func() { _ = body.Close() }()

		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("ranged fetch", func(t *testing.T) {
		body, err := c.FetchArchive(context.Background(), "c1", 4)
		require.NoError(t, err)
		defer func() { _ = body.Close() }()

		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "456789", string(data))
	})
}

func TestFetchArchive_RangeIgnoredByServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Server ignores the Range header and answers 200 with full content.
		_, _ = io.WriteString(w, "full content")
	}))
	defer server.Close()

	c := newClient(t, server.URL, nil)
	_, err := c.FetchArchive(context.Background(), "c1", 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnexpectedStatus)
}

func TestAuthenticationIsApplied(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		_, _ = io.WriteString(w, collectionJSON("c1"))
	}))
	defer server.Close()

	c := newClient(t, server.URL, auth.APIKeyAuth{Key: "secret-key"})
	_, err := c.GetCollection(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
}

func TestUserAgentIsSet(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, collectionJSON("c1"))
	}))
	defer server.Close()

	c := newClient(t, server.URL, nil)
	_, err := c.GetCollection(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotUA, "mlcat/"))
}
