// Package testutil provides an in-process catalog API server for integration
// tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// CatalogServer is an in-memory catalog API served over httptest. It supports
// the collection, dataset, and archive endpoints, including ranged archive
// fetches for resume testing.
type CatalogServer struct {
	mu          sync.RWMutex
	collections map[string]map[string]interface{}
	items       map[string]map[string]interface{}
	datasets    map[string]map[string]interface{}
	archives    map[string][]byte

	// RequireKey, when non-empty, rejects requests without ?key=<RequireKey>.
	RequireKey string

	server *httptest.Server
}

// NewCatalogServer starts an empty catalog server. Callers must Close it.
func NewCatalogServer() *CatalogServer {
	cs := &CatalogServer{
		collections: make(map[string]map[string]interface{}),
		items:       make(map[string]map[string]interface{}),
		datasets:    make(map[string]map[string]interface{}),
		archives:    make(map[string][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections", cs.handleListCollections)
	mux.HandleFunc("GET /collections/{id}", cs.handleGetCollection)
	mux.HandleFunc("GET /collections/{id}/items/{itemID}", cs.handleGetItem)
	mux.HandleFunc("GET /datasets", cs.handleListDatasets)
	mux.HandleFunc("GET /datasets/{id}", cs.handleGetDataset)
	mux.HandleFunc("HEAD /archive/{id}", cs.handleArchiveHead)
	mux.HandleFunc("GET /archive/{id}", cs.handleArchiveGet)

	cs.server = httptest.NewServer(cs.withAuth(mux))
	return cs
}

// URL returns the server's base URL.
func (cs *CatalogServer) URL() string {
	return cs.server.URL
}

// Close shuts the server down.
func (cs *CatalogServer) Close() {
	cs.server.Close()
}

// AddCollection registers a minimal valid collection record under the id.
func (cs *CatalogServer) AddCollection(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.collections[id] = map[string]interface{}{
		"id":           id,
		"stac_version": "1.0.0",
		"description":  "test collection " + id,
		"license":      "CC-BY-4.0",
		"extent": map[string]interface{}{
			"spatial":  map[string]interface{}{"bbox": [][]float64{{-180, -90, 180, 90}}},
			"temporal": map[string]interface{}{"interval": [][]interface{}{{nil, nil}}},
		},
	}
}

// AddItem registers an item record inside a collection.
func (cs *CatalogServer) AddItem(collectionID, itemID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.items[collectionID+"/"+itemID] = map[string]interface{}{
		"id":         itemID,
		"collection": collectionID,
	}
}

// AddDataset registers a dataset record whose collections carry the given type
// tags, e.g. AddDataset("d1", map[string][]string{"c1": {"source_imagery"}}).
// Member order follows the ids slice.
func (cs *CatalogServer) AddDataset(id string, memberIDs []string, types map[string][]string) {
	members := make([]map[string]interface{}, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		members = append(members, map[string]interface{}{
			"id":    memberID,
			"types": types[memberID],
		})
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.datasets[id] = map[string]interface{}{
		"id":          id,
		"collections": members,
	}
}

// SetArchive registers archive content for a collection.
func (cs *CatalogServer) SetArchive(collectionID string, content []byte) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.archives[collectionID] = content
}

func (cs *CatalogServer) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cs.RequireKey != "" && r.URL.Query().Get("key") != cs.RequireKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (cs *CatalogServer) handleListCollections(w http.ResponseWriter, _ *http.Request) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	writeJSON(w, map[string]interface{}{
		"collections": sortedRecords(cs.collections),
		"links":       []interface{}{},
	})
}

func (cs *CatalogServer) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	cs.mu.RLock()
	record, ok := cs.collections[r.PathValue("id")]
	cs.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, record)
}

func (cs *CatalogServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	cs.mu.RLock()
	record, ok := cs.items[r.PathValue("id")+"/"+r.PathValue("itemID")]
	cs.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, record)
}

func (cs *CatalogServer) handleListDatasets(w http.ResponseWriter, _ *http.Request) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	writeJSON(w, sortedRecords(cs.datasets))
}

func (cs *CatalogServer) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	cs.mu.RLock()
	record, ok := cs.datasets[r.PathValue("id")]
	cs.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, record)
}

func (cs *CatalogServer) handleArchiveHead(w http.ResponseWriter, r *http.Request) {
	cs.mu.RLock()
	content, ok := cs.archives[r.PathValue("id")]
	cs.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
}

func (cs *CatalogServer) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	cs.mu.RLock()
	content, ok := cs.archives[r.PathValue("id")]
	cs.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		offset, err := parseRangeOffset(rangeHeader)
		if err != nil || offset > int64(len(content)) {
			http.Error(w, "invalid range", http.StatusRequestedRangeNotSatisfiable)
			return
		}
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, len(content)-1, len(content)))
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write(content[offset:])
		return
	}

	_, _ = w.Write(content)
}

// parseRangeOffset extracts the start offset from an open-ended byte range
// header, "bytes=N-".
func parseRangeOffset(header string) (int64, error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return 0, fmt.Errorf("unsupported range header: %s", header)
	}
	start, ok := strings.CutSuffix(spec, "-")
	if !ok {
		return 0, fmt.Errorf("unsupported range spec: %s", spec)
	}
	return strconv.ParseInt(start, 10, 64)
}

// sortedRecords returns the records ordered by id so listings are
// deterministic.
func sortedRecords(byID map[string]map[string]interface{}) []map[string]interface{} {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		records = append(records, byID[id])
	}
	return records
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
