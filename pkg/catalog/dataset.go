package catalog

import (
	"context"
	"encoding/json"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/glorpus-work/mlcat/pkg/client"
	"github.com/glorpus-work/mlcat/pkg/download"
)

// maxResolveWorkers bounds the fan-out when resolving a dataset's collections.
// Descriptor fetches are small metadata calls, so a low cap is enough.
const maxResolveWorkers = 4

// Dataset brings together the collections that compose a single dataset, e.g.
// a source imagery collection and a labels collection. Collection descriptors
// are captured at construction; the resolved collection list is built on first
// access and cached for the dataset's lifetime.
type Dataset struct {
	// ID is the dataset id.
	ID string
	// Title is the human-readable dataset title, if the catalog supplies one.
	Title string
	// Extra holds dataset record fields this client does not interpret.
	Extra map[string]json.RawMessage

	api         client.API
	descriptors []Descriptor

	mu       sync.Mutex
	resolved *CollectionList
}

// DownloadOptions control a dataset-wide archive download.
type DownloadOptions struct {
	// Dir is the destination directory. Must be absolute.
	Dir string
	// Mode selects the transfer policy for existing local files.
	Mode download.Mode
	// Concurrency bounds parallel archive transfers; if <= 0 the transfers run
	// one at a time.
	Concurrency int
	// OnProgress, when set, is invoked per collection after every chunk written.
	OnProgress func(collectionID string, written, total int64)
}

// NewDataset builds a Dataset from its API record. Descriptor type tags are
// validated here, so a malformed record fails at construction rather than at
// first resolution.
func NewDataset(record *client.DatasetRecord, api client.API) (*Dataset, error) {
	descriptors, err := parseDescriptors(record.Collections)
	if err != nil {
		return nil, Wrapf(err, "dataset %q", record.ID)
	}
	return &Dataset{
		ID:          record.ID,
		Title:       record.Title,
		Extra:       record.Extra,
		api:         api,
		descriptors: descriptors,
	}, nil
}

// Descriptors returns a copy of the dataset's collection descriptors.
func (d *Dataset) Descriptors() []Descriptor {
	out := make([]Descriptor, len(d.descriptors))
	copy(out, d.descriptors)
	return out
}

// Collections resolves the dataset's member collections. The result is
// memoized: after the first successful call, the same list is returned without
// further network calls, even if the catalog's descriptor list has changed
// since. A failed resolution is not memoized and a later call retries.
func (d *Dataset) Collections(ctx context.Context) (*CollectionList, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.resolved != nil {
		return d.resolved, nil
	}

	members, err := d.resolveMembers(ctx)
	if err != nil {
		return nil, err
	}
	d.resolved = newCollectionList(members)
	return d.resolved, nil
}

// Download fetches the archive of every member collection into opts.Dir and
// returns the local paths in member order. The first failing transfer cancels
// the remaining ones.
func (d *Dataset) Download(ctx context.Context, opts DownloadOptions) ([]string, error) {
	list, err := d.Collections(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, list.Len())
	group, groupCtx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		group.SetLimit(opts.Concurrency)
	} else {
		group.SetLimit(1)
	}

	for i, collection := range list.All() {
		group.Go(func() error {
			fetchOpts := download.Options{Dir: opts.Dir, Mode: opts.Mode}
			if opts.OnProgress != nil {
				fetchOpts.OnProgress = func(written, total int64) {
					opts.OnProgress(collection.ID(), written, total)
				}
			}
			path, err := collection.Download(groupCtx, fetchOpts)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// TotalArchiveSize sums the archive sizes of the dataset's member collections.
// Members without an archive are ignored; when no member has one, the result
// is nil.
func (d *Dataset) TotalArchiveSize(ctx context.Context) (*int64, error) {
	list, err := d.Collections(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	var known bool
	for _, collection := range list.All() {
		size, err := collection.ArchiveSize(ctx)
		if err != nil {
			return nil, err
		}
		if size == nil {
			continue
		}
		total += *size
		known = true
	}
	if !known {
		return nil, nil
	}
	return &total, nil
}

// resolveMembers fetches the member collections. A single descriptor is
// fetched on the calling goroutine; multiple descriptors fan out over a small
// worker pool. Results land in slots indexed by descriptor position, so the
// output order matches the input order regardless of completion order.
func (d *Dataset) resolveMembers(ctx context.Context) ([]Member, error) {
	if len(d.descriptors) == 0 {
		return nil, nil
	}
	if len(d.descriptors) == 1 {
		member, err := d.fetchMember(ctx, d.descriptors[0])
		if err != nil {
			return nil, err
		}
		return []Member{member}, nil
	}

	members := make([]Member, len(d.descriptors))
	var firstErr error
	var mu sync.Mutex

	tasks := make(chan int)
	var wg sync.WaitGroup

	workers := min(len(d.descriptors), maxResolveWorkers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				member, err := d.fetchMember(ctx, d.descriptors[idx])
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					members[idx] = member
				}
				mu.Unlock()
			}
		}()
	}

	for i := range d.descriptors {
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		// Partial successes are discarded; the dataset stays unresolved.
		return nil, firstErr
	}
	return members, nil
}

func (d *Dataset) fetchMember(ctx context.Context, descriptor Descriptor) (Member, error) {
	record, err := d.api.GetCollection(ctx, descriptor.ID)
	if err != nil {
		return Member{}, err
	}
	return Member{
		Collection: NewCollection(record, d.api),
		Types:      descriptor.Types,
	}, nil
}

// ListDatasets returns all datasets hosted by the catalog.
func ListDatasets(ctx context.Context, api client.API) ([]*Dataset, error) {
	records, err := api.ListDatasets(ctx)
	if err != nil {
		return nil, err
	}
	datasets := make([]*Dataset, 0, len(records))
	for _, record := range records {
		dataset, err := NewDataset(record, api)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}
	return datasets, nil
}

// FetchDataset fetches a single dataset by id.
func FetchDataset(ctx context.Context, api client.API, datasetID string) (*Dataset, error) {
	record, err := api.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return NewDataset(record, api)
}
