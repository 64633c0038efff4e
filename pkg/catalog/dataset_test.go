package catalog_test

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/mlcat/pkg/catalog"
	"github.com/glorpus-work/mlcat/pkg/client"
	mock_client "github.com/glorpus-work/mlcat/pkg/client/mocks"
	"github.com/glorpus-work/mlcat/pkg/stac"
)

func datasetRecord(id string, refs ...client.CollectionRef) *client.DatasetRecord {
	return &client.DatasetRecord{ID: id, Collections: refs}
}

func sourceRef(id string) client.CollectionRef {
	return client.CollectionRef{ID: id, Types: []string{"source_imagery"}}
}

func labelsRef(id string) client.CollectionRef {
	return client.CollectionRef{ID: id, Types: []string{"labels"}}
}

func TestNewDataset_DescriptorValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)

	tests := []struct {
		name    string
		record  *client.DatasetRecord
		wantErr error
	}{
		{
			name:    "descriptor without types",
			record:  datasetRecord("d1", client.CollectionRef{ID: "c1"}),
			wantErr: catalog.ErrNoCollectionTypes,
		},
		{
			name:    "unknown type string",
			record:  datasetRecord("d1", client.CollectionRef{ID: "c1", Types: []string{"predictions"}}),
			wantErr: catalog.ErrUnknownCollectionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.NewDataset(tt.record, api)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCollections_SingleDescriptor(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)

	api.EXPECT().GetCollection(gomock.Any(), "c1").Return(record("c1"), nil).Times(1)

	d, err := catalog.NewDataset(datasetRecord("d1", sourceRef("c1")), api)
	require.NoError(t, err)

	list, err := d.Collections(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, list.Len())
	assert.Equal(t, "c1", list.At(0).ID())
	require.Len(t, list.SourceImagery(), 1)
	assert.Equal(t, "c1", list.SourceImagery()[0].ID())
	assert.Empty(t, list.Labels())
}

func TestCollections_OrderingUnderConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)

	ids := []string{"c0", "c1", "c2", "c3", "c4", "c5"}
	refs := make([]client.CollectionRef, len(ids))
	for i, id := range ids {
		refs[i] = sourceRef(id)
		// Earlier descriptors take longer, so completion order is roughly the
		// reverse of input order.
		delay := time.Duration(len(ids)-i) * 10 * time.Millisecond
		api.EXPECT().GetCollection(gomock.Any(), id).DoAndReturn(
			func(_ context.Context, collectionID string) (*stac.Collection, error) {
				time.Sleep(delay)
				return record(collectionID), nil
			})
	}

	d, err := catalog.NewDataset(datasetRecord("d1", refs...), api)
	require.NoError(t, err)

	list, err := d.Collections(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(ids), list.Len())
	for i, id := range ids {
		assert.Equal(t, id, list.At(i).ID(), "slot %d must hold descriptor %d's collection", i, i)
	}
}

func TestCollections_Memoized(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)

	api.EXPECT().GetCollection(gomock.Any(), "c1").Return(record("c1"), nil).Times(1)
	api.EXPECT().GetCollection(gomock.Any(), "c2").Return(record("c2"), nil).Times(1)

	d, err := catalog.NewDataset(datasetRecord("d1", sourceRef("c1"), labelsRef("c2")), api)
	require.NoError(t, err)

	first, err := d.Collections(context.Background())
	require.NoError(t, err)
	second, err := d.Collections(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestCollections_FailFastDiscardsPartialResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)

	fetchErr := fmt.Errorf("c2: %w", client.ErrUnexpectedStatus)
	api.EXPECT().GetCollection(gomock.Any(), "c1").Return(record("c1"), nil)
	api.EXPECT().GetCollection(gomock.Any(), "c2").Return(nil, fetchErr)

	d, err := catalog.NewDataset(datasetRecord("d1", sourceRef("c1"), labelsRef("c2")), api)
	require.NoError(t, err)

	_, err = d.Collections(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnexpectedStatus)

	// Errors are not memoized: a later call retries both fetches.
	api.EXPECT().GetCollection(gomock.Any(), "c1").Return(record("c1"), nil)
	api.EXPECT().GetCollection(gomock.Any(), "c2").Return(record("c2"), nil)

	list, err := d.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())
}

func TestCollections_RoleViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)

	api.EXPECT().GetCollection(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, collectionID string) (*stac.Collection, error) {
			return record(collectionID), nil
		}).Times(3)

	both := client.CollectionRef{ID: "c3", Types: []string{"source_imagery", "labels"}}
	d, err := catalog.NewDataset(datasetRecord("d1", sourceRef("c1"), labelsRef("c2"), both), api)
	require.NoError(t, err)

	list, err := d.Collections(context.Background())
	require.NoError(t, err)

	source := list.SourceImagery()
	labels := list.Labels()

	require.Len(t, source, 2)
	assert.Equal(t, "c1", source[0].ID())
	assert.Equal(t, "c3", source[1].ID())
	require.Len(t, labels, 2)
	assert.Equal(t, "c2", labels[0].ID())
	assert.Equal(t, "c3", labels[1].ID())

	// Views share instances with the full list, no copies.
	assert.Same(t, list.At(2), source[1])
	assert.Same(t, list.At(2), labels[1])
}

func TestTotalArchiveSize(t *testing.T) {
	t.Run("sums known sizes and ignores absent ones", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mock_client.NewMockAPI(ctrl)

		api.EXPECT().GetCollection(gomock.Any(), "c1").Return(record("c1"), nil)
		api.EXPECT().GetCollection(gomock.Any(), "c2").Return(record("c2"), nil)
		api.EXPECT().ArchiveInfo(gomock.Any(), "c1").Return(int64(100), nil)
		api.EXPECT().ArchiveInfo(gomock.Any(), "c2").Return(int64(0), notFound("archive"))

		d, err := catalog.NewDataset(datasetRecord("d1", sourceRef("c1"), labelsRef("c2")), api)
		require.NoError(t, err)

		total, err := d.TotalArchiveSize(context.Background())
		require.NoError(t, err)
		require.NotNil(t, total)
		assert.EqualValues(t, 100, *total)
	})

	t.Run("nil when every archive is absent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mock_client.NewMockAPI(ctrl)

		api.EXPECT().GetCollection(gomock.Any(), "c1").Return(record("c1"), nil)
		api.EXPECT().ArchiveInfo(gomock.Any(), "c1").Return(int64(0), notFound("archive"))

		d, err := catalog.NewDataset(datasetRecord("d1", sourceRef("c1")), api)
		require.NoError(t, err)

		total, err := d.TotalArchiveSize(context.Background())
		require.NoError(t, err)
		assert.Nil(t, total)
	})
}

func TestDatasetDownload(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)
	dir := t.TempDir()

	content := map[string]string{"c1": "source bytes", "c2": "labels bytes"}
	api.EXPECT().GetCollection(gomock.Any(), "c1").Return(record("c1"), nil)
	api.EXPECT().GetCollection(gomock.Any(), "c2").Return(record("c2"), nil)
	for id, data := range content {
		api.EXPECT().ArchiveInfo(gomock.Any(), id).Return(int64(len(data)), nil)
		api.EXPECT().FetchArchive(gomock.Any(), id, int64(0)).
			Return(io.NopCloser(strings.NewReader(data)), nil)
	}

	d, err := catalog.NewDataset(datasetRecord("d1", sourceRef("c1"), labelsRef("c2")), api)
	require.NoError(t, err)

	paths, err := d.Download(context.Background(), catalog.DownloadOptions{Dir: dir, Concurrency: 2})
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "c1.tar.gz"), paths[0])
	assert.Equal(t, filepath.Join(dir, "c2.tar.gz"), paths[1])
}

func TestDatasetDownload_FirstFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)
	dir := t.TempDir()

	api.EXPECT().GetCollection(gomock.Any(), "c1").Return(record("c1"), nil)
	api.EXPECT().GetCollection(gomock.Any(), "c2").Return(record("c2"), nil)
	api.EXPECT().ArchiveInfo(gomock.Any(), "c1").Return(int64(0), notFound("archive")).AnyTimes()
	api.EXPECT().ArchiveInfo(gomock.Any(), "c2").Return(int64(4), nil).AnyTimes()
	api.EXPECT().FetchArchive(gomock.Any(), "c2", int64(0)).
		Return(io.NopCloser(strings.NewReader("data")), nil).AnyTimes()

	d, err := catalog.NewDataset(datasetRecord("d1", sourceRef("c1"), labelsRef("c2")), api)
	require.NoError(t, err)

	_, err = d.Download(context.Background(), catalog.DownloadOptions{Dir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestListAndFetchDatasets(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_client.NewMockAPI(ctrl)

	api.EXPECT().ListDatasets(gomock.Any()).Return([]*client.DatasetRecord{
		datasetRecord("d1", sourceRef("c1")),
		datasetRecord("d2", labelsRef("c2")),
	}, nil)
	api.EXPECT().GetDataset(gomock.Any(), "d1").Return(datasetRecord("d1", sourceRef("c1")), nil)

	datasets, err := catalog.ListDatasets(context.Background(), api)
	require.NoError(t, err)
	require.Len(t, datasets, 2)
	assert.Equal(t, "d1", datasets[0].ID)
	assert.Equal(t, "d2", datasets[1].ID)

	d, err := catalog.FetchDataset(context.Background(), api, "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", d.ID)
	require.Len(t, d.Descriptors(), 1)
	assert.Equal(t, "c1", d.Descriptors()[0].ID)
}
