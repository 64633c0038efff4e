package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/mlcat/pkg/catalog"
)

func TestParseCollectionType(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    catalog.CollectionType
		expectError bool
	}{
		{name: "source imagery", raw: "source_imagery", expected: catalog.CollectionTypeSource},
		{name: "labels", raw: "labels", expected: catalog.CollectionTypeLabels},
		{name: "unknown", raw: "predictions", expectError: true},
		{name: "empty", raw: "", expectError: true},
		{name: "case sensitive", raw: "Labels", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := catalog.ParseCollectionType(tt.raw)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, catalog.ErrUnknownCollectionType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestDescriptorHasType(t *testing.T) {
	descriptor := catalog.Descriptor{
		ID:    "c1",
		Types: []catalog.CollectionType{catalog.CollectionTypeSource, catalog.CollectionTypeLabels},
	}
	assert.True(t, descriptor.HasType(catalog.CollectionTypeSource))
	assert.True(t, descriptor.HasType(catalog.CollectionTypeLabels))

	only := catalog.Descriptor{ID: "c2", Types: []catalog.CollectionType{catalog.CollectionTypeLabels}}
	assert.False(t, only.HasType(catalog.CollectionTypeSource))
}
