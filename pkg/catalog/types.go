package catalog

import (
	"fmt"

	"github.com/glorpus-work/mlcat/pkg/client"
)

// CollectionType classifies a collection's purpose within a dataset.
type CollectionType string

// Valid collection types.
const (
	// CollectionTypeSource marks a collection holding source imagery.
	CollectionTypeSource CollectionType = "source_imagery"
	// CollectionTypeLabels marks a collection holding labels.
	CollectionTypeLabels CollectionType = "labels"
)

// ParseCollectionType converts a catalog-supplied type string into a
// CollectionType. Unrecognized strings are a parse error, never defaulted.
func ParseCollectionType(raw string) (CollectionType, error) {
	switch CollectionType(raw) {
	case CollectionTypeSource:
		return CollectionTypeSource, nil
	case CollectionTypeLabels:
		return CollectionTypeLabels, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownCollectionType)
	}
}

// Descriptor identifies one collection composing a dataset, together with its
// role tags. Descriptors are immutable once created.
type Descriptor struct {
	ID    string           `json:"id"`
	Types []CollectionType `json:"types"`
}

// HasType reports whether the descriptor carries the given type tag.
func (d Descriptor) HasType(t CollectionType) bool {
	for _, dt := range d.Types {
		if dt == t {
			return true
		}
	}
	return false
}

// parseDescriptors validates and converts the raw collection references from a
// dataset record. A reference with no types is rejected here rather than
// silently dropped.
func parseDescriptors(refs []client.CollectionRef) ([]Descriptor, error) {
	descriptors := make([]Descriptor, 0, len(refs))
	for _, ref := range refs {
		if len(ref.Types) == 0 {
			return nil, fmt.Errorf("collection %q: %w", ref.ID, ErrNoCollectionTypes)
		}
		types := make([]CollectionType, 0, len(ref.Types))
		for _, raw := range ref.Types {
			parsed, err := ParseCollectionType(raw)
			if err != nil {
				return nil, Wrapf(err, "collection %q", ref.ID)
			}
			types = append(types, parsed)
		}
		descriptors = append(descriptors, Descriptor{ID: ref.ID, Types: types})
	}
	return descriptors, nil
}
