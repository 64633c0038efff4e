package catalog

import "sync"

// Member pairs a resolved Collection with the role tags it carries within its
// dataset.
type Member struct {
	Collection *Collection
	Types      []CollectionType
}

// HasType reports whether the member carries the given type tag.
func (m Member) HasType(t CollectionType) bool {
	for _, mt := range m.Types {
		if mt == t {
			return true
		}
	}
	return false
}

// CollectionList is the ordered, resolved collection list of a dataset. The
// source-imagery and labels sub-views are built lazily and share the same
// Collection instances as the full list.
type CollectionList struct {
	members []Member

	sourceOnce sync.Once
	source     []*Collection

	labelsOnce sync.Once
	labels     []*Collection
}

func newCollectionList(members []Member) *CollectionList {
	return &CollectionList{members: members}
}

// Len returns the number of member collections.
func (l *CollectionList) Len() int {
	return len(l.members)
}

// At returns the i-th member collection in descriptor order.
func (l *CollectionList) At(i int) *Collection {
	return l.members[i].Collection
}

// Members returns the members in descriptor order, with their role tags.
func (l *CollectionList) Members() []Member {
	return l.members
}

// All returns every member collection in descriptor order.
func (l *CollectionList) All() []*Collection {
	all := make([]*Collection, len(l.members))
	for i, member := range l.members {
		all[i] = member.Collection
	}
	return all
}

// SourceImagery returns the ordered sub-sequence of collections tagged as
// source imagery. A collection tagged both source and labels appears in both
// views.
func (l *CollectionList) SourceImagery() []*Collection {
	l.sourceOnce.Do(func() {
		l.source = l.filter(CollectionTypeSource)
	})
	return l.source
}

// Labels returns the ordered sub-sequence of collections tagged as labels.
func (l *CollectionList) Labels() []*Collection {
	l.labelsOnce.Do(func() {
		l.labels = l.filter(CollectionTypeLabels)
	})
	return l.labels
}

func (l *CollectionList) filter(t CollectionType) []*Collection {
	var filtered []*Collection
	for _, member := range l.members {
		if member.HasType(t) {
			filtered = append(filtered, member.Collection)
		}
	}
	return filtered
}
