package ecs

import "iter"

// Query wraps a View and caches the matching entities between structural
// changes of the storage.
type Query[T any] struct {
	view        *View[T]
	storage     *Storage
	lastVersion uint64

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cacheValid = false
}

// Execute rebuilds the entity and component caches for this tick.
// The Scheduler calls it before the owning system runs.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for id, item := range q.view.Iter() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.lastVersion = q.storage.Version()
	q.cacheValid = true
}

func (q *Query[T]) ensure() {
	if q.view == nil {
		panic("Query used before Init")
	}
	if !q.cacheValid || q.lastVersion != q.storage.Version() {
		q.Execute()
	}
}

// Required returns the capability set of the query.
func (q *Query[T]) Required() Bitmask {
	return q.view.Required()
}

// Len returns the number of entities matched by the last Execute.
func (q *Query[T]) Len() int {
	q.ensure()
	return len(q.cachedEntities)
}

// Iter returns an iterator over entity ids and component data.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.ensure()
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	q.ensure()
	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
