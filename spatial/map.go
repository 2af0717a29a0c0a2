// Package spatial implements a coarse-grained spatial hash: a cell→id
// multimap supporting box and radius queries with a reentrant
// deferred-mutation protocol so callbacks invoked mid-query may freely
// insert, remove, or move objects.
package spatial

import (
	"context"

	"activeindex/geom"
	"activeindex/logging"
)

// ID is the 16-bit object identifier used as the value half of the
// cell→id multimap. 0 is reserved as "none" by the object package.
type ID = uint16

type pendingEntry struct {
	key Key
	id  ID
}

// Map is the cell→id multimap. The zero value is not usable; construct with
// New.
type Map struct {
	cached map[Key][]ID

	pendingInserts []pendingEntry
	pendingDeletes []pendingEntry
	pendingClear   bool
	iterDepth      int

	radiusWalkSlack int
	publisher       logging.Publisher
}

// Option configures a Map at construction time.
type Option func(*Map)

// WithRadiusWalkSlack overrides the additive slack applied to the
// cell-walk-vs-scan crossover for radius queries (default 100, per spec).
func WithRadiusWalkSlack(slack int) Option {
	return func(m *Map) {
		if slack >= 0 {
			m.radiusWalkSlack = slack
		}
	}
}

// WithPublisher wires a logging.Publisher for the informational/debug
// events the map emits (unknown-id removal, the Remove(id, pos) fallback
// firing).
func WithPublisher(p logging.Publisher) Option {
	return func(m *Map) {
		if p != nil {
			m.publisher = p
		}
	}
}

// New constructs an empty Map.
func New(opts ...Option) *Map {
	m := &Map{
		cached:          make(map[Key][]ID),
		radiusWalkSlack: 100,
		publisher:       logging.NopPublisher(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Insert adds (cell(pos), id).
func (m *Map) Insert(id ID, pos geom.Vec3f) {
	m.insertKey(FromWorld(pos), id)
}

func (m *Map) insertKey(key Key, id ID) {
	if m.iterDepth > 0 {
		m.pendingInserts = append(m.pendingInserts, pendingEntry{key: key, id: id})
		return
	}
	m.cached[key] = append(m.cached[key], id)
}

// Remove removes the entry for id in cell(pos); if not present, falls back
// to a linear scan of every cell. Firing this fallback is logged at debug
// severity so operators can tell whether it's load-bearing.
func (m *Map) Remove(id ID, pos geom.Vec3f) {
	key := FromWorld(pos)
	if m.removeFromKey(key, id) {
		return
	}
	m.publisher.Publish(context.Background(), logging.Event{
		Type:     "spatial_map.remove_fallback",
		Severity: logging.SeverityDebug,
		Category: logging.CategorySpatial,
		Actor:    logging.EntityRef{Kind: logging.EntityKindCell},
	})
	m.RemoveByID(id)
}

// removeFromKey removes id from the bucket at key, deferring if a query is
// active. It reports whether an entry was found (non-deferred path) or
// whether a deferral was recorded (deferred path always reports true: the
// caller cannot know in advance whether the deferred deletion will find a
// match, so the linear-scan fallback must not fire while iterating).
func (m *Map) removeFromKey(key Key, id ID) bool {
	if m.iterDepth > 0 {
		m.pendingDeletes = append(m.pendingDeletes, pendingEntry{key: key, id: id})
		return true
	}
	bucket := m.cached[key]
	for i, candidate := range bucket {
		if candidate != id {
			continue
		}
		bucket[i] = bucket[len(bucket)-1]
		bucket = bucket[:len(bucket)-1]
		if len(bucket) == 0 {
			delete(m.cached, key)
		} else {
			m.cached[key] = bucket
		}
		return true
	}
	return false
}

// RemoveByID performs a linear scan across cached, removing the first entry
// carrying id. A key of (0,0,0) with the id marks "remove by id, cell
// unknown" in the deferred queue.
func (m *Map) RemoveByID(id ID) {
	if m.iterDepth > 0 {
		m.pendingDeletes = append(m.pendingDeletes, pendingEntry{key: Key{}, id: id})
		return
	}
	for key, bucket := range m.cached {
		for i, candidate := range bucket {
			if candidate != id {
				continue
			}
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			if len(bucket) == 0 {
				delete(m.cached, key)
			} else {
				m.cached[key] = bucket
			}
			return
		}
	}
}

// RemoveAll drops the entire index.
func (m *Map) RemoveAll() {
	if m.iterDepth > 0 {
		m.pendingClear = true
		return
	}
	m.cached = make(map[Key][]ID)
}

// UpdatePosition is a no-op if cell(old) == cell(new) and id is present
// there; otherwise it is remove-then-insert.
func (m *Map) UpdatePosition(id ID, old, next geom.Vec3f) {
	oldKey := FromWorld(old)
	newKey := FromWorld(next)
	if oldKey == newKey && m.bucketContains(oldKey, id) {
		return
	}
	m.Remove(id, old)
	m.Insert(id, next)
}

func (m *Map) bucketContains(key Key, id ID) bool {
	for _, candidate := range m.cached[key] {
		if candidate == id {
			return true
		}
	}
	return false
}

// Size reports the number of live entries across all cells, the population
// figure the adaptive cell-walk/full-scan crossover compares candidate
// counts against. It does not count pending entries.
func (m *Map) Size() int {
	total := 0
	for _, bucket := range m.cached {
		total += len(bucket)
	}
	return total
}

// enterIter/exitIter bracket a traversal, making mutation deferral
// reentrant (iterDepth counts nested queries) and draining pending
// mutations only when the outermost query returns.
func (m *Map) enterIter() {
	m.iterDepth++
}

func (m *Map) exitIter() {
	m.iterDepth--
	if m.iterDepth == 0 {
		m.handleDeferred()
	}
}

// handleDeferred drains pendingClear/pendingDeletes/pendingInserts in the
// order spec'd: clear wins outright, else deletes before inserts (so a
// callback's "remove then re-insert same id" pattern during a query is
// preserved in the post-query state).
func (m *Map) handleDeferred() {
	if m.pendingClear {
		m.cached = make(map[Key][]ID)
		m.pendingClear = false
		m.pendingInserts = nil
		m.pendingDeletes = nil
		return
	}

	deletes := m.pendingDeletes
	m.pendingDeletes = nil
	for _, entry := range deletes {
		if entry.key == (Key{}) {
			m.RemoveByID(entry.id)
		} else if !m.removeFromKey(entry.key, entry.id) {
			m.RemoveByID(entry.id)
		}
	}

	inserts := m.pendingInserts
	m.pendingInserts = nil
	for _, entry := range inserts {
		m.insertKey(entry.key, entry.id)
	}
}
