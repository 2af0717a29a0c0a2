package object

import (
	"context"
	"math"

	"activeindex/config"
	"activeindex/geom"
	"activeindex/internal/telemetry"
	"activeindex/logging"
	"activeindex/spatial"
)

// WorldLimitPredicate reports whether pos lies outside the server's
// addressable world. The manager rejects registration for any object whose
// position fails this check; the limit itself is a world parameter supplied
// by the caller, not owned by this package.
type WorldLimitPredicate func(pos geom.Vec3f) bool

// WorldLimitFromConfig builds the default cubic world-limit predicate from a
// config.Config's WorldLimit half-extent.
func WorldLimitFromConfig(cfg config.Config) WorldLimitPredicate {
	limit := float32(cfg.WorldLimit)
	return func(pos geom.Vec3f) bool {
		return math.Abs(float64(pos.X)) > float64(limit) ||
			math.Abs(float64(pos.Y)) > float64(limit) ||
			math.Abs(float64(pos.Z)) > float64(limit)
	}
}

// Deps bundles the runtime collaborators a Manager needs: a publisher for
// structured events, a metrics sink for the step-count average, a logger
// for warning/info lines, and the world-limit predicate registration checks
// against.
type Deps struct {
	WorldLimit WorldLimitPredicate
	Metrics    telemetry.Metrics
	Logger     telemetry.Logger
	Publisher  logging.Publisher
}

func (d Deps) normalized() Deps {
	normalized := d
	if normalized.WorldLimit == nil {
		normalized.WorldLimit = WorldLimitFromConfig(config.DefaultConfig())
	}
	if normalized.Metrics == nil {
		normalized.Metrics = telemetry.WrapMetrics(nil)
	}
	if normalized.Logger == nil {
		normalized.Logger = telemetry.WrapLogger(nil)
	}
	if normalized.Publisher == nil {
		normalized.Publisher = logging.NopPublisher()
	}
	return normalized
}

// Manager is the public façade combining a Store (id→object, allocator)
// with a spatial.Map (cell→id index).
type Manager struct {
	store   *Store
	spatial *spatial.Map
	deps    Deps
}

// New constructs an empty Manager. A zero Deps is valid: Metrics, Logger and
// Publisher fall back to no-ops, and WorldLimit falls back to
// WorldLimitFromConfig(config.DefaultConfig()), a cube of half-extent 2001.
// When any field was defaulted, one line is printed through the (possibly
// defaulted, and then discarding) Logger.
func New(deps Deps) *Manager {
	normalized := deps.normalized()
	if deps.WorldLimit == nil || deps.Metrics == nil || deps.Logger == nil || deps.Publisher == nil {
		normalized.Logger.Printf("object: Manager constructed with one or more Deps defaulted")
	}
	return &Manager{
		store:   NewStore(),
		spatial: spatial.New(spatial.WithPublisher(normalized.Publisher)),
		deps:    normalized,
	}
}

// Register inserts obj into both the store and the spatial index. If
// obj.ObjectID() is 0 an id is auto-allocated and returned; otherwise the
// supplied id must be free. Fails (ok=false) if the allocator is exhausted,
// the supplied id is taken, or the position lies outside the world limit —
// ActiveObject has no setter for its own id, so the caller reads the
// assigned id off the return value rather than back through the object.
func (m *Manager) Register(obj ActiveObject) (id ID, ok bool) {
	id = obj.ObjectID()
	if id == 0 {
		id = m.store.NextFreeId()
		if id == 0 {
			m.deps.Publisher.Publish(context.Background(), logging.Event{
				Type:     EventCapacityExhausted,
				Severity: logging.SeverityError,
				Category: logging.CategorySystem,
			})
			m.deps.Logger.Printf("object: register failed, id allocator exhausted")
			return 0, false
		}
	} else if !m.store.IsFree(id) {
		m.deps.Publisher.Publish(context.Background(), logging.Event{
			Type:     EventIdConflict,
			Severity: logging.SeverityError,
			Category: logging.CategorySystem,
			Actor:    objectRef(id),
		})
		m.deps.Logger.Printf("object: register failed, id %d already in use", id)
		return 0, false
	}

	pos := obj.Position()
	if m.deps.WorldLimit(pos) {
		m.deps.Publisher.Publish(context.Background(), logging.Event{
			Type:     EventOutOfWorld,
			Severity: logging.SeverityWarn,
			Category: logging.CategorySystem,
			Actor:    objectRef(id),
		})
		m.deps.Logger.Printf("object: register failed, position %v outside world limit", pos)
		return 0, false
	}

	m.store.Put(id, obj)
	m.spatial.Insert(id, pos)
	return id, true
}

// Remove destroys the store entry for id and its spatial index entry. A
// no-op (logged at info severity) if id is unknown.
func (m *Manager) Remove(id ID) {
	obj, ok := m.store.Get(id)
	if !ok {
		m.deps.Publisher.Publish(context.Background(), logging.Event{
			Type:     EventUnknownIdRemove,
			Severity: logging.SeverityInfo,
			Category: logging.CategorySystem,
			Actor:    objectRef(id),
		})
		return
	}
	m.spatial.Remove(id, obj.Position())
	m.store.Remove(id)
}

// UpdateObjectPosition keeps the spatial index coherent with a position
// change the caller has already applied to the object itself.
func (m *Manager) UpdateObjectPosition(id ID, old, next geom.Vec3f) {
	m.spatial.UpdatePosition(id, old, next)
}

// Step invokes perObjectFn once per live object, reporting the traversed
// count to the metrics collaborator as a per-tick population gauge.
// perObjectFn may register, remove, or move any object, including the one
// it was just called with.
func (m *Manager) Step(perObjectFn func(ActiveObject)) {
	count := 0
	m.store.Range(func(_ ID, obj ActiveObject) {
		perObjectFn(obj)
		count++
	})
	m.deps.Metrics.Store("object_manager.step_population", uint64(count))
}

// ClearIf removes every object for which predicate returns true, routing
// through Remove so the store and spatial index stay coherent.
func (m *Manager) ClearIf(predicate func(ActiveObject, ID) bool) {
	var toRemove []ID
	m.store.Range(func(id ID, obj ActiveObject) {
		if predicate(obj, id) {
			toRemove = append(toRemove, id)
		}
	})
	for _, id := range toRemove {
		m.Remove(id)
	}
}

// Clear removes every object and resets the spatial index. Warns if called
// while the manager is non-empty.
func (m *Manager) Clear() {
	if m.store.Size() > 0 {
		m.deps.Publisher.Publish(context.Background(), logging.Event{
			Type:     EventDestroyedNonEmpty,
			Severity: logging.SeverityWarn,
			Category: logging.CategorySystem,
		})
		m.deps.Logger.Printf("object: manager cleared while non-empty (%d objects)", m.store.Size())
	}
	m.store = NewStore()
	m.spatial.RemoveAll()
}

// Size returns the current live object count.
func (m *Manager) Size() int {
	return m.store.Size()
}

// resolve looks an id up in the store, self-healing a stale spatial entry by
// deferring a spatial removal when the store has no such object. Reports
// the resolved object and whether it was found.
func (m *Manager) resolve(id ID) (ActiveObject, bool) {
	obj, ok := m.store.Get(id)
	if ok {
		return obj, true
	}
	m.spatial.RemoveByID(id)
	m.deps.Publisher.Publish(context.Background(), logging.Event{
		Type:     EventStaleEntryHealed,
		Severity: logging.SeverityDebug,
		Category: logging.CategorySpatial,
		Actor:    objectRef(id),
	})
	return nil, false
}

// GetObjectsInsideRadius appends every live object within r of center to
// out, subject to includePred, using the spatial index's classification to
// skip the exact distance check for cells it has already proven fully
// inside the sphere.
func (m *Manager) GetObjectsInsideRadius(center geom.Vec3f, r float32, out []ActiveObject, includePred func(ActiveObject) bool) []ActiveObject {
	r2 := r * r
	emit := func(id ID, exact bool) {
		obj, ok := m.resolve(id)
		if !ok {
			return
		}
		if !exact && obj.Position().SqDist(center) > r2 {
			return
		}
		if includePred != nil && !includePred(obj) {
			return
		}
		out = append(out, obj)
	}
	m.spatial.GetObjectsIdsInRadius(
		center, r,
		func(id ID) { emit(id, false) },
		func(id ID) { emit(id, true) },
	)
	return out
}

// GetObjectsInArea appends every live object whose position satisfies
// box.Contains to out, subject to includePred.
func (m *Manager) GetObjectsInArea(box geom.AABB3f, out []ActiveObject, includePred func(ActiveObject) bool) []ActiveObject {
	m.spatial.GetRelevantObjectIds(box, func(id ID) {
		obj, ok := m.resolve(id)
		if !ok {
			return
		}
		if !box.Contains(obj.Position()) {
			return
		}
		if includePred != nil && !includePred(obj) {
			return
		}
		out = append(out, obj)
	})
	return out
}

// GetAddedActiveObjectsAroundPos scans the region around playerPos for ids
// not already known to the caller, admitting Player-typed objects out to
// playerR (or unconditionally if playerR is 0) and everything else out to
// r. Matching ids are appended to outIds.
func (m *Manager) GetAddedActiveObjectsAroundPos(playerPos geom.Vec3f, r, playerR float32, alreadyKnown map[ID]struct{}, outIds []ID) []ID {
	offset := r
	if playerR > offset {
		offset = playerR
	}
	box := geom.FromCenterRadius(playerPos, offset)

	m.spatial.GetRelevantObjectIds(box, func(id ID) {
		if _, known := alreadyKnown[id]; known {
			return
		}
		obj, ok := m.resolve(id)
		if !ok {
			return
		}
		if obj.Gone() {
			return
		}
		dist := float32(math.Sqrt(float64(obj.Position().SqDist(playerPos))))
		if obj.Category() == CategoryPlayer {
			if playerR != 0 && dist > playerR {
				return
			}
		} else if dist > r {
			return
		}
		outIds = append(outIds, id)
	})
	return outIds
}
