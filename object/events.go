package object

import (
	"strconv"

	"activeindex/logging"
)

// Event types emitted by the manager, routed through the same
// logging.Publisher used throughout this module (see logging/publisher.go).
const (
	EventCapacityExhausted logging.EventType = "object_manager.capacity_exhausted"
	EventIdConflict        logging.EventType = "object_manager.id_conflict"
	EventOutOfWorld        logging.EventType = "object_manager.out_of_world"
	EventUnknownIdRemove   logging.EventType = "object_manager.unknown_id_remove"
	EventStaleEntryHealed  logging.EventType = "object_manager.stale_entry_healed"
	EventDestroyedNonEmpty logging.EventType = "object_manager.destroyed_non_empty"
)

func objectRef(id ID) logging.EntityRef {
	return logging.EntityRef{ID: strconv.FormatUint(uint64(id), 10), Kind: logging.EntityKindObject}
}
