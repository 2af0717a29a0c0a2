// Package object implements the active-object registry: ObjectStore (the
// id-to-object table and id allocator) and ObjectManager (the public façade
// combining the store with a spatial.Map to answer area/radius queries and
// keep both structures coherent across registration, removal, and movement).
package object

import "activeindex/geom"

// ID identifies an object. 0 is reserved as "none"; it is the same
// underlying width as spatial.ID so store and index ids are interchangeable
// without conversion.
type ID = uint16

// Category tags the kind of active object, distinguishing the Player case
// the "added around player" scan treats specially from everything else.
type Category uint8

const (
	CategoryGeneric Category = iota
	CategoryPlayer
	CategoryNPC
	CategoryItem
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryNPC:
		return "npc"
	case CategoryItem:
		return "item"
	default:
		return "generic"
	}
}

// ActiveObject is the minimal read surface the manager needs from a runtime
// entity: its id, its current position, its category, and whether it has
// been logically marked for removal. Position mutation happens on the
// concrete object; the caller is responsible for pairing any position
// change with a call to Manager.UpdateObjectPosition so the spatial index
// stays coherent.
type ActiveObject interface {
	ObjectID() ID
	Position() geom.Vec3f
	Category() Category
	Gone() bool
}

// Basic is a minimal ActiveObject implementation usable directly by callers
// that have no richer object model of their own, and by this package's
// tests.
type Basic struct {
	ID  ID
	Pos geom.Vec3f
	Cat Category
	Dead bool
}

func (b *Basic) ObjectID() ID          { return b.ID }
func (b *Basic) Position() geom.Vec3f  { return b.Pos }
func (b *Basic) Category() Category    { return b.Cat }
func (b *Basic) Gone() bool            { return b.Dead }
