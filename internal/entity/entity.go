// Package entity provides the scene's entities and the registry that owns them.
// Other systems hold Handles instead of pointers so a removed entity can never
// be reached through a stale reference.
package entity

import (
	"chosenoffset.com/tuxtown/internal/engine/anim"
	"chosenoffset.com/tuxtown/internal/engine/physics"
	"chosenoffset.com/tuxtown/internal/engine/tween"
)

// EntityType identifies the kind of entity
type EntityType string

const (
	TypePlayer EntityType = "player"
	TypeNPC    EntityType = "npc"
)

// Entity is a sprite-backed thing living in the scene.
type Entity struct {
	ID     string     // Unique identifier from the map file
	Name   string     // Display name
	Type   EntityType // player or npc
	Sprite string     // Spritesheet key

	// DialogueName names the catalog entry this entity starts. Empty for the player.
	DialogueName string

	Body   *physics.Body
	Anim   *anim.Player
	Motion *tween.Tween // Optional independent motion driver
	FlipX  bool
}

// NewEntity creates a basic entity
func NewEntity(id, name string, entityType EntityType) *Entity {
	return &Entity{
		ID:   id,
		Name: name,
		Type: entityType,
	}
}

// IsInteractable reports whether the entity can start a dialogue on contact.
func (e *Entity) IsInteractable() bool {
	return e.Type != TypePlayer && e.DialogueName != ""
}

// Handle is a generation-checked reference to a registry slot.
// The zero Handle refers to nothing.
type Handle struct {
	index uint32 // slot index + 1
	gen   uint32
}

// IsZero reports whether the handle refers to nothing.
func (h Handle) IsZero() bool {
	return h.index == 0
}

type slot struct {
	gen    uint32
	entity *Entity
}

// Registry stores entities in insertion order and reuses freed slots.
type Registry struct {
	slots []slot
	free  []uint32
	byID  map[string]Handle
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Handle),
	}
}

// Add stores an entity and returns its handle.
func (r *Registry) Add(e *Entity) Handle {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[idx].entity = e
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{gen: 1, entity: e})
	}

	h := Handle{index: idx + 1, gen: r.slots[idx].gen}
	if e.ID != "" {
		r.byID[e.ID] = h
	}
	return h
}

// Get resolves a handle. It returns false for the zero handle and for
// handles whose entity has been removed.
func (r *Registry) Get(h Handle) (*Entity, bool) {
	if h.IsZero() || int(h.index) > len(r.slots) {
		return nil, false
	}
	s := r.slots[h.index-1]
	if s.gen != h.gen || s.entity == nil {
		return nil, false
	}
	return s.entity, true
}

// Lookup returns the handle of the entity with the given ID.
func (r *Registry) Lookup(id string) (Handle, bool) {
	h, ok := r.byID[id]
	return h, ok
}

// Remove drops an entity. Outstanding handles to it stop resolving.
func (r *Registry) Remove(h Handle) bool {
	e, ok := r.Get(h)
	if !ok {
		return false
	}
	idx := h.index - 1
	r.slots[idx].entity = nil
	r.slots[idx].gen++
	r.free = append(r.free, idx)
	if e.ID != "" {
		delete(r.byID, e.ID)
	}
	return true
}

// Each calls fn for every live entity in slot order.
func (r *Registry) Each(fn func(h Handle, e *Entity)) {
	for i, s := range r.slots {
		if s.entity == nil {
			continue
		}
		fn(Handle{index: uint32(i) + 1, gen: s.gen}, s.entity)
	}
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.slots) - len(r.free)
}
