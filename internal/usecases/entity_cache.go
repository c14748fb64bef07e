package usecases

import (
	"github.com/google/uuid"

	"stremini.backend/internal/domain/entities"
)

// cachedEntity is implemented by every record kept in an EntityCache.
type cachedEntity[E any] interface {
	EntityID() uuid.UUID
	Apply(entities.Patch) E
}

// EntityCache is the per-session copy of one collection in load order.
// It is not safe for concurrent use; the owning controller serializes access.
type EntityCache[E cachedEntity[E]] struct {
	items []E
}

func NewEntityCache[E cachedEntity[E]]() *EntityCache[E] {
	return &EntityCache[E]{}
}

// Reset replaces the whole cache, e.g. after a load.
func (c *EntityCache[E]) Reset(items []E) {
	c.items = append([]E(nil), items...)
}

// Items returns a copy in cache order.
func (c *EntityCache[E]) Items() []E {
	return append([]E{}, c.items...)
}

func (c *EntityCache[E]) Len() int { return len(c.items) }

func (c *EntityCache[E]) index(id uuid.UUID) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *EntityCache[E]) Get(id uuid.UUID) (E, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero E
	return zero, false
}

func (c *EntityCache[E]) Append(item E) {
	c.items = append(c.items, item)
}

func (c *EntityCache[E]) Prepend(item E) {
	c.items = append([]E{item}, c.items...)
}

// Merge applies patch to the cached record with id. It reports false when id is not cached.
func (c *EntityCache[E]) Merge(id uuid.UUID, patch entities.Patch) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items[i] = c.items[i].Apply(patch)
	return true
}

func (c *EntityCache[E]) Remove(id uuid.UUID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}
