package bunnyapi

import "k8s.io/apimachinery/pkg/util/sets"

// ZoneCache maps zone names to Bunny's internal zone IDs. Bunny's record
// endpoints are keyed by ID, so every record call resolves through it.
//
// Once loaded the cache is a complete snapshot of the account's zones: a
// miss means the zone does not exist. Entries added with Put before the
// first load are kept and merged with the listing.
//
// ZoneCache is not safe for concurrent use.
type ZoneCache struct {
	ids    map[string]int64
	loaded bool
}

// NewZoneCache returns an empty, unloaded cache.
func NewZoneCache() *ZoneCache {
	return &ZoneCache{ids: make(map[string]int64)}
}

// Lookup returns the ID cached for name.
func (c *ZoneCache) Lookup(name string) (int64, bool) {
	id, ok := c.ids[name]
	return id, ok
}

// Put records the ID of a single zone.
func (c *ZoneCache) Put(name string, id int64) {
	c.ids[name] = id
}

// Loaded reports whether a full listing has been stored since the last Clear.
func (c *ZoneCache) Loaded() bool { return c.loaded }

// MarkLoaded flags the cache as a complete snapshot.
func (c *ZoneCache) MarkLoaded() { c.loaded = true }

// Names returns the cached zone names, sorted.
func (c *ZoneCache) Names() []string {
	return sets.List(sets.KeySet(c.ids))
}

// Len returns the number of cached zones.
func (c *ZoneCache) Len() int { return len(c.ids) }

// Clear empties the cache; the next lookup reloads it.
func (c *ZoneCache) Clear() {
	c.ids = make(map[string]int64)
	c.loaded = false
}
