package feed

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resolver looks up a user's display name by id.
type Resolver interface {
	DisplayName(ctx context.Context, id primitive.ObjectID) (string, error)
}

// NameCache caches display-name lookups with a TTL so stale names
// eventually refresh. A failed lookup falls back to the hex id and is
// cached for the same TTL to avoid hammering the store for users that
// no longer exist.
type NameCache struct {
	resolver Resolver
	ttl      time.Duration

	mu      sync.Mutex
	entries map[primitive.ObjectID]nameEntry
}

type nameEntry struct {
	name    string
	expires time.Time
}

// NewNameCache returns a cache backed by resolver. Cached names are
// re-resolved after ttl.
func NewNameCache(resolver Resolver, ttl time.Duration) *NameCache {
	return &NameCache{
		resolver: resolver,
		ttl:      ttl,
		entries:  make(map[primitive.ObjectID]nameEntry),
	}
}

// Lookup returns the display name for id, consulting the cache first.
// It never fails: an unresolvable id resolves to its hex form.
func (c *NameCache) Lookup(ctx context.Context, id primitive.ObjectID) string {
	now := time.Now()

	c.mu.Lock()
	if e, ok := c.entries[id]; ok && now.Before(e.expires) {
		c.mu.Unlock()
		return e.name
	}
	c.mu.Unlock()

	name, err := c.resolver.DisplayName(ctx, id)
	if err != nil || name == "" {
		name = id.Hex()
	}

	c.mu.Lock()
	c.entries[id] = nameEntry{name: name, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return name
}

// ResolveAll resolves every id to a display name, keyed by hex id.
func (c *NameCache) ResolveAll(ctx context.Context, ids []primitive.ObjectID) map[string]string {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if _, ok := names[id.Hex()]; ok {
			continue
		}
		names[id.Hex()] = c.Lookup(ctx, id)
	}
	return names
}
