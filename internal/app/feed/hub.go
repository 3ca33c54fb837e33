package feed

import (
	"context"
	"sync"

	eventstore "github.com/acadiahub/acadiahub/internal/app/store/events"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Snapshot is one consistent view of the event collection as broadcast
// to feed subscribers: every event newest first, plus display names for
// every user id referenced by a registration set or an event creator.
type Snapshot struct {
	Events []models.Event    `json:"events"`
	Names  map[string]string `json:"names"`
}

// Hub maintains a live view of the event collection. A single change
// stream drives it: every stream notification triggers a full reload of
// the collection, which replaces the previous snapshot wholesale and is
// broadcast to all subscribers. Snapshots are never diffed; subscribers
// always see the store's current version of truth.
type Hub struct {
	events *eventstore.Store
	names  *NameCache
	log    *zap.Logger

	mu   sync.Mutex
	last Snapshot
	subs map[chan Snapshot]struct{}
}

// NewHub creates a hub over the given event store. Call Run to start
// it.
func NewHub(events *eventstore.Store, names *NameCache, logger *zap.Logger) *Hub {
	return &Hub{
		events: events,
		names:  names,
		log:    logger,
		last:   Snapshot{Events: []models.Event{}, Names: map[string]string{}},
		subs:   make(map[chan Snapshot]struct{}),
	}
}

// Run loads the initial snapshot, then blocks consuming the change
// stream until ctx is canceled or the stream fails. A stream failure
// degrades subscribers to an empty snapshot and returns; the hub does
// not reconnect on its own.
func (h *Hub) Run(ctx context.Context) error {
	h.Refresh(ctx)

	stream, err := h.events.Watch(ctx)
	if err != nil {
		h.log.Error("event change stream failed to open", zap.Error(err))
		h.degrade()
		return err
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		h.Refresh(ctx)
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		h.log.Error("event change stream failed", zap.Error(err))
		h.degrade()
		return err
	}
	return nil
}

// Refresh reloads the full event list from the store, resolves
// referenced display names, and broadcasts the new snapshot. A load
// failure degrades to an empty snapshot rather than leaving stale
// events visible.
func (h *Hub) Refresh(ctx context.Context) {
	events, err := h.events.List(ctx)
	if err != nil {
		h.log.Error("event list reload failed", zap.Error(err))
		h.degrade()
		return
	}

	ids := referencedUserIDs(events)
	snap := Snapshot{
		Events: events,
		Names:  h.names.ResolveAll(ctx, ids),
	}
	h.publish(snap)
}

// Subscribe registers a feed subscriber. The returned channel carries
// the current snapshot immediately and every subsequent one; a slow
// subscriber only ever misses intermediate snapshots, never the latest.
// The cancel func must be called when done.
func (h *Hub) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	ch <- h.last
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// NameCache exposes the hub's display-name cache so other components
// share the same resolved names.
func (h *Hub) NameCache() *NameCache {
	return h.names
}

// Current returns the most recent snapshot.
func (h *Hub) Current() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *Hub) degrade() {
	h.publish(Snapshot{Events: []models.Event{}, Names: map[string]string{}})
}

func (h *Hub) publish(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = snap
	for ch := range h.subs {
		// Replace any undelivered snapshot so the channel always
		// holds the newest one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func referencedUserIDs(events []models.Event) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	add := func(id primitive.ObjectID) {
		if id.IsZero() {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, e := range events {
		add(e.CreatedBy)
		for _, r := range e.Registrations {
			add(r)
		}
	}
	return ids
}
