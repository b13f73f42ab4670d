package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"hermannm.dev/csvexplorer/session"
	"hermannm.dev/devlog/log"
)

var ErrSessionNotFound = errors.New("session not found")

// sessionEntry holds one user's session. Its lock must be held while the session is used, since
// sessions are not safe for concurrent use.
type sessionEntry struct {
	lock     sync.Mutex
	session  *session.Session
	renderer *jsonChartRenderer
	// Guarded by the registry lock.
	lastUsed time.Time
}

// sessionRegistry removes sessions that have not been fetched for idleTimeout (if positive) when
// removeIdle runs.
type sessionRegistry struct {
	lock        sync.Mutex
	entries     map[uuid.UUID]*sessionEntry
	idleTimeout time.Duration
	now         func() time.Time
}

func newSessionRegistry(idleTimeout time.Duration) *sessionRegistry {
	return &sessionRegistry{
		entries:     make(map[uuid.UUID]*sessionEntry),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

func (registry *sessionRegistry) add(entry *sessionEntry) uuid.UUID {
	registry.lock.Lock()
	defer registry.lock.Unlock()

	id := uuid.New()
	entry.lastUsed = registry.now()
	registry.entries[id] = entry
	return id
}

func (registry *sessionRegistry) get(id uuid.UUID) (*sessionEntry, error) {
	registry.lock.Lock()
	defer registry.lock.Unlock()

	entry, ok := registry.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastUsed = registry.now()
	return entry, nil
}

func (registry *sessionRegistry) remove(id uuid.UUID) error {
	registry.lock.Lock()
	defer registry.lock.Unlock()

	if _, ok := registry.entries[id]; !ok {
		return ErrSessionNotFound
	}
	delete(registry.entries, id)
	return nil
}

func (registry *sessionRegistry) count() int {
	registry.lock.Lock()
	defer registry.lock.Unlock()

	return len(registry.entries)
}

func (registry *sessionRegistry) removeIdle() (removed int) {
	if registry.idleTimeout <= 0 {
		return 0
	}

	registry.lock.Lock()
	defer registry.lock.Unlock()

	cutoff := registry.now().Add(-registry.idleTimeout)
	for id, entry := range registry.entries {
		if entry.lastUsed.Before(cutoff) {
			delete(registry.entries, id)
			removed++
		}
	}
	return removed
}

// removeIdleEvery calls removeIdle on every tick of the interval, until the context is canceled.
func (registry *sessionRegistry) removeIdleEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := registry.removeIdle(); removed > 0 {
				log.Infof("removed %d idle sessions (%d active)", removed, registry.count())
			}
		}
	}
}

// Idle sessions live at most a quarter of the timeout longer than configured.
func idleCheckInterval(idleTimeout time.Duration) time.Duration {
	return max(idleTimeout/4, time.Second)
}
