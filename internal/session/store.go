package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/menustudio/menustudio-api/internal/logger"
	"github.com/menustudio/menustudio-api/internal/models"
)

// ErrSessionNotFound is returned when a session id is unknown or the
// session has been evicted.
var ErrSessionNotFound = errors.New("session not found")

// Store is the single source of truth for in-flight and completed
// variant sessions. It is an injected dependency, not a package-level
// singleton: handlers read through it, task runners write through it.
//
// Locking is two-level: the store lock guards the session map, a
// per-session lock guards that session's slots. Writes to different
// slots of the same session serialize on the session lock but can
// never lose each other's updates; different sessions never contend.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	ttl  time.Duration
	stop chan struct{}
	once sync.Once
}

type entry struct {
	mu      sync.Mutex
	session *models.Session
}

// NewStore creates a store whose sessions expire ttl after creation.
// A background janitor sweeps expired sessions every sweepInterval;
// pass sweepInterval <= 0 to disable the janitor (expired sessions are
// still invisible to Get, they just are not freed until Close).
func NewStore(ttl, sweepInterval time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	if sweepInterval > 0 {
		go s.janitor(sweepInterval)
	}

	return s
}

// Close stops the eviction janitor.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Create registers a new session with all three slots already in the
// generating state and returns its initial snapshot.
func (s *Store) Create(id string) (models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; exists {
		return models.SessionSnapshot{}, fmt.Errorf("session %s already exists", id)
	}

	sess := models.NewSession(id)
	s.sessions[id] = &entry{session: sess}
	return sess.Snapshot(), nil
}

// Get returns a deep-copied snapshot of the session. The snapshot is
// stable: polling a finished session any number of times returns the
// same terminal view.
func (s *Store) Get(id string) (models.SessionSnapshot, error) {
	e, err := s.lookup(id)
	if err != nil {
		return models.SessionSnapshot{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Snapshot(), nil
}

// UpsertVariant writes one slot's new state. The write is rejected if
// it would violate the one-directional status machine or the terminal
// state invariants, so a buggy task runner can never corrupt a slot
// another runner owns or resurrect a finished variant.
func (s *Store) UpsertVariant(id string, slot int, v models.Variant) error {
	if slot < models.FirstVariantSlot || slot >= models.FirstVariantSlot+models.VariantCount {
		return fmt.Errorf("invalid variant slot %d", slot)
	}

	if err := models.ValidateVariant(&v); err != nil {
		return err
	}

	e, err := s.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.session.Variants[slot]
	if !current.Status.CanTransitionTo(v.Status) {
		return fmt.Errorf("illegal transition %s -> %s for session %s slot %d",
			current.Status, v.Status, id, slot)
	}

	v.Slot = slot
	e.session.Variants[slot] = &v
	return nil
}

// Len returns the number of live (non-expired) sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	count := 0
	for _, e := range s.sessions {
		if !s.expired(e.session, now) {
			count++
		}
	}
	return count
}

// lookup fetches the entry for a live session. Expired sessions are
// reported as not found even before the janitor frees them, so TTL
// behavior does not depend on sweep timing.
func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok || s.expired(e.session, time.Now()) {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (s *Store) expired(sess *models.Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.CreatedAt) > s.ttl
}

func (s *Store) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	evicted := 0
	for id, e := range s.sessions {
		if s.expired(e.session, now) {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		logger.Info("Evicted expired sessions", logger.Fields{
			"evicted":   evicted,
			"remaining": len(s.sessions),
		})
	}
}
