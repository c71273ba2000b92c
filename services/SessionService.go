package services

import (
	"context"
	"sync"
	"time"

	"luxeStore/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// SessionService hands out one Store per browser session id. Stores are
// created lazily and rehydrated from the state repository on first use.
type SessionService struct {
	mu       sync.Mutex
	sr       repository.StateRepository
	baseName string
	stores   map[string]*sessionEntry
	opts     []StoreOption
	onEvict  []func(*Store)
	now      func() time.Time
}

func NewSessionService(stateRepo repository.StateRepository, baseName string, opts ...StoreOption) *SessionService {
	if baseName == "" {
		baseName = DefaultStateName
	}
	return &SessionService{
		sr:       stateRepo,
		baseName: baseName,
		stores:   make(map[string]*sessionEntry),
		opts:     opts,
		now:      time.Now,
	}
}

func (ss *SessionService) NewSessionId() string {
	return uuid.NewString()
}

// IsValidSessionId rejects cookie values we did not mint.
func (ss *SessionService) IsValidSessionId(sessionId string) bool {
	_, err := uuid.Parse(sessionId)
	return err == nil
}

func (ss *SessionService) StateName(sessionId string) string {
	if sessionId == "" {
		return ss.baseName
	}
	return ss.baseName + ":" + sessionId
}

func (ss *SessionService) GetStore(sessionId string) *Store {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if e, ok := ss.stores[sessionId]; ok {
		e.lastSeen = ss.now()
		return e.store
	}
	st := NewStore(ss.sr, ss.StateName(sessionId), ss.opts...)
	ss.stores[sessionId] = &sessionEntry{store: st, lastSeen: ss.now()}
	return st
}

// OnEvict registers fn to run for every store dropped from memory.
func (ss *SessionService) OnEvict(fn func(*Store)) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.onEvict = append(ss.onEvict, fn)
}

// Forget drops the in-memory store; the persisted state stays.
func (ss *SessionService) Forget(sessionId string) {
	ss.mu.Lock()
	e, ok := ss.stores[sessionId]
	delete(ss.stores, sessionId)
	hooks := ss.onEvict
	ss.mu.Unlock()
	if ok {
		runHooks(hooks, e.store)
	}
}

func runHooks(hooks []func(*Store), st *Store) {
	for _, fn := range hooks {
		fn(st)
	}
}

// Len is the number of stores held in memory.
func (ss *SessionService) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.stores)
}

// EvictIdle forgets every store not used for longer than idle.
func (ss *SessionService) EvictIdle(idle time.Duration) (evicted int) {
	ss.mu.Lock()
	cutoff := ss.now().Add(-idle)
	var stale []*Store
	for id, e := range ss.stores {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.store)
			delete(ss.stores, id)
		}
	}
	hooks := ss.onEvict
	ss.mu.Unlock()
	for _, st := range stale {
		runHooks(hooks, st)
	}
	return len(stale)
}

// Sweep runs EvictIdle periodically until ctx is done.
func (ss *SessionService) Sweep(ctx context.Context, idle time.Duration) {
	if idle <= 0 {
		return
	}
	interval := idle / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := ss.EvictIdle(idle); n > 0 {
				logrus.Debugf("Sweep: evicted %d idle sessions", n)
			}
		}
	}
}
