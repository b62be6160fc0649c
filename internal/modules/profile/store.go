package profile

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/issuedesk/internal/domain"
)

const (
	// DefaultSweepInterval is how often expired views are discarded.
	DefaultSweepInterval = time.Minute
	// DefaultMaxViewsPerOwner bounds the open pages kept for one identity.
	DefaultMaxViewsPerOwner = 8
)

type storedView struct {
	vm       *ViewModel
	owner    string
	lastUsed time.Time
}

// Store keeps live view-models between requests. Each view belongs to the roll
// number that activated it and is discarded after ttl without use.
type Store struct {
	mu    sync.Mutex
	views map[string]*storedView
	ttl   time.Duration
	max   int
	now   func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithMaxViewsPerOwner caps how many views one identity may hold. When the
// cap is reached the least recently used view of that identity is discarded.
func WithMaxViewsPerOwner(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

// NewStore creates an empty store. Call Start to begin sweeping expired views.
func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		views: make(map[string]*storedView),
		ttl:   ttl,
		max:   DefaultMaxViewsPerOwner,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores vm under its ID for owner.
func (s *Store) Put(vm *ViewModel, owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.countOwned(owner) >= s.max {
		s.evictOldest(owner)
	}
	s.views[vm.ID()] = &storedView{vm: vm, owner: owner, lastUsed: s.now()}
}

// countOwned and evictOldest require s.mu.
func (s *Store) countOwned(owner string) int {
	n := 0
	for _, v := range s.views {
		if v.owner == owner {
			n++
		}
	}
	return n
}

func (s *Store) evictOldest(owner string) {
	var oldestID string
	var oldest time.Time
	for id, v := range s.views {
		if v.owner != owner {
			continue
		}
		if oldestID == "" || v.lastUsed.Before(oldest) {
			oldestID, oldest = id, v.lastUsed
		}
	}
	delete(s.views, oldestID)
}

// Get returns the live view for id if it belongs to owner and has not expired.
func (s *Store) Get(id, owner string) (*ViewModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[id]
	if !ok {
		return nil, fmt.Errorf("view %q: %w", id, domain.ErrViewNotFound)
	}
	now := s.now()
	if now.Sub(v.lastUsed) > s.ttl {
		delete(s.views, id)
		return nil, fmt.Errorf("view %q expired: %w", id, domain.ErrViewNotFound)
	}
	if v.owner != owner {
		return nil, fmt.Errorf("view %q belongs to another identity: %w", id, domain.ErrViewNotFound)
	}
	v.lastUsed = now
	return v.vm, nil
}

// Delete discards a view.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, id)
}

// Len returns the number of stored views.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep discards every expired view and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, v := range s.views {
		if now.Sub(v.lastUsed) > s.ttl {
			delete(s.views, id)
			removed++
		}
	}
	return removed
}

// Start runs the sweeper in the background until Shutdown.
func (s *Store) Start(interval time.Duration) {
	s.ticker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				if n := s.Sweep(); n > 0 {
					slog.Debug("Discarded expired profile views", "count", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Shutdown stops the sweeper. It is safe to call more than once.
func (s *Store) Shutdown() {
	s.once.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stop)
	})
}
