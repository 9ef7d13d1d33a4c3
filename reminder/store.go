package reminder

import (
	"sync"
	"time"

	"github.com/nraghuveer/lc-status/lc_api"
	"github.com/rs/xid"
)

const queriesPerCycle = 3

// Snapshot is what consumers render. Entities stay nil until fetched.
type Snapshot struct {
	Username string
	Profile  *lc_api.Profile
	Daily    *lc_api.DailyChallenge
	Status   *UserStatus
	Avatar   *lc_api.Avatar
	Loading  bool
	Err      string
}

// Empty reports whether nothing has been fetched for the current user yet.
func (s Snapshot) Empty() bool {
	return s.Profile == nil && s.Daily == nil && s.Status == nil && s.Avatar == nil
}

// Store holds the latest snapshot. All writes, including the refresh cycle
// bookkeeping, happen under mu so concurrent completions serialize.
type Store struct {
	mu      sync.Mutex
	snap    Snapshot
	cycle   xid.ID
	pending int

	// deliver serializes subscriber calls so they observe writes in order.
	deliver sync.Mutex
	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(Snapshot))}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe calls fn after every change. fn runs synchronously on the writer's
// goroutine and must not write to the store.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// SubscribeStatus calls fn when Status or Loading change, coalescing changes
// that land within window of each other into one call with the latest values.
func (s *Store) SubscribeStatus(window time.Duration, fn func(status *UserStatus, loading bool)) (cancel func()) {
	d := newDebouncer(window, func(snap Snapshot) { fn(snap.Status, snap.Loading) })

	var (
		mu      sync.Mutex
		started bool
		status  *UserStatus
		loading bool
	)
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		changed := !started || snap.Loading != loading || !sameStatus(snap.Status, status)
		started, status, loading = true, snap.Status, snap.Loading
		mu.Unlock()
		if changed {
			d.push(snap)
		}
	})
	return func() {
		unsubscribe()
		d.stop()
	}
}

func sameStatus(a, b *UserStatus) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *Store) notify() {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	snap := s.Snapshot()
	s.subsMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Username
}

// reset switches to username and drops every entity along with any cycle in flight.
func (s *Store) reset(username string) {
	s.mu.Lock()
	s.snap = Snapshot{Username: username}
	s.cycle = xid.NilID()
	s.pending = 0
	s.mu.Unlock()
	s.notify()
}

// startCycle begins a refresh for the current username. ok is false when no
// username is set, in which case nothing changes.
func (s *Store) startCycle() (cycle xid.ID, username string, ok bool) {
	s.mu.Lock()
	if s.snap.Username == "" {
		s.mu.Unlock()
		return xid.NilID(), "", false
	}
	cycle = xid.New()
	s.cycle = cycle
	s.pending = queriesPerCycle
	s.snap.Loading = true
	s.snap.Err = ""
	username = s.snap.Username
	s.mu.Unlock()
	s.notify()
	return cycle, username, true
}

// finish records one settled query of cycle, applying fn first when non-nil.
// Completions from a superseded cycle are dropped.
func (s *Store) finish(cycle xid.ID, fn func(*Snapshot)) bool {
	s.mu.Lock()
	if cycle != s.cycle || s.pending == 0 {
		s.mu.Unlock()
		return false
	}
	if fn != nil {
		fn(&s.snap)
	}
	s.pending--
	if s.pending == 0 {
		s.snap.Loading = false
	}
	s.mu.Unlock()
	s.notify()
	return true
}

// apply writes outside the pending count, for the avatar download.
func (s *Store) apply(cycle xid.ID, fn func(*Snapshot)) bool {
	s.mu.Lock()
	if cycle != s.cycle {
		s.mu.Unlock()
		return false
	}
	fn(&s.snap)
	s.mu.Unlock()
	s.notify()
	return true
}
