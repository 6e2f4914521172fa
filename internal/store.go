package internal

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the lifecycle of a store within one session
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	// StateEmpty is Ready without a backend: nothing can be read or written
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Store owns the in-memory subscription collection of the current session and
// keeps it reconciled with the backend selected for that session.
//
// Memory is only changed after the backend confirmed a write. Backend calls are
// not sequenced per id: overlapping mutations of one record race at the backend
// and the last one to finish wins in memory.
type Store struct {
	selector BackendSelector
	log      *zap.Logger
	now      func() time.Time

	mu      sync.RWMutex
	state   State
	session *Session
	backend Backend
	subs    []Subscription
}

type StoreOption func(*Store)

func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the time source used for usage timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(selector BackendSelector, opts ...StoreOption) *Store {
	s := &Store{
		selector: selector,
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open runs the Uninitialized -> Loading -> Ready sequence for session. Load
// failures are logged and leave the store Ready with an empty collection.
func (s *Store) Open(ctx context.Context, session *Session) error {
	s.mu.Lock()
	s.state = StateLoading
	s.session = session
	s.backend = nil
	s.subs = nil
	s.mu.Unlock()

	backend, err := s.selector(ctx, session)
	if err != nil {
		s.log.Error("selecting backend failed", zap.Bool("authenticated", session != nil), zap.Error(err))
		backend = nil
	}

	var loaded []Subscription
	if backend != nil {
		loaded, err = backend.Load(ctx)
		if err != nil {
			s.log.Error("loading subscriptions failed", zap.String("backend", backend.Name()), zap.Error(err))
			loaded = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != session {
		// a newer session change won the race; its Open owns the state
		return nil
	}
	s.backend = backend
	s.subs = loaded
	if backend == nil {
		s.state = StateEmpty
	} else {
		s.state = StateReady
	}
	s.log.Debug("store ready", zap.Stringer("state", s.state), zap.Int("count", len(loaded)))
	return nil
}

// SessionChanged resets the store and reloads it against the backend of the new
// session. The previous collection is discarded, never merged.
func (s *Store) SessionChanged(ctx context.Context, session *Session) error {
	s.mu.Lock()
	s.state = StateUninitialized
	s.mu.Unlock()
	return s.Open(ctx, session)
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Session returns the session the store was opened for
func (s *Store) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// BackendName names the selected backend, or "" when there is none
func (s *Store) BackendName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.backend == nil {
		return ""
	}
	return s.backend.Name()
}

// List returns a copy of the collection, newest first
func (s *Store) List() []Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.subs)
}

func (s *Store) Get(id string) (Subscription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subs {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subscription{}, false
}

// Resolve maps an id or a unique id prefix to the full id
func (s *Store) Resolve(ref string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found []string
	for _, sub := range s.subs {
		if sub.ID == ref {
			return ref, nil
		}
		if ref != "" && strings.HasPrefix(sub.ID, ref) {
			found = append(found, sub.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d subscriptions", ref, len(found))
	}
}

// CheckDuplicates runs duplicate detection of candidate against the collection
func (s *Store) CheckDuplicates(candidate Subscription) []DuplicateMatch {
	return FindDuplicates(candidate, s.List())
}

// Add is the interactive single-add path. Unless force is set, probable duplicates
// abort the add and are returned together with ErrDuplicate.
func (s *Store) Add(ctx context.Context, candidate Subscription, force bool) (Subscription, []DuplicateMatch, error) {
	if err := Validate(candidate); err != nil {
		return Subscription{}, nil, err
	}
	matches := s.CheckDuplicates(candidate)
	if len(matches) > 0 && !force {
		return Subscription{}, matches, ErrDuplicate
	}
	created, err := s.Create(ctx, candidate)
	return created, matches, err
}

// Create validates partial, applies defaults, persists it and prepends the
// confirmed record to the collection
func (s *Store) Create(ctx context.Context, partial Subscription) (Subscription, error) {
	if err := Validate(partial); err != nil {
		return Subscription{}, err
	}

	backend, err := s.currentBackend()
	if err != nil {
		return Subscription{}, err
	}

	created, err := backend.Create(ctx, partial.withDefaults())
	if err != nil {
		return Subscription{}, s.persistenceError("create", backend, err)
	}

	s.mu.Lock()
	if s.backend == backend {
		s.subs = append([]Subscription{created}, s.subs...)
	}
	s.mu.Unlock()

	s.log.Debug("subscription created", zap.String("id", created.ID), zap.String("backend", backend.Name()))
	return created, nil
}

// Update persists patch for id and merges it into the matching record. The backend
// is called even when id is not in memory.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	if err := ValidatePatch(patch); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}

	backend, err := s.currentBackend()
	if err != nil {
		return err
	}

	if err := backend.Update(ctx, id, patch); err != nil {
		return s.persistenceError("update", backend, err)
	}

	s.mu.Lock()
	if s.backend == backend {
		for i := range s.subs {
			if s.subs[i].ID == id {
				patch.Apply(&s.subs[i])
				break
			}
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete removes id from the backend and then from memory
func (s *Store) Delete(ctx context.Context, id string) error {
	backend, err := s.currentBackend()
	if err != nil {
		return err
	}

	if err := backend.Delete(ctx, id); err != nil {
		return s.persistenceError("delete", backend, err)
	}

	s.mu.Lock()
	if s.backend == backend {
		s.subs = slices.DeleteFunc(s.subs, func(sub Subscription) bool { return sub.ID == id })
	}
	s.mu.Unlock()
	return nil
}

// IncrementUsage records one use of id: usageCount + 1 and lastUsed = now
func (s *Store) IncrementUsage(ctx context.Context, id string) error {
	sub, ok := s.Get(id)
	if !ok {
		return ErrNotFound
	}
	count := sub.UsageCount + 1
	now := s.now()
	return s.Update(ctx, id, Patch{UsageCount: &count, LastUsed: &now})
}

func (s *Store) currentBackend() (Backend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.backend == nil {
		return nil, ErrNoBackend
	}
	return s.backend, nil
}

func (s *Store) persistenceError(op string, backend Backend, err error) error {
	s.log.Error("persisting subscription failed",
		zap.String("op", op), zap.String("backend", backend.Name()), zap.Error(err))
	return &PersistenceError{Op: op, Backend: backend.Name(), Err: err}
}
