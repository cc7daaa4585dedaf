// Package entitystore holds typed records keyed by a store-assigned integer identity.
//
// A Store exclusively owns its records: every value handed in is copied, and every
// value handed out is a copy, so callers never share state with the store across calls.
// Records are never physically removed; verticals express deletion through an
// availability or status field and filter it out in their listings.
package entitystore

import (
	"cmp"
	"errors"
	"slices"
	"sync"
	"time"
)

var (
	// ErrConflict reports a natural key or identity that is already taken.
	ErrConflict = errors.New("entity already exists")
	// ErrNilMutation is returned when UpdateFields is called without a mutation.
	ErrNilMutation = errors.New("mutation is nil")
)

// Schema tells the store how to reach the identity and bookkeeping fields of T.
type Schema[T any] struct {
	// ID returns the identity of the record. Zero means unassigned.
	ID func(T) int64
	// SetID assigns the identity on Add.
	SetID func(*T, int64)
	// NaturalKey returns the domain key that must stay unique, or "" when the record has none.
	NaturalKey func(T) string
	// Created stamps the creation timestamp on Add.
	Created func(*T, time.Time)
	// Updated stamps the modification timestamp after a successful UpdateFields.
	Updated func(*T, time.Time)
	// Clone deep-copies a record. Defaults to a value copy.
	Clone func(T) T
}

// Option customises a Store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Store is a mutex-guarded collection of records of type T.
type Store[T any] struct {
	mu     sync.RWMutex
	schema Schema[T]
	now    func() time.Time
	items  map[int64]T
	keys   map[string]int64
	nextID int64
}

// New builds an empty store. ID and SetID are mandatory in schema.
func New[T any](schema Schema[T], opts ...Option) *Store[T] {
	if schema.ID == nil || schema.SetID == nil {
		panic("entitystore: schema requires ID and SetID")
	}
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Store[T]{
		schema: schema,
		now:    o.now,
		items:  map[int64]T{},
		keys:   map[string]int64{},
	}
}

// Add stores a copy of entity, assigning the next identity when none is set, and
// returns the persisted copy. A taken natural key or identity yields ErrConflict and
// leaves the store untouched.
func (s *Store[T]) Add(entity T) (T, error) {
	clone := s.clone(entity)

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.schema.ID(clone)
	if id != 0 {
		if _, taken := s.items[id]; taken {
			var zero T
			return zero, ErrConflict
		}
	}
	key := s.naturalKey(clone)
	if key != "" {
		if _, taken := s.keys[key]; taken {
			var zero T
			return zero, ErrConflict
		}
	}

	if id == 0 {
		s.nextID++
		id = s.nextID
		s.schema.SetID(&clone, id)
	} else if id > s.nextID {
		s.nextID = id
	}
	if s.schema.Created != nil {
		s.schema.Created(&clone, s.now())
	}
	s.items[id] = clone
	if key != "" {
		s.keys[key] = id
	}
	return s.clone(clone), nil
}

// GetByID returns the record regardless of its availability. The boolean is false when
// no record carries id.
func (s *Store[T]) GetByID(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.clone(item), true
}

// FindOne returns the lowest-identity record matching pred.
func (s *Store[T]) FindOne(pred func(T) bool) (T, bool) {
	matches := s.ListWhere(pred, nil)
	if len(matches) == 0 {
		var zero T
		return zero, false
	}
	return matches[0], true
}

// UpdateFields applies mutate to a copy of the record and commits it only when mutate
// succeeds. The boolean is false when id is unknown, in which case nothing changes.
// Changing the natural key to one already in use fails with ErrConflict.
func (s *Store[T]) UpdateFields(id int64, mutate func(*T) error) (T, bool, error) {
	var zero T
	if mutate == nil {
		return zero, false, ErrNilMutation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return zero, false, nil
	}
	draft := s.clone(current)
	if err := mutate(&draft); err != nil {
		return zero, true, err
	}
	// identity is immutable
	s.schema.SetID(&draft, id)

	oldKey, newKey := s.naturalKey(current), s.naturalKey(draft)
	if newKey != oldKey && newKey != "" {
		if owner, taken := s.keys[newKey]; taken && owner != id {
			return zero, true, ErrConflict
		}
		// the old key stays reserved: natural keys are unique across every record ever stored
		s.keys[newKey] = id
	}
	if s.schema.Updated != nil {
		s.schema.Updated(&draft, s.now())
	}
	s.items[id] = draft
	return s.clone(draft), true, nil
}

// ListWhere returns copies of every record matching pred (nil matches all), sorted by
// order. Records that order considers equal fall back to identity ascending, so the
// result is deterministic.
func (s *Store[T]) ListWhere(pred func(T) bool, order func(a, b T) int) []T {
	s.mu.RLock()
	list := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if pred == nil || pred(item) {
			list = append(list, s.clone(item))
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(list, func(a, b T) int {
		if order != nil {
			if c := order(a, b); c != 0 {
				return c
			}
		}
		return cmp.Compare(s.schema.ID(a), s.schema.ID(b))
	})
	return list
}

// Len reports how many records the store holds, including unavailable ones.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) naturalKey(item T) string {
	if s.schema.NaturalKey == nil {
		return ""
	}
	return s.schema.NaturalKey(item)
}

func (s *Store[T]) clone(item T) T {
	if s.schema.Clone == nil {
		return item
	}
	return s.schema.Clone(item)
}
