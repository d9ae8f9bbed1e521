// Package catalog holds the ordered in-memory record store shared by the
// inventory, user and pricing services.
package catalog

import (
	"sync"

	"github.com/nazeru/contractforge-go/pkg/apperrors"
)

// Repository is the record store a domain service is built on. The commit
// callbacks of a mutation run before the next mutation starts, so whatever
// they emit follows the order the store applied the changes in.
type Repository[T any] interface {
	List() []T
	Find(id string) (T, bool)
	Create(rec T, commit ...func(T)) (T, error)
	Update(id string, mutate func(T) (T, error), commit ...func(T)) (T, error)
	Delete(id string, commit ...func(T)) (T, error)
	Reset()
}

// Store keeps records in insertion order. Every operation holds mu for its
// whole read-modify-write sequence so ids stay unique across goroutines.
type Store[T any] struct {
	mu    sync.RWMutex
	items []T
	seed  []T
	key   func(T) string
	label string
}

var _ Repository[struct{}] = (*Store[struct{}])(nil)

// NewStore creates a store seeded with records. label names the entity in
// error messages ("Product", "User", ...).
func NewStore[T any](label string, key func(T) string, seed []T) *Store[T] {
	s := &Store[T]{
		seed:  append([]T(nil), seed...),
		key:   key,
		label: label,
	}
	s.items = append([]T(nil), seed...)
	return s
}

func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Create(rec T, commit ...func(T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.key(rec)
	if s.indexOf(id) >= 0 {
		var zero T
		return zero, apperrors.Conflict(apperrors.CodeAlreadyExists, s.label+" with id '"+id+"' already exists")
	}
	s.items = append(s.items, rec)
	run(commit, rec)
	return rec, nil
}

// Update replaces the record in its existing slot with mutate's result. A
// mutate error leaves the store untouched. The id of a record never changes.
func (s *Store[T]) Update(id string, mutate func(T) (T, error), commit ...func(T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	i := s.indexOf(id)
	if i < 0 {
		return zero, s.notFound(id)
	}
	next, err := mutate(s.items[i])
	if err != nil {
		return zero, err
	}
	if s.key(next) != id {
		return zero, apperrors.Invalid(apperrors.CodeValidation, "id cannot be changed")
	}
	s.items[i] = next
	run(commit, next)
	return next, nil
}

func (s *Store[T]) Delete(id string, commit ...func(T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	i := s.indexOf(id)
	if i < 0 {
		return zero, s.notFound(id)
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	run(commit, removed)
	return removed, nil
}

// Reset restores the seed records.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T(nil), s.seed...)
}

// run calls the commit callbacks while the caller still holds mu.
func run[T any](commit []func(T), rec T) {
	for _, fn := range commit {
		fn(rec)
	}
}

func (s *Store[T]) indexOf(id string) int {
	for i, it := range s.items {
		if s.key(it) == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) notFound(id string) error {
	return apperrors.NotFound(apperrors.CodeNotFound, s.label+" with id '"+id+"' not found")
}
