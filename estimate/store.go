package estimate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultAuthor is the author recorded on comments when none is configured.
const DefaultAuthor = "Usuario Actual"

// ErrUnavailable is returned when an edit is requested in a context that
// does not carry the Mutator capability.
var ErrUnavailable = errors.New("estimate: editing is not available")

// Mutator is the full mutation contract for a pre-order. A view either gets
// an implementation or no editing at all.
type Mutator interface {
	SetOrderQuantity(ctx context.Context, materialID string, quantity float64) (bool, error)
	AddMaterial(ctx context.Context, familyID string, entry *CatalogEntry) (Material, bool, error)
	ReplaceMaterial(ctx context.Context, materialID string, entry *CatalogEntry) (Material, bool, error)
	AppendComment(ctx context.Context, materialID, text string) (Comment, bool, error)
}

// Catalog supplies the materials that can be added or substituted.
type Catalog interface {
	All() []CatalogEntry
	Lookup(code string) (CatalogEntry, bool)
}

// Persister receives every change applied by a Store. A non-nil error
// aborts the change.
type Persister interface {
	Persist(ctx context.Context, change Change) error
}

// Observer is notified after a change has been committed.
type Observer func(change Change, tree Tree)

// Store owns the current tree. Dispatches are serialized; readers get an
// immutable snapshot.
type Store struct {
	mu        sync.RWMutex
	tree      Tree
	env       Env
	persister Persister
	observers []Observer
}

// Option configures a Store.
type Option func(*Store)

// WithPersister writes every change through p before it is committed.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithAuthor sets the author recorded on new comments.
func WithAuthor(author string) Option {
	return func(s *Store) { s.env.Author = author }
}

// WithClock overrides time.Now for comment timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.env.Now = now }
}

// WithIDs overrides the generator of material and comment ids.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.env.NewID = newID }
}

// WithObserver registers o to be called after every committed change.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, o) }
}

// NewStore seeds a store with tree.
func NewStore(tree Tree, opts ...Option) *Store {
	s := &Store{
		tree: tree,
		env: Env{
			NewID:  uuid.NewString,
			Now:    time.Now,
			Author: DefaultAuthor,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current tree.
func (s *Store) Snapshot() Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// Dispatch reduces action against the current tree and commits the result.
// ok is false when the action was a no-op.
func (s *Store) Dispatch(ctx context.Context, action Action) (Change, bool, error) {
	s.mu.Lock()
	next, change, ok := Reduce(s.tree, action, s.env)
	if !ok {
		s.mu.Unlock()
		return Change{}, false, nil
	}
	if s.persister != nil {
		if err := s.persister.Persist(ctx, change); err != nil {
			s.mu.Unlock()
			return Change{}, false, fmt.Errorf("%s: %w", action.Op(), err)
		}
	}
	s.tree = next
	observers := s.observers
	s.mu.Unlock()

	for _, o := range observers {
		o(change, next)
	}
	return change, true, nil
}

func (s *Store) SetOrderQuantity(ctx context.Context, materialID string, quantity float64) (bool, error) {
	_, ok, err := s.Dispatch(ctx, SetOrderQuantity{MaterialID: materialID, Quantity: quantity})
	return ok, err
}

func (s *Store) AddMaterial(ctx context.Context, familyID string, entry *CatalogEntry) (Material, bool, error) {
	change, ok, err := s.Dispatch(ctx, AddMaterial{FamilyID: familyID, Entry: entry})
	return change.Material, ok, err
}

func (s *Store) ReplaceMaterial(ctx context.Context, materialID string, entry *CatalogEntry) (Material, bool, error) {
	change, ok, err := s.Dispatch(ctx, ReplaceMaterial{MaterialID: materialID, Entry: entry})
	return change.Material, ok, err
}

func (s *Store) AppendComment(ctx context.Context, materialID, text string) (Comment, bool, error) {
	change, ok, err := s.Dispatch(ctx, AppendComment{MaterialID: materialID, Text: text})
	if !ok || change.Comment == nil {
		return Comment{}, ok, err
	}
	return *change.Comment, true, nil
}

var _ Mutator = (*Store)(nil)
