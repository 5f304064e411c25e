// Package docstore is an in-process document collection for user records.
// Every write is atomic under a single lock, the email index is unique, and
// an optional Persistence keeps a JSON snapshot on disk.
package docstore

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/ren-lyn/midterm-lab3/internal/domain"
)

// Store holds user records in memory.
type Store struct {
	mu      sync.RWMutex
	docs    map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
	seq     uint64

	persister *Persistence
	wg        sync.WaitGroup
	log       *slog.Logger
}

// New creates an empty store. persister may be nil for a purely in-memory
// collection.
func New(log *slog.Logger, persister *Persistence) *Store {
	return &Store{
		docs:      make(map[uuid.UUID]domain.User),
		byEmail:   make(map[string]uuid.UUID),
		persister: persister,
		log:       log.With("adapter", "docstore"),
	}
}

// Open creates a store backed by persister and loads its last snapshot.
func Open(log *slog.Logger, persister *Persistence) (*Store, error) {
	s := New(log, persister)

	docs, err := persister.Load()
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if _, taken := s.byEmail[d.Email]; taken {
			return nil, fmt.Errorf("docstore: snapshot has duplicate email %q", d.Email)
		}
		s.docs[d.ID] = fromDocument(d)
		s.byEmail[d.Email] = d.ID
	}

	s.log.Info("snapshot loaded", slog.Int("records", len(docs)))
	return s, nil
}

// Wait blocks until every background snapshot write has finished.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Ping reports whether the store can serve requests. An in-process store is
// always ready unless ctx is already done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// List returns all records ordered by creation time, then id.
func (s *Store) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	users := s.sortedLocked()
	s.mu.RUnlock()

	return users, nil
}

// GetByID returns a copy of the record with the given id.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.docs[id]
	if !ok {
		return nil, notFound(id)
	}
	return &u, nil
}

// Create inserts a new record. The email must not be held by any record.
func (s *Store) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.docs[u.ID]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("user %s: %w", u.ID, domain.ErrAlreadyExists)
	}
	if _, taken := s.byEmail[u.Email]; taken {
		s.mu.Unlock()
		return nil, fmt.Errorf("user %s: %w", u.ID, domain.NewDuplicateKeyError("email", u.Email))
	}

	stored := *u
	s.docs[stored.ID] = stored
	s.byEmail[stored.Email] = stored.ID
	s.persistLocked()
	s.mu.Unlock()

	return &stored, nil
}

// Update replaces the descriptive fields and UpdatedAt of an existing
// record. ID and CreatedAt keep their stored values. The email may equal the
// record's own current email but no other record's.
func (s *Store) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	current, ok := s.docs[u.ID]
	if !ok {
		s.mu.Unlock()
		return nil, notFound(u.ID)
	}
	if owner, taken := s.byEmail[u.Email]; taken && owner != u.ID {
		s.mu.Unlock()
		return nil, fmt.Errorf("user %s: %w", u.ID, domain.NewDuplicateKeyError("email", u.Email))
	}

	delete(s.byEmail, current.Email)
	current.Name = u.Name
	current.Email = u.Email
	current.Age = u.Age
	current.Occupation = u.Occupation
	current.UpdatedAt = u.UpdatedAt
	s.docs[current.ID] = current
	s.byEmail[current.Email] = current.ID
	s.persistLocked()
	s.mu.Unlock()

	return &current, nil
}

// Delete removes a record by id.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	current, ok := s.docs[id]
	if !ok {
		s.mu.Unlock()
		return notFound(id)
	}
	delete(s.docs, id)
	delete(s.byEmail, current.Email)
	s.persistLocked()
	s.mu.Unlock()

	return nil
}

// sortedLocked returns a copy of all records in list order.
// Callers must hold s.mu.
func (s *Store) sortedLocked() []domain.User {
	users := make([]domain.User, 0, len(s.docs))
	for _, u := range s.docs {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b domain.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return users
}

// persistLocked snapshots the collection and writes it in the background.
// Callers must hold s.mu for writing.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}

	s.seq++
	seq := s.seq
	users := s.sortedLocked()
	docs := make([]document, 0, len(users))
	for _, u := range users {
		docs = append(docs, toDocument(u))
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.persister.Save(seq, docs); err != nil {
			s.log.Error("snapshot write failed", slog.Uint64("seq", seq), slog.String("error", err.Error()))
		}
	}()
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func toDocument(u domain.User) document {
	return document{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Age:        u.Age,
		Occupation: u.Occupation,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func fromDocument(d document) domain.User {
	return domain.User{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Age:        d.Age,
		Occupation: d.Occupation,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}
