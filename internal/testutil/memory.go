// Package testutil holds in-memory stand-ins for the PostgreSQL repositories.
package testutil

import (
	"context"
	"sort"
	"sync"

	"bookstore-api/internal/shared/apperr"
	"bookstore-api/internal/shared/repository"
)

// Memory is a map-backed repository.Repository[T]. Ids are assigned from 1.
type Memory[T any] struct {
	mu     sync.Mutex
	items  map[int64]T
	nextID int64
	getID  func(*T) int64
	setID  func(*T, int64)

	// Hydrate fills relations on the copies returned by FindByID.
	Hydrate func(*T)
	// BeforeDelete can veto a delete, e.g. with apperr.ErrReferenced.
	BeforeDelete func(*T) error

	// Err, when set, is returned by every call.
	Err error
	// NoRowsChanged makes mutations report false without touching the data.
	NoRowsChanged bool
}

var _ repository.Repository[struct{ ID int64 }] = (*Memory[struct{ ID int64 }])(nil)

func NewMemory[T any](getID func(*T) int64, setID func(*T, int64)) *Memory[T] {
	return &Memory[T]{
		items: make(map[int64]T),
		getID: getID,
		setID: setID,
	}
}

// Len returns the number of stored entities.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Each calls fn for every stored entity in id order.
func (m *Memory[T]) Each(fn func(T)) {
	m.mu.Lock()
	items := m.sorted()
	m.mu.Unlock()

	for _, it := range items {
		fn(it)
	}
}

func (m *Memory[T]) sorted() []T {
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.items[id])
	}
	return out
}

func (m *Memory[T]) FindAll(ctx context.Context) ([]T, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(), nil
}

func (m *Memory[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	item, ok := m.items[id]
	m.mu.Unlock()

	if !ok {
		return nil, apperr.ErrNotFound
	}
	if m.Hydrate != nil {
		m.Hydrate(&item)
	}
	return &item, nil
}

func (m *Memory[T]) Create(ctx context.Context, entity *T) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if m.NoRowsChanged {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.setID(entity, m.nextID)
	m.items[m.nextID] = *entity
	return true, nil
}

func (m *Memory[T]) Update(ctx context.Context, entity *T) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if m.NoRowsChanged {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.getID(entity)
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	m.items[id] = *entity
	return true, nil
}

func (m *Memory[T]) Delete(ctx context.Context, entity *T) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if m.NoRowsChanged {
		return false, nil
	}
	if m.BeforeDelete != nil {
		if err := m.BeforeDelete(entity); err != nil {
			return false, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.getID(entity)
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *Memory[T]) Exists(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[id]
	return ok, nil
}

// Save has nothing staged: mutations apply immediately.
func (m *Memory[T]) Save(ctx context.Context) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return false, nil
}
