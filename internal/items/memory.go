package items

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/verification"
)

// MemoryStore is the in-process Store used by tests and dev runs.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]models.Item)}
}

func (s *MemoryStore) Create(_ context.Context, item models.Item) (models.Item, error) {
	if err := validate(item); err != nil {
		return models.Item{}, err
	}
	if item.VerificationAnswer != nil {
		n := verification.Normalize(*item.VerificationAnswer)
		item.VerificationAnswer = &n
	}
	item.ID = uuid.New().String()
	item.Status = models.ItemStatusOpen
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now

	s.mu.Lock()
	s.items[item.ID] = item
	s.mu.Unlock()
	return item, nil
}

func (s *MemoryStore) Update(_ context.Context, item models.Item) (models.Item, error) {
	if err := validate(item); err != nil {
		return models.Item{}, err
	}
	if item.VerificationAnswer != nil {
		n := verification.Normalize(*item.VerificationAnswer)
		item.VerificationAnswer = &n
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.items[item.ID]
	if !ok {
		return models.Item{}, ErrNotFound
	}
	item.OwnerID = prev.OwnerID
	item.CreatedAt = prev.CreatedAt
	item.UpdatedAt = time.Now()
	s.items[item.ID] = item
	return item, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.items[id]; ok {
		return item, nil
	}
	return models.Item{}, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Item
	for _, item := range s.items {
		if f.Kind != "" && item.Kind != f.Kind {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if f.OwnerID != "" && item.OwnerID != f.OwnerID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
