package channel

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
)

type pairKey struct {
	itemID string
	userA  string
	userB  string
}

// MemoryStore is the in-process Store used by tests and dev runs.
type MemoryStore struct {
	mu       sync.Mutex
	byPair   map[pairKey]models.Channel
	byID     map[string]models.Channel
	messages map[string][]models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byPair:   make(map[pairKey]models.Channel),
		byID:     make(map[string]models.Channel),
		messages: make(map[string][]models.Message),
	}
}

func (s *MemoryStore) CreateOrGet(_ context.Context, itemID, userA, userB string) (models.Channel, error) {
	a, b := orderedPair(userA, userB)

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{itemID, a, b}
	if ch, ok := s.byPair[key]; ok {
		return ch, nil
	}
	ch := models.Channel{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		UserA:     a,
		UserB:     b,
		CreatedAt: time.Now(),
	}
	s.byPair[key] = ch
	s.byID[ch.ID] = ch
	return ch, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.byID[id]; ok {
		return ch, nil
	}
	return models.Channel{}, ErrNotFound
}

func (s *MemoryStore) Append(_ context.Context, channelID, senderID, content string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[channelID]; !ok {
		return models.Message{}, ErrNotFound
	}
	m := models.Message{
		ID:        uuid.New().String(),
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.messages[channelID] = append(s.messages[channelID], m)
	return m, nil
}

func (s *MemoryStore) Messages(_ context.Context, channelID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages[channelID]))
	copy(out, s.messages[channelID])
	return out, nil
}

// Count reports how many channels exist; used by tests asserting that an
// approval provisioned exactly one.
func (s *MemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
