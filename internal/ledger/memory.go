package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/verification"
)

type tripleKey struct {
	itemID      string
	requesterID string
	ownerID     string
}

// MemoryLedger keeps records in process memory behind a mutex. The lock
// gives the same per-triple atomicity the Postgres implementation gets from
// its unique key, so tests and single-node dev runs share one contract.
type MemoryLedger struct {
	mu       sync.Mutex
	byTriple map[tripleKey]*models.ChatRequest
	byID     map[string]*models.ChatRequest
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		byTriple: make(map[tripleKey]*models.ChatRequest),
		byID:     make(map[string]*models.ChatRequest),
	}
}

func (l *MemoryLedger) SubmitAnswer(_ context.Context, p SubmitParams) (SubmitResult, error) {
	if p.RequesterID == p.OwnerID {
		return SubmitResult{}, ErrSelfContact
	}
	if p.Question == "" || p.CorrectAnswer == "" {
		return SubmitResult{}, ErrVerificationNotConfigured
	}

	submitted := verification.Normalize(p.RawAnswer)
	correct := verification.Evaluate(p.RawAnswer, p.CorrectAnswer)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	key := tripleKey{p.ItemID, p.RequesterID, p.OwnerID}
	r, ok := l.byTriple[key]
	if !ok {
		r = &models.ChatRequest{
			ID:            uuid.New().String(),
			ItemID:        p.ItemID,
			RequesterID:   p.RequesterID,
			OwnerID:       p.OwnerID,
			Question:      p.Question,
			CorrectAnswer: p.CorrectAnswer,
			Status:        models.StatusPending,
			CreatedAt:     now,
		}
		l.byTriple[key] = r
		l.byID[r.ID] = r
	}
	r.SubmittedAnswer = &submitted
	r.AnswerCorrect = correct
	r.UpdatedAt = now

	return SubmitResult{RequestID: r.ID, AnswerCorrect: correct}, nil
}

func (l *MemoryLedger) Get(_ context.Context, itemID, requesterID string) (models.ChatRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.byTriple {
		if r.ItemID == itemID && r.RequesterID == requesterID {
			return *r, nil
		}
	}
	return models.ChatRequest{}, ErrNotFound
}

func (l *MemoryLedger) GetByID(_ context.Context, id string) (models.ChatRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.byID[id]; ok {
		return *r, nil
	}
	return models.ChatRequest{}, ErrNotFound
}

func (l *MemoryLedger) GetByChannel(_ context.Context, channelID string) (models.ChatRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.byID {
		if r.ChannelID != nil && *r.ChannelID == channelID {
			return *r, nil
		}
	}
	return models.ChatRequest{}, ErrNotFound
}

func (l *MemoryLedger) ListApprovableForOwner(_ context.Context, ownerID string) ([]models.ChatRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var rs []models.ChatRequest
	for _, r := range l.byID {
		if r.OwnerID == ownerID && r.AnswerCorrect {
			rs = append(rs, *r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].UpdatedAt.After(rs[j].UpdatedAt) })
	return rs, nil
}

func (l *MemoryLedger) Approve(_ context.Context, id, channelID string) (models.ChatRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.byID[id]
	if !ok {
		return models.ChatRequest{}, ErrNotFound
	}
	if r.Status != models.StatusApproved {
		r.Status = models.StatusApproved
		r.ChannelID = &channelID
		r.UpdatedAt = time.Now()
	}
	return *r, nil
}

func (l *MemoryLedger) Decline(_ context.Context, id string) (models.ChatRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.byID[id]
	if !ok {
		return models.ChatRequest{}, ErrNotFound
	}
	r.Status = models.StatusDeclined
	r.UpdatedAt = time.Now()
	return *r, nil
}
