package ledger

import (
	"context"
	"errors"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
)

var (
	// ErrNotFound means no record exists for the given key.
	ErrNotFound = errors.New("chat request not found")
	// ErrSelfContact is returned when a requester tries to contact themselves.
	ErrSelfContact = errors.New("cannot request chat on your own item")
	// ErrVerificationNotConfigured is returned when the item carries no
	// question/answer pair.
	ErrVerificationNotConfigured = errors.New("item has no verification question")
)

// SubmitParams carries one answer submission. Question and CorrectAnswer are
// the item's current pair; they become immutable snapshots on the record the
// first time the triple is seen. CorrectAnswer must already be normalized.
type SubmitParams struct {
	ItemID        string
	RequesterID   string
	OwnerID       string
	Question      string
	CorrectAnswer string
	RawAnswer     string
}

// SubmitResult is what a requester learns from a submission.
type SubmitResult struct {
	RequestID     string
	AnswerCorrect bool
}

// Ledger is the durable store of chat authorization records. One record per
// (item, requester, owner) triple; implementations must make SubmitAnswer an
// atomic upsert on that key and the decision writes guarded, so racing
// callers can never produce duplicate records or contradictory transitions.
type Ledger interface {
	// SubmitAnswer records an answer attempt. On the first submission for a
	// triple it creates a pending record; afterwards it overwrites
	// submitted_answer and answer_correct in place, leaving status alone.
	SubmitAnswer(ctx context.Context, p SubmitParams) (SubmitResult, error)

	// Get returns the record for (itemID, requesterID), or ErrNotFound.
	Get(ctx context.Context, itemID, requesterID string) (models.ChatRequest, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (models.ChatRequest, error)

	// GetByChannel returns the record that provisioned channelID, or
	// ErrNotFound.
	GetByChannel(ctx context.Context, channelID string) (models.ChatRequest, error)

	// ListApprovableForOwner returns the owner's records with a correct
	// answer on file, newest first, regardless of current status.
	ListApprovableForOwner(ctx context.Context, ownerID string) ([]models.ChatRequest, error)

	// Approve sets status=approved and attaches channelID, but only if the
	// record is not already approved; a repeat call leaves the stored
	// channel untouched. Returns the post-transition record.
	Approve(ctx context.Context, id, channelID string) (models.ChatRequest, error)

	// Decline sets status=declined. Idempotent; never touches channel_id.
	Decline(ctx context.Context, id string) (models.ChatRequest, error)
}
