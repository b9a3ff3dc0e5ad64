package chat

import (
	"context"
	"errors"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/channel"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/items"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/ledger"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/notify"
)

var (
	// ErrForbidden means the acting user is not the record's owner.
	ErrForbidden = errors.New("only the item owner may decide this request")
	// ErrAnswerNotVerified blocks approval while no correct answer is on
	// record.
	ErrAnswerNotVerified = errors.New("requester has not answered correctly")
)

// Coordinator drives the request lifecycle: answer submissions from
// requesters and approve/decline decisions from owners. On approval it
// provisions (or reuses) the channel for the triple and notifies the
// requester.
type Coordinator struct {
	items    items.Store
	ledger   ledger.Ledger
	channels channel.Store
	notifier notify.Notifier
}

func NewCoordinator(is items.Store, l ledger.Ledger, cs channel.Store, n notify.Notifier) *Coordinator {
	return &Coordinator{items: is, ledger: l, channels: cs, notifier: n}
}

// SubmitAnswer records a requester's answer against the item's question.
// The item's current question/answer pair is snapshotted into the record on
// first submission; later item edits do not reach existing records.
func (c *Coordinator) SubmitAnswer(ctx context.Context, itemID, requesterID, rawAnswer string) (ledger.SubmitResult, error) {
	item, err := c.items.Get(ctx, itemID)
	if err != nil {
		return ledger.SubmitResult{}, err
	}

	p := ledger.SubmitParams{
		ItemID:      itemID,
		RequesterID: requesterID,
		OwnerID:     item.OwnerID,
		RawAnswer:   rawAnswer,
	}
	if item.HasVerification() {
		p.Question = *item.VerificationQuestion
		p.CorrectAnswer = *item.VerificationAnswer
	}

	res, err := c.ledger.SubmitAnswer(ctx, p)
	if err != nil {
		return ledger.SubmitResult{}, err
	}

	if res.AnswerCorrect {
		c.notifier.Emit(ctx, item.OwnerID, notify.Event{
			Type: notify.EventChatRequest,
			Payload: map[string]any{
				"item_id":      itemID,
				"requester_id": requesterID,
				"request_id":   res.RequestID,
			},
		})
	}
	return res, nil
}

// Approve grants the request and returns the channel id. Idempotent: a
// repeat or racing approval returns the already-provisioned channel.
func (c *Coordinator) Approve(ctx context.Context, requestID, actorID string) (string, error) {
	req, err := c.ledger.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if actorID != req.OwnerID {
		return "", ErrForbidden
	}
	if !req.AnswerCorrect {
		return "", ErrAnswerNotVerified
	}

	// CreateOrGet is keyed on the triple, so both of two racing approvers
	// resolve to the same channel before the guarded status write.
	ch, err := c.channels.CreateOrGet(ctx, req.ItemID, req.RequesterID, req.OwnerID)
	if err != nil {
		return "", err
	}
	updated, err := c.ledger.Approve(ctx, req.ID, ch.ID)
	if err != nil {
		return "", err
	}
	if updated.ChannelID == nil {
		return "", ledger.ErrNotFound
	}

	c.notifier.Emit(ctx, req.RequesterID, notify.Event{
		Type: notify.EventChatApproved,
		Payload: map[string]any{
			"item_id":    req.ItemID,
			"request_id": req.ID,
			"channel_id": *updated.ChannelID,
		},
	})
	return *updated.ChannelID, nil
}

// Decline marks the request declined. Idempotent; an existing channel id
// stays on the record but the gate stops honoring it immediately.
func (c *Coordinator) Decline(ctx context.Context, requestID, actorID string) error {
	req, err := c.ledger.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if actorID != req.OwnerID {
		return ErrForbidden
	}

	if _, err := c.ledger.Decline(ctx, req.ID); err != nil {
		return err
	}

	c.notifier.Emit(ctx, req.RequesterID, notify.Event{
		Type: notify.EventChatDeclined,
		Payload: map[string]any{
			"item_id":    req.ItemID,
			"request_id": req.ID,
		},
	})
	return nil
}

// ListIncoming returns the owner's decidable requests: a correct answer on
// file, newest first, whatever the current status.
func (c *Coordinator) ListIncoming(ctx context.Context, ownerID string) ([]models.ChatRequest, error) {
	return c.ledger.ListApprovableForOwner(ctx, ownerID)
}

// StatusView is what a requester sees about their own request.
type StatusView struct {
	HasRequest    bool    `json:"has_request"`
	Answered      bool    `json:"answered"`
	AnswerCorrect *bool   `json:"answer_correct,omitempty"`
	Status        *string `json:"status,omitempty"`
	ChannelID     *string `json:"channel_id,omitempty"`
}

// Status reports the request state for (itemID, requesterID). Absence of a
// record is not an error; it is the "never submitted" state.
func (c *Coordinator) Status(ctx context.Context, itemID, requesterID string) (StatusView, error) {
	req, err := c.ledger.Get(ctx, itemID, requesterID)
	if errors.Is(err, ledger.ErrNotFound) {
		return StatusView{}, nil
	}
	if err != nil {
		return StatusView{}, err
	}

	v := StatusView{
		HasRequest:    true,
		Answered:      req.SubmittedAnswer != nil,
		AnswerCorrect: &req.AnswerCorrect,
		Status:        &req.Status,
	}
	if req.Status == models.StatusApproved {
		v.ChannelID = req.ChannelID
	}
	return v, nil
}
