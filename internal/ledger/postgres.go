package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/verification"
)

// PostgresLedger stores chat requests in the chat_requests table. The
// UNIQUE(item_id, requester_id, owner_id) constraint plus ON CONFLICT
// upserts serialize racing submissions at the database.
type PostgresLedger struct {
	db *sqlx.DB
}

func NewPostgresLedger(db *sqlx.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (l *PostgresLedger) SubmitAnswer(ctx context.Context, p SubmitParams) (SubmitResult, error) {
	if p.RequesterID == p.OwnerID {
		return SubmitResult{}, ErrSelfContact
	}
	if p.Question == "" || p.CorrectAnswer == "" {
		return SubmitResult{}, ErrVerificationNotConfigured
	}

	submitted := verification.Normalize(p.RawAnswer)
	correct := verification.Evaluate(p.RawAnswer, p.CorrectAnswer)
	now := time.Now()

	// On conflict the question/answer snapshots and status stay as they
	// were; only the latest submission fields move (last write wins).
	var id string
	err := l.db.QueryRowContext(ctx, `
		INSERT INTO chat_requests
			(id, item_id, requester_id, owner_id, question, correct_answer,
			 submitted_answer, answer_correct, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)
		ON CONFLICT (item_id, requester_id, owner_id) DO UPDATE
			SET submitted_answer=$7, answer_correct=$8, updated_at=$10
		RETURNING id`,
		uuid.New().String(), p.ItemID, p.RequesterID, p.OwnerID,
		p.Question, p.CorrectAnswer, submitted, correct,
		models.StatusPending, now).Scan(&id)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{RequestID: id, AnswerCorrect: correct}, nil
}

func (l *PostgresLedger) Get(ctx context.Context, itemID, requesterID string) (models.ChatRequest, error) {
	var r models.ChatRequest
	err := l.db.GetContext(ctx, &r, `
		SELECT * FROM chat_requests WHERE item_id=$1 AND requester_id=$2`,
		itemID, requesterID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRequest{}, ErrNotFound
	}
	return r, err
}

func (l *PostgresLedger) GetByID(ctx context.Context, id string) (models.ChatRequest, error) {
	var r models.ChatRequest
	err := l.db.GetContext(ctx, &r, `SELECT * FROM chat_requests WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRequest{}, ErrNotFound
	}
	return r, err
}

func (l *PostgresLedger) GetByChannel(ctx context.Context, channelID string) (models.ChatRequest, error) {
	var r models.ChatRequest
	err := l.db.GetContext(ctx, &r, `SELECT * FROM chat_requests WHERE channel_id=$1`, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRequest{}, ErrNotFound
	}
	return r, err
}

func (l *PostgresLedger) ListApprovableForOwner(ctx context.Context, ownerID string) ([]models.ChatRequest, error) {
	var rs []models.ChatRequest
	err := l.db.SelectContext(ctx, &rs, `
		SELECT * FROM chat_requests
		WHERE owner_id=$1 AND answer_correct=TRUE
		ORDER BY updated_at DESC`, ownerID)
	return rs, err
}

func (l *PostgresLedger) Approve(ctx context.Context, id, channelID string) (models.ChatRequest, error) {
	// Guarded write: only one of two racing approvers flips the row. The
	// loser falls through to the reread and returns the stored channel.
	_, err := l.db.ExecContext(ctx, `
		UPDATE chat_requests
		SET status=$2, channel_id=$3, updated_at=$4
		WHERE id=$1 AND status <> $2`,
		id, models.StatusApproved, channelID, time.Now())
	if err != nil {
		return models.ChatRequest{}, err
	}
	return l.GetByID(ctx, id)
}

func (l *PostgresLedger) Decline(ctx context.Context, id string) (models.ChatRequest, error) {
	res, err := l.db.ExecContext(ctx, `
		UPDATE chat_requests SET status=$2, updated_at=$3 WHERE id=$1`,
		id, models.StatusDeclined, time.Now())
	if err != nil {
		return models.ChatRequest{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ChatRequest{}, ErrNotFound
	}
	return l.GetByID(ctx, id)
}
