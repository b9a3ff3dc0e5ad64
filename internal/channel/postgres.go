package channel

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
)

// PostgresStore backs channels and messages with the channels/messages
// tables. The UNIQUE(item_id, user_a, user_b) constraint makes CreateOrGet
// race-safe: two concurrent approvals insert at most one row.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateOrGet(ctx context.Context, itemID, userA, userB string) (models.Channel, error) {
	a, b := orderedPair(userA, userB)

	// DO UPDATE instead of DO NOTHING so RETURNING always yields the row.
	var ch models.Channel
	err := s.db.GetContext(ctx, &ch, `
		INSERT INTO channels (id, item_id, user_a, user_b, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (item_id, user_a, user_b) DO UPDATE SET item_id=EXCLUDED.item_id
		RETURNING *`,
		uuid.New().String(), itemID, a, b, time.Now())
	return ch, err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (models.Channel, error) {
	var ch models.Channel
	err := s.db.GetContext(ctx, &ch, `SELECT * FROM channels WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Channel{}, ErrNotFound
	}
	return ch, err
}

func (s *PostgresStore) Append(ctx context.Context, channelID, senderID, content string) (models.Message, error) {
	m := models.Message{
		ID:        uuid.New().String(),
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, channel_id, sender_id, content, created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		m.ID, m.ChannelID, m.SenderID, m.Content, m.CreatedAt)
	return m, err
}

func (s *PostgresStore) Messages(ctx context.Context, channelID string) ([]models.Message, error) {
	var ms []models.Message
	err := s.db.SelectContext(ctx, &ms, `
		SELECT * FROM messages WHERE channel_id=$1 ORDER BY created_at`, channelID)
	return ms, err
}
