package items

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/verification"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, item models.Item) (models.Item, error) {
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items
			(id, owner_id, title, description, kind, location, status,
			 verification_question, verification_answer, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)`,
		item.ID, item.OwnerID, item.Title, item.Description, item.Kind,
		item.Location, item.Status, item.VerificationQuestion,
		item.VerificationAnswer, now)
	return item, err
}

func (s *PostgresStore) Update(ctx context.Context, item models.Item) (models.Item, error) {
	if err := validate(item); err != nil {
		return models.Item{}, err
	}
	if item.VerificationAnswer != nil {
		n := verification.Normalize(*item.VerificationAnswer)
		item.VerificationAnswer = &n
	}
	item.UpdatedAt = time.Now()

	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET title=$2, description=$3, kind=$4, location=$5, status=$6,
		    verification_question=$7, verification_answer=$8, updated_at=$9
		WHERE id=$1`,
		item.ID, item.Title, item.Description, item.Kind, item.Location,
		item.Status, item.VerificationQuestion, item.VerificationAnswer,
		item.UpdatedAt)
	if err != nil {
		return models.Item{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Item{}, ErrNotFound
	}
	return s.Get(ctx, item.ID)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	err := s.db.GetContext(ctx, &item, `SELECT * FROM items WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrNotFound
	}
	return item, err
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]models.Item, error) {
	q := `SELECT * FROM items WHERE 1=1`
	var args []any
	if f.Kind != "" {
		args = append(args, f.Kind)
		q += ` AND kind=$` + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		q += ` AND status=$` + strconv.Itoa(len(args))
	}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		q += ` AND owner_id=$` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY created_at DESC`

	var out []models.Item
	err := s.db.SelectContext(ctx, &out, q, args...)
	return out, err
}
