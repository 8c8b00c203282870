package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Nikcet/get-gifts-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

// GiftRepository persists wishlist entries. Rows are created in the
// "processing" state when a URL is submitted and resolved to "completed" or
// "failed" by the extraction worker.
type GiftRepository struct {
	db *DB
}

func NewGiftRepository(db *DB) *GiftRepository {
	return &GiftRepository{db: db}
}

func (r *GiftRepository) Insert(ctx context.Context, gift *models.Gift) error {
	query := `
		INSERT INTO gifts (id, user_id, name, cost, link, photo, is_reserved, reserve_owner, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		gift.ID, gift.UserID, gift.Name, gift.Cost, gift.Link,
		gift.Photo, gift.IsReserved, gift.ReserveOwner, gift.Status,
	).Scan(&gift.CreatedAt, &gift.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert gift: %w", err)
	}

	return nil
}

// Complete merges the extraction result into an existing processing row.
func (r *GiftRepository) Complete(ctx context.Context, id, name, photo string, cost float64) error {
	query := `
		UPDATE gifts
		SET name = $1, photo = $2, cost = $3, status = $4, error = '', updated_at = NOW()
		WHERE id = $5`

	tag, err := r.db.Exec(ctx, query, name, photo, cost, models.GiftStatusCompleted, id)
	if err != nil {
		return fmt.Errorf("failed to complete gift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Fail marks the row permanently failed, keeping the diagnostic message so
// polling clients can tell a dead job from one still in flight.
func (r *GiftRepository) Fail(ctx context.Context, id, message string) error {
	query := `
		UPDATE gifts
		SET status = $1, error = $2, updated_at = NOW()
		WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, models.GiftStatusFailed, message, id)
	if err != nil {
		return fmt.Errorf("failed to mark gift failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GiftRepository) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	query := giftSelect + ` WHERE id = $1`

	gift, err := scanGift(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gift: %w", err)
	}

	return gift, nil
}

func (r *GiftRepository) List(ctx context.Context) ([]*models.Gift, error) {
	query := giftSelect + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	defer rows.Close()

	return collectGifts(rows)
}

func (r *GiftRepository) ListByUser(ctx context.Context, userID string) ([]*models.Gift, error) {
	query := giftSelect + ` WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts by user: %w", err)
	}
	defer rows.Close()

	return collectGifts(rows)
}

func (r *GiftRepository) Update(ctx context.Context, gift *models.Gift) error {
	query := `
		UPDATE gifts
		SET name = $1, cost = $2, link = $3, photo = $4,
		    is_reserved = $5, reserve_owner = $6, updated_at = NOW()
		WHERE id = $7`

	tag, err := r.db.Exec(ctx, query,
		gift.Name, gift.Cost, gift.Link, gift.Photo,
		gift.IsReserved, gift.ReserveOwner, gift.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GiftRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM gifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Reserve claims a gift for the named user. Claiming an already reserved
// gift fails so two guests cannot buy the same present.
func (r *GiftRepository) Reserve(ctx context.Context, id, owner string) error {
	query := `
		UPDATE gifts
		SET is_reserved = TRUE, reserve_owner = $1, updated_at = NOW()
		WHERE id = $2 AND is_reserved = FALSE`

	tag, err := r.db.Exec(ctx, query, owner, id)
	if err != nil {
		return fmt.Errorf("failed to reserve gift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GiftRepository) Unreserve(ctx context.Context, id string) error {
	query := `
		UPDATE gifts
		SET is_reserved = FALSE, reserve_owner = '', updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to unreserve gift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

const giftSelect = `
	SELECT id, user_id, name, cost, link, photo,
	       is_reserved, reserve_owner, status, error,
	       created_at, updated_at
	FROM gifts`

func scanGift(row pgx.Row) (*models.Gift, error) {
	gift := &models.Gift{}
	err := row.Scan(
		&gift.ID, &gift.UserID, &gift.Name, &gift.Cost, &gift.Link, &gift.Photo,
		&gift.IsReserved, &gift.ReserveOwner, &gift.Status, &gift.Error,
		&gift.CreatedAt, &gift.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return gift, nil
}

func collectGifts(rows pgx.Rows) ([]*models.Gift, error) {
	gifts := make([]*models.Gift, 0)
	for rows.Next() {
		gift, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift: %w", err)
		}
		gifts = append(gifts, gift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gifts: %w", err)
	}
	return gifts, nil
}
