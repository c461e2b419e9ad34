package reservation

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByUser(ctx context.Context, clubID string, userID, limit int) ([]Reservation, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, club_id, user_id, court_id, amount_paid_cents, status,
		       is_gift, gifted_by_user_id, gift_message, starts_at, created_at
		FROM reservations
		WHERE club_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, clubID, userID, limit)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}
