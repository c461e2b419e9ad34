package court

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

func (r *repository) CreateCourt(ctx context.Context, clubID, name string) (*Court, error) {
	query := `
		INSERT INTO courts (club_id, name)
		VALUES ($1, $2)
		RETURNING id, club_id, name, created_at
	`

	var court Court
	err := r.db.GetContext(ctx, &court, query, clubID, name)
	if err != nil {
		return nil, err
	}

	return &court, nil
}

func (r *repository) GetAllCourts(ctx context.Context, clubID string) ([]Court, error) {
	query := `
		SELECT id, club_id, name, created_at
		FROM courts
		WHERE club_id = $1
		ORDER BY name ASC
	`

	var courts []Court
	err := r.db.SelectContext(ctx, &courts, query, clubID)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

// CourtsMap is a read-only lookup used to label reservation-derived
// ledger entries.
func (r *repository) CourtsMap(ctx context.Context, clubID string) (map[int]Court, error) {
	courts, err := r.GetAllCourts(ctx, clubID)
	if err != nil {
		return nil, err
	}

	m := make(map[int]Court, len(courts))
	for _, c := range courts {
		m[c.ID] = c
	}

	return m, nil
}
