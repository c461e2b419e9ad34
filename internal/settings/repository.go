package settings

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

const selectQuery = `
		SELECT club_id, transfer_access, add_balance_access, pay_access, updated_at
		FROM club_settings
		WHERE club_id = $1
`

// Fetch returns the club's settings, creating the default row (all
// features enabled) on first read so every club always has exactly one
// settings row.
func (r *repository) Fetch(ctx context.Context, clubID string) (*Settings, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO club_settings (club_id) VALUES ($1) ON CONFLICT (club_id) DO NOTHING`,
		clubID,
	); err != nil {
		return nil, err
	}

	var rec row
	if err := r.db.GetContext(ctx, &rec, selectQuery, clubID); err != nil {
		return nil, err
	}
	return rec.toSettings(), nil
}

// Update applies the provided flags and leaves omitted ones untouched.
// The row is locked for the read-modify-write so concurrent updates of
// different flags do not clobber each other.
func (r *repository) Update(ctx context.Context, clubID string, req UpdateRequest) (*Settings, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO club_settings (club_id) VALUES ($1) ON CONFLICT (club_id) DO NOTHING`,
		clubID,
	); err != nil {
		return nil, err
	}

	var rec row
	if err := tx.QueryRowxContext(ctx, selectQuery+` FOR UPDATE`, clubID).StructScan(&rec); err != nil {
		return nil, err
	}

	if req.TransferDisabled != nil {
		rec.TransferAccess = !*req.TransferDisabled
	}
	if req.AddBalanceDisabled != nil {
		rec.AddBalanceAccess = !*req.AddBalanceDisabled
	}
	if req.PayDisabled != nil {
		rec.PayAccess = !*req.PayDisabled
	}

	if err := tx.QueryRowxContext(ctx,
		`UPDATE club_settings
		 SET transfer_access = $1, add_balance_access = $2, pay_access = $3, updated_at = NOW()
		 WHERE club_id = $4
		 RETURNING club_id, transfer_access, add_balance_access, pay_access, updated_at`,
		rec.TransferAccess, rec.AddBalanceAccess, rec.PayAccess, clubID,
	).StructScan(&rec); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec.toSettings(), nil
}
