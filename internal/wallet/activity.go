package wallet

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// insertActivity appends one immutable audit row inside the caller's
// transaction. There is no code path that updates or deletes activity
// rows; reversals are recorded as new transactionUndone activities.
func insertActivity(ctx context.Context, tx *sqlx.Tx, clubID string, userID int, serviceKey string, params Params, amountCents int64, activityType ActivityType, actor string) error {
	query := `
		INSERT INTO wallet_activities (club_id, user_id, service, service_key, params, amount_cents, type, status, initiated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'completed', $8)
	`

	_, err := tx.ExecContext(ctx, query,
		clubID, userID, ServiceLabel(serviceKey), serviceKey, params, amountCents, string(activityType), actor,
	)
	return err
}

// amountType classifies a signed balance delta for the activity row.
func amountType(amountCents int64) ActivityType {
	if amountCents >= 0 {
		return TypeCredit
	}
	return TypeDebit
}
