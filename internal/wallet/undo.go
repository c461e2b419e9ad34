package wallet

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"clubledger/internal/metrics"

	"github.com/jmoiron/sqlx"
)

// undoableKeys is the closed set of operation kinds the engine can
// reverse. Everything else, transfers and reservations included, is
// rejected with ErrUnsupportedUndo before any write happens.
var undoableKeys = map[string]bool{
	KeyBalanceAdded:     true,
	KeyNegativeLimitSet: true,
	KeyWalletBlocked:    true,
	KeyWalletUnblocked:  true,
}

// Undo reverses the activity behind a ledger entry. The original row is
// never touched: the compensation is applied to the wallet and recorded
// as a new transactionUndone activity.
func (m *Mutator) Undo(ctx context.Context, clubID string, userID int, entry LedgerEntry, actor string) error {
	if entry.Kind != EntryActivity || entry.ActivityID == 0 {
		metrics.RecordUndo(string(entry.Kind), "unsupported")
		return ErrUnsupportedUndo
	}
	return m.UndoActivity(ctx, clubID, userID, entry.ActivityID, actor)
}

func (m *Mutator) UndoActivity(ctx context.Context, clubID string, userID int, activityID int64, actor string) error {
	serviceKey, err := m.undoActivityTx(ctx, clubID, userID, activityID, actor)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrUnsupportedUndo) {
			outcome = "unsupported"
		}
		metrics.RecordUndo(serviceKey, outcome)
		return err
	}

	metrics.RecordUndo(serviceKey, "success")
	m.notify(ctx, clubID)
	return nil
}

func (m *Mutator) undoActivityTx(ctx context.Context, clubID string, userID int, activityID int64, actor string) (string, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var original Activity
	if err := tx.QueryRowxContext(ctx,
		`SELECT id, club_id, user_id, service, service_key, params,
		        amount_cents, type, status, initiated_by, created_at
		 FROM wallet_activities
		 WHERE club_id = $1 AND user_id = $2 AND id = $3`,
		clubID, userID, activityID,
	).StructScan(&original); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrActivityNotFound
		}
		return "", err
	}

	if !undoableKeys[original.ServiceKey] {
		return original.ServiceKey, ErrUnsupportedUndo
	}

	w, err := lockWallet(ctx, tx, clubID, userID)
	if err != nil {
		return original.ServiceKey, err
	}

	undoParams := Params{
		"undone_activity_id": strconv.FormatInt(original.ID, 10),
		"undone_service_key": original.ServiceKey,
	}

	switch original.ServiceKey {
	case KeyBalanceAdded:
		newBalance := w.BalanceCents - original.AmountCents
		if err := updateBalance(ctx, tx, clubID, userID, newBalance); err != nil {
			return original.ServiceKey, err
		}
		undoParams["reversed_amount"] = strconv.FormatInt(original.AmountCents, 10)

	case KeyNegativeLimitSet:
		restored := previousLimitOf(original)
		if _, err := tx.ExecContext(ctx,
			`UPDATE wallets SET negative_limit_cents = $1, updated_at = NOW() WHERE club_id = $2 AND user_id = $3`,
			restored, clubID, userID,
		); err != nil {
			return original.ServiceKey, err
		}
		undoParams["restored_limit"] = strconv.FormatInt(restored, 10)

	case KeyWalletBlocked:
		if err := setBlockedFlag(ctx, tx, clubID, userID, false); err != nil {
			return original.ServiceKey, err
		}

	case KeyWalletUnblocked:
		if err := setBlockedFlag(ctx, tx, clubID, userID, true); err != nil {
			return original.ServiceKey, err
		}
	}

	// The undo itself is audited with amount 0; the balance effect it
	// had is carried in the params.
	if err := insertActivity(ctx, tx, clubID, userID, KeyTransactionUndone, undoParams, 0, TypeSystem, actor); err != nil {
		return original.ServiceKey, err
	}

	if err := tx.Commit(); err != nil {
		return original.ServiceKey, err
	}
	return original.ServiceKey, nil
}

// previousLimitOf reads the limit recorded at mutation time. Activities
// written before the previous_limit param existed fall back to zero.
func previousLimitOf(a Activity) int64 {
	if v, ok := a.Params["previous_limit"]; ok {
		if limit, err := strconv.ParseInt(v, 10, 64); err == nil && limit >= 0 {
			return limit
		}
	}
	return 0
}

func setBlockedFlag(ctx context.Context, tx *sqlx.Tx, clubID string, userID int, blocked bool) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE wallets SET is_blocked = $1, updated_at = NOW() WHERE club_id = $2 AND user_id = $3`,
		blocked, clubID, userID,
	)
	return err
}
