package wallet

import (
	"context"
	"database/sql"
	"errors"

	"clubledger/internal/metrics"
	"clubledger/internal/user"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db       *sqlx.DB
	notifier ChangeNotifier
}

func NewRepository(db *sqlx.DB, notifier ChangeNotifier) Repository {
	return &repository{db: db, notifier: notifier}
}

func (r *repository) notify(ctx context.Context, clubID string) {
	if r.notifier != nil {
		r.notifier.NotifyWalletsChanged(ctx, clubID)
	}
}

// ListWallets joins the user directory so callers get display names
// without denormalizing them onto wallet rows.
func (r *repository) ListWallets(ctx context.Context, clubID string) ([]Wallet, error) {
	query := `
		SELECT w.club_id, w.user_id, u.name AS user_name, u.photo_url,
		       w.balance_cents, w.negative_limit_cents, w.is_blocked,
		       w.created_at, w.updated_at
		FROM wallets w
		JOIN users u ON u.id = w.user_id AND u.club_id = w.club_id
		WHERE w.club_id = $1
		ORDER BY w.created_at DESC
	`

	wallets := []Wallet{}
	if err := r.db.SelectContext(ctx, &wallets, query, clubID); err != nil {
		return nil, err
	}

	return wallets, nil
}

func (r *repository) GetWallet(ctx context.Context, clubID string, userID int) (*Wallet, error) {
	query := `
		SELECT w.club_id, w.user_id, u.name AS user_name, u.photo_url,
		       w.balance_cents, w.negative_limit_cents, w.is_blocked,
		       w.created_at, w.updated_at
		FROM wallets w
		JOIN users u ON u.id = w.user_id AND u.club_id = w.club_id
		WHERE w.club_id = $1 AND w.user_id = $2
	`

	var w Wallet
	if err := r.db.GetContext(ctx, &w, query, clubID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	return &w, nil
}

// Stats recomputes the aggregates from the full current snapshot on
// every call; volumes per club are small enough that incremental
// accounting is not worth carrying.
func (r *repository) Stats(ctx context.Context, clubID string) (*WalletStats, error) {
	query := `
		SELECT
		  COUNT(*)                                       AS total_wallets,
		  COUNT(*) FILTER (WHERE NOT is_blocked)         AS active_wallets,
		  COUNT(*) FILTER (WHERE is_blocked)             AS blocked_wallets,
		  COALESCE(SUM(balance_cents), 0)                AS total_balance_cents,
		  COALESCE(SUM(negative_limit_cents), 0)         AS total_negative_limit_cents
		FROM wallets
		WHERE club_id = $1
	`

	var stats WalletStats
	if err := r.db.GetContext(ctx, &stats, query, clubID); err != nil {
		return nil, err
	}

	metrics.WalletsTotal.WithLabelValues(clubID).Set(float64(stats.TotalWallets))
	return &stats, nil
}

// CreateWallet upserts: creating a wallet for a user who already has one
// replaces the whole document, so any previous credit limit or block flag
// is reset along with the balance. Wallets are only ever created by an
// explicit admin action.
func (r *repository) CreateWallet(ctx context.Context, clubID string, userID int, initialBalanceCents int64, actor string) (*Wallet, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO wallets (club_id, user_id, balance_cents, negative_limit_cents, is_blocked)
		VALUES ($1, $2, $3, 0, FALSE)
		ON CONFLICT (club_id, user_id)
		DO UPDATE SET balance_cents = EXCLUDED.balance_cents,
			negative_limit_cents = EXCLUDED.negative_limit_cents,
			is_blocked = EXCLUDED.is_blocked,
			updated_at = NOW()
		RETURNING club_id, user_id, balance_cents, negative_limit_cents, is_blocked, created_at, updated_at
	`

	var w Wallet
	if err := tx.QueryRowxContext(ctx, query, clubID, userID, initialBalanceCents).StructScan(&w); err != nil {
		return nil, err
	}

	activityType := TypeSystem
	if initialBalanceCents > 0 {
		activityType = TypeCredit
	}
	if err := insertActivity(ctx, tx, clubID, userID, KeyWalletCreated, Params{}, initialBalanceCents, activityType, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	r.notify(ctx, clubID)
	return &w, nil
}

// DeleteWallet removes the wallet and its activity history in one
// transaction so no orphaned audit rows are left behind.
func (r *repository) DeleteWallet(ctx context.Context, clubID string, userID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM wallet_activities WHERE club_id = $1 AND user_id = $2`,
		clubID, userID,
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM wallets WHERE club_id = $1 AND user_id = $2`,
		clubID, userID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWalletNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.notify(ctx, clubID)
	return nil
}

// UsersWithoutWallet restricts wallet-creation candidates to club
// members who do not have one yet.
func (r *repository) UsersWithoutWallet(ctx context.Context, clubID string) ([]user.User, error) {
	query := `
		SELECT u.id, u.club_id, u.name, u.email, u.password_hash, u.role, u.photo_url, u.created_at
		FROM users u
		LEFT JOIN wallets w ON w.club_id = u.club_id AND w.user_id = u.id
		WHERE u.club_id = $1 AND w.user_id IS NULL
		ORDER BY u.name ASC
	`

	users := []user.User{}
	if err := r.db.SelectContext(ctx, &users, query, clubID); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *repository) ActivitiesByUser(ctx context.Context, clubID string, userID, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, club_id, user_id, service, service_key, params,
		       amount_cents, type, status, initiated_by, created_at
		FROM wallet_activities
		WHERE club_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	activities := []Activity{}
	if err := r.db.SelectContext(ctx, &activities, query, clubID, userID, limit); err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *repository) GetActivity(ctx context.Context, clubID string, userID int, activityID int64) (*Activity, error) {
	query := `
		SELECT id, club_id, user_id, service, service_key, params,
		       amount_cents, type, status, initiated_by, created_at
		FROM wallet_activities
		WHERE club_id = $1 AND user_id = $2 AND id = $3
	`

	var a Activity
	if err := r.db.GetContext(ctx, &a, query, clubID, userID, activityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	return &a, nil
}

const transferRecordSelect = `
		SELECT t.id, t.club_id, t.from_user_id, t.to_user_id, t.amount_cents,
		       t.status, t.initiated_by, t.created_at,
		       fu.name AS from_user_name, tu.name AS to_user_name
		FROM transfers t
		JOIN users fu ON fu.id = t.from_user_id AND fu.club_id = t.club_id
		JOIN users tu ON tu.id = t.to_user_id AND tu.club_id = t.club_id
`

func (r *repository) TransfersFrom(ctx context.Context, clubID string, userID, limit int) ([]TransferRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := transferRecordSelect + `
		WHERE t.club_id = $1 AND t.from_user_id = $2
		ORDER BY t.created_at DESC
		LIMIT $3
	`

	transfers := []TransferRecord{}
	if err := r.db.SelectContext(ctx, &transfers, query, clubID, userID, limit); err != nil {
		return nil, err
	}

	return transfers, nil
}

func (r *repository) TransfersTo(ctx context.Context, clubID string, userID, limit int) ([]TransferRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := transferRecordSelect + `
		WHERE t.club_id = $1 AND t.to_user_id = $2
		ORDER BY t.created_at DESC
		LIMIT $3
	`

	transfers := []TransferRecord{}
	if err := r.db.SelectContext(ctx, &transfers, query, clubID, userID, limit); err != nil {
		return nil, err
	}

	return transfers, nil
}
