package wallet

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"clubledger/internal/metrics"

	"github.com/jmoiron/sqlx"
)

// Mutator is the only write path for wallet balances. Every operation
// runs a single database transaction: read the wallet row under a lock,
// validate, write the new state and append one activity, all-or-nothing.
// Concurrent mutations of the same wallet serialize on the row lock.
type Mutator struct {
	db       *sqlx.DB
	notifier ChangeNotifier
}

func NewMutator(db *sqlx.DB, notifier ChangeNotifier) *Mutator {
	return &Mutator{db: db, notifier: notifier}
}

func (m *Mutator) notify(ctx context.Context, clubID string) {
	if m.notifier != nil {
		m.notifier.NotifyWalletsChanged(ctx, clubID)
	}
}

const lockWalletQuery = `
		SELECT club_id, user_id, balance_cents, negative_limit_cents, is_blocked, created_at, updated_at
		FROM wallets
		WHERE club_id = $1 AND user_id = $2
		FOR UPDATE
`

func lockWallet(ctx context.Context, tx *sqlx.Tx, clubID string, userID int) (*Wallet, error) {
	var w Wallet
	if err := tx.QueryRowxContext(ctx, lockWalletQuery, clubID, userID).StructScan(&w); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func updateBalance(ctx context.Context, tx *sqlx.Tx, clubID string, userID int, balanceCents int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE wallets SET balance_cents = $1, updated_at = NOW() WHERE club_id = $2 AND user_id = $3`,
		balanceCents, clubID, userID,
	)
	return err
}

// AddBalance applies a signed delta to the wallet balance. The delta is
// applied unconditionally: an admin debit may push the balance below the
// configured credit limit. Only transfers enforce the limit.
func (m *Mutator) AddBalance(ctx context.Context, clubID string, userID int, amountCents int64, actor string) (*Wallet, error) {
	if amountCents == 0 {
		return nil, ErrInvalidAmount
	}

	w, err := m.addBalanceTx(ctx, clubID, userID, amountCents, actor)
	if err != nil {
		metrics.RecordMutation(KeyBalanceAdded, "error")
		return nil, err
	}

	metrics.RecordMutation(KeyBalanceAdded, "success")
	metrics.WalletBalance.WithLabelValues(clubID, strconv.Itoa(userID)).Set(float64(w.BalanceCents))
	m.notify(ctx, clubID)
	return w, nil
}

func (m *Mutator) addBalanceTx(ctx context.Context, clubID string, userID int, amountCents int64, actor string) (*Wallet, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w, err := lockWallet(ctx, tx, clubID, userID)
	if err != nil {
		return nil, err
	}

	w.BalanceCents += amountCents
	if err := updateBalance(ctx, tx, clubID, userID, w.BalanceCents); err != nil {
		return nil, err
	}

	if err := insertActivity(ctx, tx, clubID, userID, KeyBalanceAdded, Params{}, amountCents, amountType(amountCents), actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

// SetNegativeLimit overwrites the wallet's credit limit (it is not
// additive). The previous limit is recorded on the activity so an undo
// can restore it exactly.
func (m *Mutator) SetNegativeLimit(ctx context.Context, clubID string, userID int, limitCents int64, actor string) (*Wallet, error) {
	if limitCents < 0 {
		return nil, ErrInvalidAmount
	}

	w, err := m.setNegativeLimitTx(ctx, clubID, userID, limitCents, actor)
	if err != nil {
		metrics.RecordMutation(KeyNegativeLimitSet, "error")
		return nil, err
	}

	metrics.RecordMutation(KeyNegativeLimitSet, "success")
	m.notify(ctx, clubID)
	return w, nil
}

func (m *Mutator) setNegativeLimitTx(ctx context.Context, clubID string, userID int, limitCents int64, actor string) (*Wallet, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w, err := lockWallet(ctx, tx, clubID, userID)
	if err != nil {
		return nil, err
	}

	previousLimit := w.NegativeLimitCents
	w.NegativeLimitCents = limitCents

	if _, err := tx.ExecContext(ctx,
		`UPDATE wallets SET negative_limit_cents = $1, updated_at = NOW() WHERE club_id = $2 AND user_id = $3`,
		limitCents, clubID, userID,
	); err != nil {
		return nil, err
	}

	params := Params{
		"previous_limit": strconv.FormatInt(previousLimit, 10),
		"new_limit":      strconv.FormatInt(limitCents, 10),
	}
	if err := insertActivity(ctx, tx, clubID, userID, KeyNegativeLimitSet, params, 0, TypeSystem, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

// SetBlocked is an unconditional flag write: it does not depend on the
// previous value, so last-write-wins under races is acceptable.
func (m *Mutator) SetBlocked(ctx context.Context, clubID string, userID int, blocked bool, actor string) error {
	serviceKey := KeyWalletUnblocked
	if blocked {
		serviceKey = KeyWalletBlocked
	}

	if err := m.setBlockedTx(ctx, clubID, userID, blocked, serviceKey, actor); err != nil {
		metrics.RecordMutation(serviceKey, "error")
		return err
	}

	metrics.RecordMutation(serviceKey, "success")
	m.notify(ctx, clubID)
	return nil
}

func (m *Mutator) setBlockedTx(ctx context.Context, clubID string, userID int, blocked bool, serviceKey, actor string) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE wallets SET is_blocked = $1, updated_at = NOW() WHERE club_id = $2 AND user_id = $3`,
		blocked, clubID, userID,
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

	if err := insertActivity(ctx, tx, clubID, userID, serviceKey, Params{}, 0, TypeSystem, actor); err != nil {
		return err
	}

	return tx.Commit()
}

// ResetWallet zeroes both the balance and the credit limit. The reset is
// recorded even when the wallet is already at zero.
func (m *Mutator) ResetWallet(ctx context.Context, clubID string, userID int, actor string) error {
	if err := m.resetWalletTx(ctx, clubID, userID, actor); err != nil {
		metrics.RecordMutation(KeyWalletReset, "error")
		return err
	}

	metrics.RecordMutation(KeyWalletReset, "success")
	metrics.WalletBalance.WithLabelValues(clubID, strconv.Itoa(userID)).Set(0)
	m.notify(ctx, clubID)
	return nil
}

func (m *Mutator) resetWalletTx(ctx context.Context, clubID string, userID int, actor string) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE wallets SET balance_cents = 0, negative_limit_cents = 0, updated_at = NOW() WHERE club_id = $1 AND user_id = $2`,
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

	if err := insertActivity(ctx, tx, clubID, userID, KeyWalletReset, Params{}, 0, TypeSystem, actor); err != nil {
		return err
	}

	return tx.Commit()
}

// AdminTransfer moves amountCents between two wallets atomically: debit,
// credit, two activities and one transfer record commit together or not
// at all. The sender may go negative down to its credit limit.
func (m *Mutator) AdminTransfer(ctx context.Context, clubID string, fromUserID, toUserID int, amountCents int64, actor string) (*Transfer, error) {
	if amountCents <= 0 {
		metrics.RecordTransfer("invalid_amount", 0)
		return nil, ErrInvalidAmount
	}
	if fromUserID == toUserID {
		metrics.RecordTransfer("self_transfer", 0)
		return nil, ErrSelfTransfer
	}

	transfer, err := m.adminTransferTx(ctx, clubID, fromUserID, toUserID, amountCents, actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrWalletNotFound):
			metrics.RecordTransfer("wallet_not_found", 0)
		case errors.Is(err, ErrWalletBlocked):
			metrics.RecordTransfer("wallet_blocked", 0)
		case errors.Is(err, ErrInsufficientBalance):
			metrics.RecordTransfer("insufficient_balance", 0)
		default:
			metrics.RecordTransfer("error", 0)
		}
		return nil, err
	}

	metrics.RecordTransfer("success", amountCents)
	m.notify(ctx, clubID)
	return transfer, nil
}

func (m *Mutator) adminTransferTx(ctx context.Context, clubID string, fromUserID, toUserID int, amountCents int64, actor string) (*Transfer, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock both rows in ascending user id order so two opposite
	// transfers cannot deadlock each other.
	firstID, secondID := fromUserID, toUserID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := lockWallet(ctx, tx, clubID, firstID)
	if err != nil {
		return nil, err
	}
	second, err := lockWallet(ctx, tx, clubID, secondID)
	if err != nil {
		return nil, err
	}

	sender, receiver := first, second
	if sender.UserID != fromUserID {
		sender, receiver = second, first
	}

	if sender.IsBlocked || receiver.IsBlocked {
		return nil, ErrWalletBlocked
	}
	if amountCents > sender.AvailableCents() {
		return nil, ErrInsufficientBalance
	}

	if err := updateBalance(ctx, tx, clubID, sender.UserID, sender.BalanceCents-amountCents); err != nil {
		return nil, err
	}
	if err := updateBalance(ctx, tx, clubID, receiver.UserID, receiver.BalanceCents+amountCents); err != nil {
		return nil, err
	}

	sentParams := Params{"to_user_id": strconv.Itoa(toUserID)}
	if err := insertActivity(ctx, tx, clubID, fromUserID, KeyTransferSent, sentParams, -amountCents, TypeDebit, actor); err != nil {
		return nil, err
	}

	receivedParams := Params{"from_user_id": strconv.Itoa(fromUserID)}
	if err := insertActivity(ctx, tx, clubID, toUserID, KeyTransferReceived, receivedParams, amountCents, TypeCredit, actor); err != nil {
		return nil, err
	}

	var transfer Transfer
	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO transfers (club_id, from_user_id, to_user_id, amount_cents, status, initiated_by)
		 VALUES ($1, $2, $3, $4, 'completed', $5)
		 RETURNING id, club_id, from_user_id, to_user_id, amount_cents, status, initiated_by, created_at`,
		clubID, fromUserID, toUserID, amountCents, actor,
	).StructScan(&transfer); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &transfer, nil
}
