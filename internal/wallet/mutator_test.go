package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMutatorMock(t *testing.T) (*Mutator, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	mutator := NewMutator(sqlxDB, nil)

	closer := func() { sqlxDB.Close() }
	return mutator, mock, closer
}

const lockWalletPattern = `SELECT club_id, user_id, balance_cents, negative_limit_cents, is_blocked, created_at, updated_at\s+FROM wallets\s+WHERE club_id = \$1 AND user_id = \$2\s+FOR UPDATE`

func expectLockedWallet(mock sqlmock.Sqlmock, clubID string, userID int, balance, limit int64, blocked bool) {
	now := time.Now()
	mock.ExpectQuery(lockWalletPattern).
		WithArgs(clubID, userID).
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow(clubID, userID, balance, limit, blocked, now, now))
}

const updateBalancePattern = `UPDATE wallets SET balance_cents = \$1, updated_at = NOW\(\) WHERE club_id = \$2 AND user_id = \$3`

func TestAddBalanceCredit(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	mock.ExpectBegin()
	expectLockedWallet(mock, "padel-club", 7, 1000, 0, false)
	mock.ExpectExec(updateBalancePattern).
		WithArgs(int64(1500), "padel-club", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO wallet_activities`).
		WithArgs("padel-club", 7, "Balance adjustment", KeyBalanceAdded, sqlmock.AnyArg(), int64(500), "credit", "admin@club").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w, err := mutator.AddBalance(context.Background(), "padel-club", 7, 500, "admin@club")
	require.NoError(t, err)
	require.Equal(t, int64(1500), w.BalanceCents)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A negative adjustment is an admin override: it goes through even when
// it pushes the balance below the credit limit.
func TestAddBalanceDebitBelowLimit(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	mock.ExpectBegin()
	expectLockedWallet(mock, "padel-club", 7, 100, 0, false)
	mock.ExpectExec(updateBalancePattern).
		WithArgs(int64(-900), "padel-club", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO wallet_activities`).
		WithArgs("padel-club", 7, "Balance adjustment", KeyBalanceAdded, sqlmock.AnyArg(), int64(-1000), "debit", "admin@club").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w, err := mutator.AddBalance(context.Background(), "padel-club", 7, -1000, "admin@club")
	require.NoError(t, err)
	require.Equal(t, int64(-900), w.BalanceCents)
}

func TestAddBalanceZeroAmount(t *testing.T) {
	mutator, _, close := setupMutatorMock(t)
	defer close()

	_, err := mutator.AddBalance(context.Background(), "padel-club", 7, 0, "admin@club")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAddBalanceWalletNotFound(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockWalletPattern).
		WithArgs("padel-club", 99).
		WillReturnRows(sqlmock.NewRows(walletColumns()))
	mock.ExpectRollback()

	_, err := mutator.AddBalance(context.Background(), "padel-club", 99, 500, "admin@club")
	require.ErrorIs(t, err, ErrWalletNotFound)
}

func TestSetNegativeLimit(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	mock.ExpectBegin()
	expectLockedWallet(mock, "padel-club", 7, 1000, 500, false)
	mock.ExpectExec(`UPDATE wallets SET negative_limit_cents = \$1, updated_at = NOW\(\) WHERE club_id = \$2 AND user_id = \$3`).
		WithArgs(int64(2000), "padel-club", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO wallet_activities`).
		WithArgs("padel-club", 7, "Credit limit updated", KeyNegativeLimitSet, sqlmock.AnyArg(), int64(0), "system", "admin@club").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w, err := mutator.SetNegativeLimit(context.Background(), "padel-club", 7, 2000, "admin@club")
	require.NoError(t, err)
	require.Equal(t, int64(2000), w.NegativeLimitCents)
}

func TestSetNegativeLimitRejectsNegative(t *testing.T) {
	mutator, _, close := setupMutatorMock(t)
	defer close()

	_, err := mutator.SetNegativeLimit(context.Background(), "padel-club", 7, -1, "admin@club")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSetBlocked(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE wallets SET is_blocked = \$1, updated_at = NOW\(\) WHERE club_id = \$2 AND user_id = \$3`).
		WithArgs(true, "padel-club", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO wallet_activities`).
		WithArgs("padel-club", 7, "Wallet blocked", KeyWalletBlocked, sqlmock.AnyArg(), int64(0), "system", "admin@club").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := mutator.SetBlocked(context.Background(), "padel-club", 7, true, "admin@club")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Reset is idempotent: running it twice leaves the wallet at zero and
// records one walletReset activity per run.
func TestResetWalletTwice(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE wallets SET balance_cents = 0, negative_limit_cents = 0, updated_at = NOW\(\) WHERE club_id = \$1 AND user_id = \$2`).
			WithArgs("padel-club", 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO wallet_activities`).
			WithArgs("padel-club", 7, "Wallet reset", KeyWalletReset, sqlmock.AnyArg(), int64(0), "system", "admin@club").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
	}

	require.NoError(t, mutator.ResetWallet(context.Background(), "padel-club", 7, "admin@club"))
	require.NoError(t, mutator.ResetWallet(context.Background(), "padel-club", 7, "admin@club"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// The debit and the credit of a transfer are exact mirrors: what leaves
// the sender arrives at the receiver, nothing is created or destroyed.
func TestAdminTransferConservation(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	now := time.Now()
	mock.ExpectBegin()
	expectLockedWallet(mock, "padel-club", 3, 2000, 0, false)
	expectLockedWallet(mock, "padel-club", 8, 100, 0, false)
	mock.ExpectExec(updateBalancePattern).
		WithArgs(int64(1250), "padel-club", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateBalancePattern).
		WithArgs(int64(850), "padel-club", 8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO wallet_activities`).
		WithArgs("padel-club", 3, "Transfer sent", KeyTransferSent, sqlmock.AnyArg(), int64(-750), "debit", "admin@club").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO wallet_activities`).
		WithArgs("padel-club", 8, "Transfer received", KeyTransferReceived, sqlmock.AnyArg(), int64(750), "credit", "admin@club").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(`INSERT INTO transfers \(club_id, from_user_id, to_user_id, amount_cents, status, initiated_by\)\s+VALUES \(\$1, \$2, \$3, \$4, 'completed', \$5\)\s+RETURNING`).
		WithArgs("padel-club", 3, 8, int64(750), "admin@club").
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "from_user_id", "to_user_id", "amount_cents", "status", "initiated_by", "created_at"}).
			AddRow(42, "padel-club", 3, 8, 750, "completed", "admin@club", now))
	mock.ExpectCommit()

	transfer, err := mutator.AdminTransfer(context.Background(), "padel-club", 3, 8, 750, "admin@club")
	require.NoError(t, err)
	require.Equal(t, int64(750), transfer.AmountCents)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A transfer that lands the sender exactly at -limit is allowed; one
// cent more is rejected.
func TestAdminTransferCreditLimitBoundary(t *testing.T) {
	t.Run("exactly at limit", func(t *testing.T) {
		mutator, mock, close := setupMutatorMock(t)
		defer close()

		now := time.Now()
		mock.ExpectBegin()
		expectLockedWallet(mock, "padel-club", 3, 0, 1000, false)
		expectLockedWallet(mock, "padel-club", 8, 0, 0, false)
		mock.ExpectExec(updateBalancePattern).
			WithArgs(int64(-1000), "padel-club", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(updateBalancePattern).
			WithArgs(int64(1000), "padel-club", 8).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO wallet_activities`).
			WithArgs("padel-club", 3, "Transfer sent", KeyTransferSent, sqlmock.AnyArg(), int64(-1000), "debit", "admin@club").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO wallet_activities`).
			WithArgs("padel-club", 8, "Transfer received", KeyTransferReceived, sqlmock.AnyArg(), int64(1000), "credit", "admin@club").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectQuery(`INSERT INTO transfers`).
			WithArgs("padel-club", 3, 8, int64(1000), "admin@club").
			WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "from_user_id", "to_user_id", "amount_cents", "status", "initiated_by", "created_at"}).
				AddRow(43, "padel-club", 3, 8, 1000, "completed", "admin@club", now))
		mock.ExpectCommit()

		_, err := mutator.AdminTransfer(context.Background(), "padel-club", 3, 8, 1000, "admin@club")
		require.NoError(t, err)
	})

	t.Run("one cent over", func(t *testing.T) {
		mutator, mock, close := setupMutatorMock(t)
		defer close()

		mock.ExpectBegin()
		expectLockedWallet(mock, "padel-club", 3, 0, 1000, false)
		expectLockedWallet(mock, "padel-club", 8, 0, 0, false)
		mock.ExpectRollback()

		_, err := mutator.AdminTransfer(context.Background(), "padel-club", 3, 8, 1001, "admin@club")
		require.ErrorIs(t, err, ErrInsufficientBalance)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// A blocked wallet on either side aborts the transfer before any
// balance is touched.
func TestAdminTransferBlockedWallet(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	mock.ExpectBegin()
	expectLockedWallet(mock, "padel-club", 3, 5000, 0, false)
	expectLockedWallet(mock, "padel-club", 8, 0, 0, true)
	mock.ExpectRollback()

	_, err := mutator.AdminTransfer(context.Background(), "padel-club", 3, 8, 100, "admin@club")
	require.ErrorIs(t, err, ErrWalletBlocked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminTransferSelf(t *testing.T) {
	mutator, _, close := setupMutatorMock(t)
	defer close()

	_, err := mutator.AdminTransfer(context.Background(), "padel-club", 3, 3, 100, "admin@club")
	require.ErrorIs(t, err, ErrSelfTransfer)
}

func TestAdminTransferNonPositiveAmount(t *testing.T) {
	mutator, _, close := setupMutatorMock(t)
	defer close()

	_, err := mutator.AdminTransfer(context.Background(), "padel-club", 3, 8, 0, "admin@club")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = mutator.AdminTransfer(context.Background(), "padel-club", 3, 8, -50, "admin@club")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

// Locks are taken in ascending user id order regardless of transfer
// direction, so the higher id is still locked second when it sends.
func TestAdminTransferLockOrdering(t *testing.T) {
	mutator, mock, close := setupMutatorMock(t)
	defer close()

	now := time.Now()
	mock.ExpectBegin()
	expectLockedWallet(mock, "padel-club", 3, 0, 0, false)
	expectLockedWallet(mock, "padel-club", 8, 500, 0, false)
	mock.ExpectExec(updateBalancePattern).
		WithArgs(int64(200), "padel-club", 8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateBalancePattern).
		WithArgs(int64(300), "padel-club", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO wallet_activities`).
		WithArgs("padel-club", 8, "Transfer sent", KeyTransferSent, sqlmock.AnyArg(), int64(-300), "debit", "admin@club").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO wallet_activities`).
		WithArgs("padel-club", 3, "Transfer received", KeyTransferReceived, sqlmock.AnyArg(), int64(300), "credit", "admin@club").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(`INSERT INTO transfers`).
		WithArgs("padel-club", 8, 3, int64(300), "admin@club").
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "from_user_id", "to_user_id", "amount_cents", "status", "initiated_by", "created_at"}).
			AddRow(44, "padel-club", 8, 3, 300, "completed", "admin@club", now))
	mock.ExpectCommit()

	_, err := mutator.AdminTransfer(context.Background(), "padel-club", 8, 3, 300, "admin@club")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
