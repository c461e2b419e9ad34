package settings

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupSettingsMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func settingsColumns() []string {
	return []string{"club_id", "transfer_access", "add_balance_access", "pay_access", "updated_at"}
}

const insertDefaultsPattern = `INSERT INTO club_settings \(club_id\) VALUES \(\$1\) ON CONFLICT \(club_id\) DO NOTHING`
const selectPattern = `SELECT club_id, transfer_access, add_balance_access, pay_access, updated_at\s+FROM club_settings\s+WHERE club_id = \$1`

// First read creates the default row: everything enabled, nothing
// disabled.
func TestFetchCreatesDefaults(t *testing.T) {
	repo, mock, close := setupSettingsMock(t)
	defer close()

	mock.ExpectExec(insertDefaultsPattern).
		WithArgs("padel-club").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(selectPattern).
		WithArgs("padel-club").
		WillReturnRows(sqlmock.NewRows(settingsColumns()).
			AddRow("padel-club", true, true, true, time.Now()))

	s, err := repo.Fetch(context.Background(), "padel-club")
	require.NoError(t, err)
	require.False(t, s.TransferDisabled)
	require.False(t, s.AddBalanceDisabled)
	require.False(t, s.PayDisabled)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Storage keeps "access granted" polarity; the API exposes "disabled".
func TestFetchInvertsPolarity(t *testing.T) {
	repo, mock, close := setupSettingsMock(t)
	defer close()

	mock.ExpectExec(insertDefaultsPattern).
		WithArgs("padel-club").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(selectPattern).
		WithArgs("padel-club").
		WillReturnRows(sqlmock.NewRows(settingsColumns()).
			AddRow("padel-club", false, true, false, time.Now()))

	s, err := repo.Fetch(context.Background(), "padel-club")
	require.NoError(t, err)
	require.True(t, s.TransferDisabled)
	require.False(t, s.AddBalanceDisabled)
	require.True(t, s.PayDisabled)
}

func TestUpdateTouchesOnlyProvidedFlags(t *testing.T) {
	repo, mock, close := setupSettingsMock(t)
	defer close()

	disabled := true
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(insertDefaultsPattern).
		WithArgs("padel-club").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(selectPattern + `\s+FOR UPDATE`).
		WithArgs("padel-club").
		WillReturnRows(sqlmock.NewRows(settingsColumns()).
			AddRow("padel-club", true, false, true, now))
	mock.ExpectQuery(`UPDATE club_settings\s+SET transfer_access = \$1, add_balance_access = \$2, pay_access = \$3, updated_at = NOW\(\)\s+WHERE club_id = \$4\s+RETURNING`).
		WithArgs(false, false, true, "padel-club").
		WillReturnRows(sqlmock.NewRows(settingsColumns()).
			AddRow("padel-club", false, false, true, now))
	mock.ExpectCommit()

	s, err := repo.Update(context.Background(), "padel-club", UpdateRequest{TransferDisabled: &disabled})
	require.NoError(t, err)
	require.True(t, s.TransferDisabled)
	// add_balance_access was already off and stays off.
	require.True(t, s.AddBalanceDisabled)
	require.False(t, s.PayDisabled)
	require.NoError(t, mock.ExpectationsWereMet())
}
