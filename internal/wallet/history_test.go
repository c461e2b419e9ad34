package wallet

import (
	"context"
	"testing"
	"time"

	"clubledger/internal/court"
	"clubledger/internal/reservation"
	"clubledger/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWalletRepo struct {
	Repository
	activities []Activity
	sent       []TransferRecord
	received   []TransferRecord
}

func (f *fakeWalletRepo) ActivitiesByUser(ctx context.Context, clubID string, userID, limit int) ([]Activity, error) {
	return f.activities, nil
}

func (f *fakeWalletRepo) TransfersFrom(ctx context.Context, clubID string, userID, limit int) ([]TransferRecord, error) {
	return f.sent, nil
}

func (f *fakeWalletRepo) TransfersTo(ctx context.Context, clubID string, userID, limit int) ([]TransferRecord, error) {
	return f.received, nil
}

type fakeReservationRepo struct {
	reservations []reservation.Reservation
}

func (f *fakeReservationRepo) ListByUser(ctx context.Context, clubID string, userID, limit int) ([]reservation.Reservation, error) {
	return f.reservations, nil
}

type fakeCourtRepo struct {
	court.Repository
	courts map[int]court.Court
}

func (f *fakeCourtRepo) CourtsMap(ctx context.Context, clubID string) (map[int]court.Court, error) {
	return f.courts, nil
}

type fakeUserRepo struct {
	user.Repository
	users map[int]user.User
}

func (f *fakeUserRepo) UsersMap(ctx context.Context, clubID string) (map[int]user.User, error) {
	return f.users, nil
}

func historyFixture() *HistoryService {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	courtID := 2
	gifter := 9

	wallets := &fakeWalletRepo{
		activities: []Activity{
			{ID: 1, ServiceKey: KeyBalanceAdded, Service: "Balance adjustment", AmountCents: 500, Type: TypeCredit, Status: "completed", CreatedAt: base.Add(3 * time.Hour), Params: Params{}},
			{ID: 2, ServiceKey: KeyNegativeLimitSet, Service: "Credit limit updated", AmountCents: 0, Type: TypeSystem, Status: "completed", CreatedAt: base.Add(1 * time.Hour), Params: Params{"previous_limit": "0", "new_limit": "1000"}},
			{ID: 3, ServiceKey: KeyTransferSent, Service: "Transfer sent", AmountCents: -750, Type: TypeDebit, Status: "completed", CreatedAt: base.Add(2 * time.Hour), Params: Params{"to_user_id": "8"}},
		},
		sent: []TransferRecord{
			{Transfer: Transfer{ID: 11, FromUserID: 7, ToUserID: 8, AmountCents: 750, Status: "completed", CreatedAt: base.Add(2 * time.Hour)}, FromUserName: "Ayse", ToUserName: "Mehmet"},
		},
		received: []TransferRecord{
			{Transfer: Transfer{ID: 12, FromUserID: 8, ToUserID: 7, AmountCents: 200, Status: "completed", CreatedAt: base.Add(4 * time.Hour)}, FromUserName: "Mehmet", ToUserName: "Ayse"},
		},
	}

	reservations := &fakeReservationRepo{
		reservations: []reservation.Reservation{
			{ID: 4, CourtID: &courtID, AmountPaidCents: 1200, Status: reservation.StatusCompleted, CreatedAt: base},
			{ID: 5, CourtID: &courtID, AmountPaidCents: 800, Status: reservation.StatusCancelled, IsGift: true, GiftedByUserID: &gifter, GiftMessage: "Happy birthday!", CreatedAt: base.Add(5 * time.Hour)},
		},
	}

	courts := &fakeCourtRepo{courts: map[int]court.Court{2: {ID: 2, Name: "Center Court"}}}
	users := &fakeUserRepo{users: map[int]user.User{
		7: {ID: 7, Name: "Ayse"},
		8: {ID: 8, Name: "Mehmet"},
		9: {ID: 9, Name: "Zeynep"},
	}}

	return NewHistoryService(wallets, reservations, courts, users)
}

func TestTransactionHistoryMergesAndSorts(t *testing.T) {
	svc := historyFixture()

	entries, err := svc.TransactionHistory(context.Background(), "padel-club", 7)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	// Date descending across all four streams.
	for i := 1; i < len(entries); i++ {
		require.False(t, entries[i].Date.After(entries[i-1].Date),
			"entries out of order at %d: %s before %s", i, entries[i-1].ID, entries[i].ID)
	}

	assert.Equal(t, "reservation:5", entries[0].ID)
	assert.Equal(t, "transfer:12", entries[1].ID)
}

// Fetching history twice changes nothing: same entries, same order. The
// view is recomputed, never written back.
func TestTransactionHistoryIdempotent(t *testing.T) {
	svc := historyFixture()

	first, err := svc.TransactionHistory(context.Background(), "padel-club", 7)
	require.NoError(t, err)
	second, err := svc.TransactionHistory(context.Background(), "padel-club", 7)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestTransactionHistoryEntryShapes(t *testing.T) {
	svc := historyFixture()

	entries, err := svc.TransactionHistory(context.Background(), "padel-club", 7)
	require.NoError(t, err)

	byID := map[string]LedgerEntry{}
	for _, e := range entries {
		byID[e.ID] = e
	}

	limitSet := byID["activity:2"]
	assert.Equal(t, EntryActivity, limitSet.Kind)
	assert.Equal(t, "credit limit set to 1000", limitSet.Details)
	assert.True(t, limitSet.IsUndoable)

	added := byID["activity:1"]
	assert.Equal(t, int64(500), added.AmountCents)
	assert.True(t, added.IsUndoable)

	// The activity row for a sent transfer is not undoable; the transfer
	// record carries the flag for the view.
	sentActivity := byID["activity:3"]
	assert.False(t, sentActivity.IsUndoable)

	completed := byID["reservation:4"]
	assert.Equal(t, int64(-1200), completed.AmountCents)
	assert.Equal(t, "Court reservation: Center Court", completed.Description)
	assert.False(t, completed.IsUndoable)

	gifted := byID["reservation:5"]
	assert.Equal(t, "Gifted by Zeynep: Happy birthday!", gifted.Details)
	assert.True(t, gifted.IsUndoable)

	sent := byID["transfer:11"]
	assert.Equal(t, int64(-750), sent.AmountCents)
	assert.Equal(t, "Transfer to Mehmet", sent.Description)
	assert.True(t, sent.IsUndoable)

	received := byID["transfer:12"]
	assert.Equal(t, int64(200), received.AmountCents)
	assert.Equal(t, "Transfer from Mehmet", received.Description)
	assert.False(t, received.IsUndoable)
}
