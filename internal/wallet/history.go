package wallet

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"clubledger/internal/court"
	"clubledger/internal/reservation"
	"clubledger/internal/user"
)

const (
	historyActivityLimit = 100
	historyStreamLimit   = 50
)

// HistoryService merges four record streams (activities, reservations,
// sent transfers, received transfers) into one normalized ledger view
// for a single wallet. The merged set is re-sorted in memory; with the
// per-stream limits it never exceeds 250 entries, so a k-way merge is
// not worth the complexity.
type HistoryService struct {
	wallets      Repository
	reservations reservation.Repository
	courts       court.Repository
	users        user.Repository
}

func NewHistoryService(wallets Repository, reservations reservation.Repository, courts court.Repository, users user.Repository) *HistoryService {
	return &HistoryService{
		wallets:      wallets,
		reservations: reservations,
		courts:       courts,
		users:        users,
	}
}

func (s *HistoryService) TransactionHistory(ctx context.Context, clubID string, userID int) ([]LedgerEntry, error) {
	activities, err := s.wallets.ActivitiesByUser(ctx, clubID, userID, historyActivityLimit)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservations.ListByUser(ctx, clubID, userID, historyStreamLimit)
	if err != nil {
		return nil, err
	}

	sent, err := s.wallets.TransfersFrom(ctx, clubID, userID, historyStreamLimit)
	if err != nil {
		return nil, err
	}

	received, err := s.wallets.TransfersTo(ctx, clubID, userID, historyStreamLimit)
	if err != nil {
		return nil, err
	}

	courtsByID, err := s.courts.CourtsMap(ctx, clubID)
	if err != nil {
		return nil, err
	}

	usersByID, err := s.users.UsersMap(ctx, clubID)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, 0, len(activities)+len(reservations)+len(sent)+len(received))

	for _, a := range activities {
		entries = append(entries, activityEntry(a))
	}
	for _, r := range reservations {
		entries = append(entries, reservationEntry(r, courtsByID, usersByID))
	}
	for _, t := range sent {
		entries = append(entries, transferEntry(t, true))
	}
	for _, t := range received {
		entries = append(entries, transferEntry(t, false))
	}

	// Date descending; ties broken by id so repeated fetches return the
	// same order.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].ID > entries[j].ID
	})

	return entries, nil
}

func activityEntry(a Activity) LedgerEntry {
	return LedgerEntry{
		ID:          "activity:" + strconv.FormatInt(a.ID, 10),
		Kind:        EntryActivity,
		Date:        a.CreatedAt,
		AmountCents: a.AmountCents,
		Description: a.Service,
		Details:     activityDetails(a),
		Status:      a.Status,
		IsUndoable:  undoableKeys[a.ServiceKey],
		ServiceKey:  a.ServiceKey,
		ActivityID:  a.ID,
		Params:      a.Params,
	}
}

func activityDetails(a Activity) string {
	switch a.ServiceKey {
	case KeyNegativeLimitSet:
		return "credit limit set to " + a.Params["new_limit"]
	case KeyTransactionUndone:
		return fmt.Sprintf("undo of activity #%s (%s)", a.Params["undone_activity_id"], a.Params["undone_service_key"])
	default:
		return ""
	}
}

func reservationEntry(r reservation.Reservation, courts map[int]court.Court, users map[int]user.User) LedgerEntry {
	description := "Court reservation"
	if r.CourtID != nil {
		if c, ok := courts[*r.CourtID]; ok {
			description = "Court reservation: " + c.Name
		}
	}

	details := ""
	if r.IsGift {
		giftedBy := "another member"
		if r.GiftedByUserID != nil {
			if u, ok := users[*r.GiftedByUserID]; ok {
				giftedBy = u.Name
			}
		}
		details = "Gifted by " + giftedBy
		if r.GiftMessage != "" {
			details += ": " + r.GiftMessage
		}
	}

	return LedgerEntry{
		ID:          "reservation:" + strconv.Itoa(r.ID),
		Kind:        EntryReservation,
		Date:        r.CreatedAt,
		AmountCents: -r.AmountPaidCents,
		Description: description,
		Details:     details,
		Status:      string(r.Status),
		// Only cancelled reservations surface an undo affordance.
		IsUndoable: r.Status == reservation.StatusCancelled,
	}
}

func transferEntry(t TransferRecord, sent bool) LedgerEntry {
	entry := LedgerEntry{
		ID:     "transfer:" + strconv.FormatInt(t.ID, 10),
		Kind:   EntryTransfer,
		Date:   t.CreatedAt,
		Status: t.Status,
	}

	if sent {
		entry.AmountCents = -t.AmountCents
		entry.Description = "Transfer to " + t.ToUserName
		// Only the sender side is flagged reversible so a transfer can
		// never be compensated twice.
		entry.IsUndoable = true
	} else {
		entry.AmountCents = t.AmountCents
		entry.Description = "Transfer from " + t.FromUserName
		entry.IsUndoable = false
	}

	return entry
}
