package reservation

import "time"

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is read-only to the wallet core: entries are consumed by
// the transaction history aggregation and never mutated here.
type Reservation struct {
	ID              int               `db:"id" json:"id"`
	ClubID          string            `db:"club_id" json:"club_id"`
	UserID          int               `db:"user_id" json:"user_id"`
	CourtID         *int              `db:"court_id" json:"court_id,omitempty"`
	AmountPaidCents int64             `db:"amount_paid_cents" json:"amount_paid_cents"`
	Status          ReservationStatus `db:"status" json:"status"`
	IsGift          bool              `db:"is_gift" json:"is_gift"`
	GiftedByUserID  *int              `db:"gifted_by_user_id" json:"gifted_by_user_id,omitempty"`
	GiftMessage     string            `db:"gift_message" json:"gift_message,omitempty"`
	StartsAt        time.Time         `db:"starts_at" json:"starts_at"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
}
