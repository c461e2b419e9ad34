package reservation

import "context"

type Repository interface {
	ListByUser(ctx context.Context, clubID string, userID, limit int) ([]Reservation, error)
}
