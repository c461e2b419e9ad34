package court

import "context"

type Repository interface {
	CreateCourt(ctx context.Context, clubID, name string) (*Court, error)
	GetAllCourts(ctx context.Context, clubID string) ([]Court, error)
	CourtsMap(ctx context.Context, clubID string) (map[int]Court, error)
}
