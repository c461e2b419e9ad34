package settings

import "context"

type Repository interface {
	Fetch(ctx context.Context, clubID string) (*Settings, error)
	Update(ctx context.Context, clubID string, req UpdateRequest) (*Settings, error)
}
