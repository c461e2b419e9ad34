package user

import "context"

type Repository interface {
	Create(ctx context.Context, clubID, name, email, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, clubID, email string) (*User, error)
	FindByID(ctx context.Context, clubID string, id int) (*User, error)
	EmailExists(ctx context.Context, clubID, email string) (bool, error)
	UsersMap(ctx context.Context, clubID string) (map[int]User, error)
}
