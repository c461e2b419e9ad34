package user

import (
	"context"
	"database/sql"
	"errors"

	"clubledger/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, clubID, name, email, passwordHash, role string) (*User, error) {
	query := `
		INSERT INTO users (club_id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, club_id, name, email, password_hash, role, photo_url, created_at
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, clubID, name, email, passwordHash, role)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, clubID, email string) (*User, error) {
	query := `
		SELECT id, club_id, name, email, password_hash, role, photo_url, created_at
		FROM users
		WHERE club_id = $1 AND email = $2
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, clubID, email)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, clubID string, id int) (*User, error) {
	query := `
		SELECT id, club_id, name, email, password_hash, role, photo_url, created_at
		FROM users
		WHERE club_id = $1 AND id = $2
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, clubID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *repository) EmailExists(ctx context.Context, clubID, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE club_id = $1 AND email = $2)`
	return db.Exists(ctx, r.db, query, clubID, email)
}

// UsersMap returns the club's user directory keyed by id. Used for
// display denormalization only, never for authorization.
func (r *repository) UsersMap(ctx context.Context, clubID string) (map[int]User, error) {
	query := `
		SELECT id, club_id, name, email, password_hash, role, photo_url, created_at
		FROM users
		WHERE club_id = $1
	`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, clubID); err != nil {
		return nil, err
	}

	m := make(map[int]User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}

	return m, nil
}
