package court

import "time"

type Court struct {
	ID        int       `db:"id" json:"id"`
	ClubID    string    `db:"club_id" json:"club_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateCourtRequest struct {
	Name string `json:"name" binding:"required"`
}
