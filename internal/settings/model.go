package settings

import "time"

// Settings is the club-wide feature gate, exposed in "disabled" polarity:
// a true flag means the feature is switched off for the whole club.
// Storage keeps the opposite "access granted" polarity; the repository
// converts at the boundary.
type Settings struct {
	ClubID             string    `json:"club_id"`
	TransferDisabled   bool      `json:"transfer_disabled"`
	AddBalanceDisabled bool      `json:"add_balance_disabled"`
	PayDisabled        bool      `json:"pay_disabled"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// row mirrors the club_settings table.
type row struct {
	ClubID           string    `db:"club_id"`
	TransferAccess   bool      `db:"transfer_access"`
	AddBalanceAccess bool      `db:"add_balance_access"`
	PayAccess        bool      `db:"pay_access"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r row) toSettings() *Settings {
	return &Settings{
		ClubID:             r.ClubID,
		TransferDisabled:   !r.TransferAccess,
		AddBalanceDisabled: !r.AddBalanceAccess,
		PayDisabled:        !r.PayAccess,
		UpdatedAt:          r.UpdatedAt,
	}
}

type UpdateRequest struct {
	TransferDisabled   *bool `json:"transfer_disabled"`
	AddBalanceDisabled *bool `json:"add_balance_disabled"`
	PayDisabled        *bool `json:"pay_disabled"`
}
