package wallet

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type ActivityType string

const (
	TypeCredit ActivityType = "credit"
	TypeDebit  ActivityType = "debit"
	TypeSystem ActivityType = "system"
)

// Machine-readable operation tags. One activity row is appended per
// mutation; rows are never updated or deleted.
const (
	KeyWalletCreated     = "walletCreated"
	KeyBalanceAdded      = "balanceAdded"
	KeyNegativeLimitSet  = "negativeLimitSet"
	KeyWalletBlocked     = "walletBlocked"
	KeyWalletUnblocked   = "walletUnblocked"
	KeyWalletReset       = "walletReset"
	KeyTransferSent      = "transferSent"
	KeyTransferReceived  = "transferReceived"
	KeyTransactionUndone = "transactionUndone"
)

var serviceLabels = map[string]string{
	KeyWalletCreated:     "Wallet created",
	KeyBalanceAdded:      "Balance adjustment",
	KeyNegativeLimitSet:  "Credit limit updated",
	KeyWalletBlocked:     "Wallet blocked",
	KeyWalletUnblocked:   "Wallet unblocked",
	KeyWalletReset:       "Wallet reset",
	KeyTransferSent:      "Transfer sent",
	KeyTransferReceived:  "Transfer received",
	KeyTransactionUndone: "Transaction undone",
}

func ServiceLabel(serviceKey string) string {
	if label, ok := serviceLabels[serviceKey]; ok {
		return label
	}
	return serviceKey
}

type Wallet struct {
	ClubID             string    `db:"club_id" json:"club_id"`
	UserID             int       `db:"user_id" json:"user_id"`
	UserName           string    `db:"user_name" json:"user_name,omitempty"`
	PhotoURL           string    `db:"photo_url" json:"photo_url,omitempty"`
	BalanceCents       int64     `db:"balance_cents" json:"balance_cents"`
	NegativeLimitCents int64     `db:"negative_limit_cents" json:"negative_limit_cents"`
	IsBlocked          bool      `db:"is_blocked" json:"is_blocked"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// AvailableCents is how much the wallet can still spend: balance plus
// the configured credit limit.
func (w *Wallet) AvailableCents() int64 {
	return w.BalanceCents + w.NegativeLimitCents
}

// Params carries key-value display context on an activity, stored as JSONB.
type Params map[string]string

func (p Params) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

func (p *Params) Scan(src interface{}) error {
	if src == nil {
		*p = Params{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("wallet: unsupported params source")
	}
}

type Activity struct {
	ID          int64        `db:"id" json:"id"`
	ClubID      string       `db:"club_id" json:"club_id"`
	UserID      int          `db:"user_id" json:"user_id"`
	Service     string       `db:"service" json:"service"`
	ServiceKey  string       `db:"service_key" json:"service_key"`
	Params      Params       `db:"params" json:"params"`
	AmountCents int64        `db:"amount_cents" json:"amount_cents"`
	Type        ActivityType `db:"type" json:"type"`
	Status      string       `db:"status" json:"status"`
	InitiatedBy string       `db:"initiated_by" json:"initiated_by"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}

type Transfer struct {
	ID          int64     `db:"id" json:"id"`
	ClubID      string    `db:"club_id" json:"club_id"`
	FromUserID  int       `db:"from_user_id" json:"from_user_id"`
	ToUserID    int       `db:"to_user_id" json:"to_user_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Status      string    `db:"status" json:"status"`
	InitiatedBy string    `db:"initiated_by" json:"initiated_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TransferRecord is a transfer joined with the counterparties' display
// names for the ledger view.
type TransferRecord struct {
	Transfer
	FromUserName string `db:"from_user_name" json:"from_user_name"`
	ToUserName   string `db:"to_user_name" json:"to_user_name"`
}

type WalletStats struct {
	TotalWallets            int   `db:"total_wallets" json:"total_wallets"`
	ActiveWallets           int   `db:"active_wallets" json:"active_wallets"`
	BlockedWallets          int   `db:"blocked_wallets" json:"blocked_wallets"`
	TotalBalanceCents       int64 `db:"total_balance_cents" json:"total_balance_cents"`
	TotalNegativeLimitCents int64 `db:"total_negative_limit_cents" json:"total_negative_limit_cents"`
}

type EntryKind string

const (
	EntryActivity    EntryKind = "activity"
	EntryReservation EntryKind = "reservation"
	EntryTransfer    EntryKind = "transfer"
)

// LedgerEntry is the normalized view-model the history aggregation
// produces. It is ephemeral: recomputed on every fetch, never persisted.
type LedgerEntry struct {
	ID          string    `json:"id"`
	Kind        EntryKind `json:"kind"`
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Details     string    `json:"details,omitempty"`
	Status      string    `json:"status"`
	IsUndoable  bool      `json:"is_undoable"`

	// Set for activity entries only; the undo path dispatches on these.
	ServiceKey string `json:"service_key,omitempty"`
	ActivityID int64  `json:"activity_id,omitempty"`
	Params     Params `json:"params,omitempty"`
}

// Request payloads for the admin endpoints.

type CreateWalletRequest struct {
	UserID              int   `json:"user_id" binding:"required"`
	InitialBalanceCents int64 `json:"initial_balance_cents"`
}

type AddBalanceRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required"`
}

type SetLimitRequest struct {
	LimitCents *int64 `json:"limit_cents" binding:"required"`
}

type BlockRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

type TransferRequest struct {
	FromUserID  int   `json:"from_user_id" binding:"required"`
	ToUserID    int   `json:"to_user_id" binding:"required"`
	AmountCents int64 `json:"amount_cents" binding:"required,gt=0"`
}

type UndoRequest struct {
	ActivityID int64 `json:"activity_id" binding:"required"`
}

type WalletListResponse struct {
	Wallets []Wallet     `json:"wallets"`
	Stats   *WalletStats `json:"stats"`
}
