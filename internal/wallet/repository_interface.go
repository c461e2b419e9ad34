package wallet

import (
	"context"

	"clubledger/internal/user"
)

type Repository interface {
	ListWallets(ctx context.Context, clubID string) ([]Wallet, error)
	GetWallet(ctx context.Context, clubID string, userID int) (*Wallet, error)
	Stats(ctx context.Context, clubID string) (*WalletStats, error)
	CreateWallet(ctx context.Context, clubID string, userID int, initialBalanceCents int64, actor string) (*Wallet, error)
	DeleteWallet(ctx context.Context, clubID string, userID int) error
	UsersWithoutWallet(ctx context.Context, clubID string) ([]user.User, error)

	ActivitiesByUser(ctx context.Context, clubID string, userID, limit int) ([]Activity, error)
	GetActivity(ctx context.Context, clubID string, userID int, activityID int64) (*Activity, error)
	TransfersFrom(ctx context.Context, clubID string, userID, limit int) ([]TransferRecord, error)
	TransfersTo(ctx context.Context, clubID string, userID, limit int) ([]TransferRecord, error)
}
